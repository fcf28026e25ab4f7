package rules

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/myasset-dev/myasset/internal/model"
)

// FileName is the default rule file name inside the data directory.
const FileName = "rules.json"

// fileRule is the persisted value shape. Item is null when unset.
type fileRule struct {
	Category string  `json:"category"`
	Item     *string `json:"item"`
}

// Load reads a rule file. A missing file is an empty Set; a malformed one
// is an error.
func Load(path string) (*Set, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewSet(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening rules %s: %w", path, err)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("reading rules %s: %w", path, err)
	}
	return s, nil
}

// Decode reads a JSON rule object, keeping key order. A bare string value
// is the legacy shape and becomes a rule with no default item.
func Decode(r io.Reader) (*Set, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decoding rules: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("decoding rules: expected object, got %v", tok)
	}

	s := NewSet()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decoding rules: %w", err)
		}
		keyword, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("decoding rules: expected keyword, got %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("rule %q: %w", keyword, err)
		}
		rule, err := decodeRule(keyword, raw)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", keyword, err)
		}
		s.Put(rule)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decoding rules: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("decoding rules: trailing data after object")
	}
	return s, nil
}

func decodeRule(keyword string, raw json.RawMessage) (model.Rule, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return model.Rule{}, fmt.Errorf("empty value")
	}

	switch raw[0] {
	case '"':
		var category string
		if err := json.Unmarshal(raw, &category); err != nil {
			return model.Rule{}, err
		}
		return model.Rule{Keyword: keyword, Category: model.Category(category)}, nil
	case '{':
		var fr struct {
			Category *string `json:"category"`
			Item     *string `json:"item"`
		}
		if err := json.Unmarshal(raw, &fr); err != nil {
			return model.Rule{}, err
		}
		if fr.Category == nil {
			return model.Rule{}, fmt.Errorf("missing category")
		}
		rule := model.Rule{Keyword: keyword, Category: model.Category(*fr.Category)}
		if fr.Item != nil {
			rule.Item = *fr.Item
		}
		return rule, nil
	default:
		return model.Rule{}, fmt.Errorf("expected string or object, got %s", raw)
	}
}

// Encode writes s as an indented JSON object in rule order.
func Encode(w io.Writer, s *Set) error {
	rules := s.Rules()
	if len(rules) == 0 {
		_, err := io.WriteString(w, "{}\n")
		return err
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, r := range rules {
		key, err := marshal(r.Keyword, "")
		if err != nil {
			return fmt.Errorf("encoding keyword %q: %w", r.Keyword, err)
		}
		fr := fileRule{Category: string(r.Category)}
		if r.Item != "" {
			item := r.Item
			fr.Item = &item
		}
		val, err := marshal(fr, "    ")
		if err != nil {
			return fmt.Errorf("encoding rule %q: %w", r.Keyword, err)
		}

		buf.WriteString("    ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(val)
		if i < len(rules)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")

	_, err := w.Write(buf.Bytes())
	return err
}

func marshal(v any, prefix string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if prefix != "" {
		enc.SetIndent(prefix, "    ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Save rewrites the whole rule file.
func Save(path string, s *Set) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating rules dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".rules-*.json")
	if err != nil {
		return fmt.Errorf("creating temp rules file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, s); err != nil {
		tmp.Close()
		return fmt.Errorf("writing rules: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp rules file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing rules file: %w", err)
	}
	return nil
}
