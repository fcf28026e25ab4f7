// Package importer turns exported expense sheets into transactions.
package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/myasset-dev/myasset/internal/model"
)

// Parser converts a raw Table into transactions.
type Parser interface {
	Parse(t *Table) ([]model.Transaction, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// FileInfo describes an importable file in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&DailyAccountingParser{})
	r.Register(&MessyParser{})
	r.Register(&StructuredParser{})
	return r
}

// Parse converts t with the parser named by format, or with the parser
// for the detected shape when format is empty. It returns the format used.
// Any error discards the whole table.
func (r *Registry) Parse(t *Table, format string) ([]model.Transaction, string, error) {
	if format == "" {
		format = string(Detect(t))
	}
	p := r.Get(format)
	if p == nil {
		return nil, format, fmt.Errorf("unknown format %q", format)
	}

	txns, err := p.Parse(t)
	if err != nil {
		return nil, p.Format(), fmt.Errorf("parsing %s export: %w", p.Format(), err)
	}
	return txns, p.Format(), nil
}

func readAll(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// ImportDir is the subdirectory scanned for files to import.
const ImportDir = "import"

// processedDir is the subdirectory for imported files.
const processedDir = "import/processed"

// Scan returns importable files in <root>/import/.
func Scan(root string) ([]FileInfo, error) {
	dir := filepath.Join(root, ImportDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".csv", ".xlsx":
		default:
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from import/ to import/processed/.
func MarkProcessed(root, fileName string) error {
	src := filepath.Join(root, ImportDir, fileName)
	dstDir := filepath.Join(root, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
