package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the data directory.
const FileName = "myasset.yaml"

// EnvPrefix prefixes environment overrides, e.g. MYASSET_LOG_LEVEL.
const EnvPrefix = "MYASSET"

// Config represents the top-level myasset.yaml configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`
	Rules    RulesConfig    `yaml:"rules" mapstructure:"rules"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// DatabaseConfig locates the SQLite file.
type DatabaseConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// RulesConfig locates the keyword rule file.
type RulesConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// LogConfig controls diagnostic output on stderr.
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"` // debug, info, warn, error
}

// Default returns a Config with sensible defaults for a new data directory.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "myasset.db"},
		Rules:    RulesConfig{Path: "rules.json"},
		Log:      LogConfig{Level: "info"},
	}
}

// Load reads <dataDir>/myasset.yaml if present, then applies MYASSET_*
// environment overrides on top of the defaults.
func Load(dataDir string) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("database.path", def.Database.Path)
	v.SetDefault("rules.path", def.Rules.Path)
	v.SetDefault("log.level", def.Log.Level)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := filepath.Join(dataDir, FileName)
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// DatabasePath returns the database file, resolved against dataDir.
func (c *Config) DatabasePath(dataDir string) string {
	return resolve(dataDir, c.Database.Path)
}

// RulesPath returns the rule file, resolved against dataDir.
func (c *Config) RulesPath(dataDir string) string {
	return resolve(dataDir, c.Rules.Path)
}

func resolve(dataDir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dataDir, p)
}
