package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ConvertConfig holds the optional TOML-driven conversion configuration.
type ConvertConfig struct {
	Schema            string       `toml:"schema"`
	GrantTo           string       `toml:"grant_to"` // empty disables the GRANT
	FulltextLanguage  string       `toml:"fulltext_language"`
	NullZeroDatetimes bool         `toml:"null_zero_datetimes"`
	Progress          bool         `toml:"progress"`
	Manifest          string       `toml:"manifest"` // SQLite file describing the run
	Target            TargetConfig `toml:"target"`
	Apply             ApplyConfig  `toml:"apply"`

	// configDir is the directory containing the TOML file, used to resolve relative paths.
	configDir string
}

// TargetConfig identifies a PostgreSQL-protocol database to run the
// converted script against.
type TargetConfig struct {
	DSN string `toml:"dsn"`
}

type ApplyConfig struct {
	IncludeInserts bool `toml:"include_inserts"`
}

func defaultConfig() *ConvertConfig {
	opts := defaultConvertOptions()
	return &ConvertConfig{
		Schema:            opts.Schema,
		GrantTo:           opts.GrantTo,
		FulltextLanguage:  opts.FulltextLanguage,
		NullZeroDatetimes: opts.NullZeroDatetimes,
		Progress:          true,
	}
}

// loadConfig reads a TOML config file and returns a ConvertConfig with defaults applied.
func loadConfig(path string) (*ConvertConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := defaultConfig()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if unknown := md.Undecoded(); len(unknown) > 0 {
		keys := make([]string, len(unknown))
		for i, k := range unknown {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	cfg.configDir = filepath.Dir(absPath)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *ConvertConfig) validate() error {
	c.Schema = strings.TrimSpace(c.Schema)
	if c.Schema == "" {
		return fmt.Errorf("schema is required")
	}
	c.GrantTo = strings.TrimSpace(c.GrantTo)
	c.FulltextLanguage = strings.TrimSpace(c.FulltextLanguage)
	if c.FulltextLanguage == "" {
		return fmt.Errorf("fulltext_language is required")
	}
	for _, r := range c.FulltextLanguage {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '_') {
			return fmt.Errorf("fulltext_language %q must be a plain text search configuration name", c.FulltextLanguage)
		}
	}
	return nil
}

// resolvePath resolves a path relative to the config file directory.
func (c *ConvertConfig) resolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) || c.configDir == "" {
		return p
	}
	return filepath.Join(c.configDir, p)
}

func (c *ConvertConfig) convertOptions() convertOptions {
	return convertOptions{
		Schema:            c.Schema,
		GrantTo:           c.GrantTo,
		FulltextLanguage:  c.FulltextLanguage,
		NullZeroDatetimes: c.NullZeroDatetimes,
	}
}
