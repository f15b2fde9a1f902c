// Package config loads the .skim.toml settings file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dhamidi/skim/java/parser"
)

// FileName is looked up in the root directory of a codebase.
const FileName = ".skim.toml"

type Config struct {
	Parser ParserConfig `toml:"parser"`
	Scan   ScanConfig   `toml:"scan"`
	Watch  WatchConfig  `toml:"watch"`
	Log    LogConfig    `toml:"log"`
}

type ParserConfig struct {
	Comments         bool `toml:"comments"`
	MaxGenericDepth  int  `toml:"max_generic_depth"`
	SpeculationLimit int  `toml:"speculation_limit"`
	MaxNesting       int  `toml:"max_nesting"`
}

type ScanConfig struct {
	Workers    int      `toml:"workers"`
	Extensions []string `toml:"extensions"`
	SkipHidden bool     `toml:"skip_hidden"`
}

type WatchConfig struct {
	IntervalMS int `toml:"interval_ms"`
}

type LogConfig struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

func Default() *Config {
	return &Config{
		Parser: ParserConfig{
			Comments:         true,
			MaxGenericDepth:  32,
			SpeculationLimit: 256,
			MaxNesting:       256,
		},
		Scan: ScanConfig{
			Workers:    4,
			Extensions: []string{".java"},
			SkipHidden: true,
		},
		Watch: WatchConfig{IntervalMS: 1000},
	}
}

// Load reads FileName from root. A missing file yields the defaults.
func Load(root string) (*Config, error) {
	cfg, err := LoadFile(filepath.Join(root, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// LoadFile reads the configuration at path. Keys it does not know are
// rejected; keys it does not mention keep their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	checks := []struct {
		name  string
		value int
	}{
		{"parser.max_generic_depth", c.Parser.MaxGenericDepth},
		{"parser.speculation_limit", c.Parser.SpeculationLimit},
		{"parser.max_nesting", c.Parser.MaxNesting},
		{"scan.workers", c.Scan.Workers},
		{"watch.interval_ms", c.Watch.IntervalMS},
	}
	for _, check := range checks {
		if check.value <= 0 {
			return fmt.Errorf("invalid config: %s must be positive, got %d", check.name, check.value)
		}
	}
	if c.Log.Verbosity < 0 {
		return fmt.Errorf("invalid config: log.verbosity must not be negative, got %d", c.Log.Verbosity)
	}
	if len(c.Scan.Extensions) == 0 {
		return errors.New("invalid config: scan.extensions must not be empty")
	}
	return nil
}

// ParserOptions converts the parser section to parser options.
func (c *Config) ParserOptions() []parser.Option {
	opts := []parser.Option{
		parser.WithMaxGenericDepth(c.Parser.MaxGenericDepth),
		parser.WithSpeculationLimit(c.Parser.SpeculationLimit),
		parser.WithMaxNesting(c.Parser.MaxNesting),
	}
	if c.Parser.Comments {
		opts = append(opts, parser.WithComments())
	}
	return opts
}

func (c *Config) WatchInterval() time.Duration {
	return time.Duration(c.Watch.IntervalMS) * time.Millisecond
}

// Marshal renders the configuration as TOML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
