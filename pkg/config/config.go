// Package config loads rgrep settings from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable that points at a config file.
const EnvVar = "RGREP_CONFIG"

// Config represents rgrep configuration options
type Config struct {
	// Workers caps concurrent line evaluations per file (0 = GOMAXPROCS)
	Workers int `yaml:"workers"`

	// ChunkLines is the number of consecutive lines per task
	ChunkLines int `yaml:"chunk_lines"`

	// MatchTimeout bounds a single line evaluation
	MatchTimeout time.Duration `yaml:"match_timeout"`

	// Color is one of auto, always, never
	Color string `yaml:"color"`

	// Format is one of human, json, sarif
	Format string `yaml:"format"`

	IncludeHidden    bool `yaml:"include_hidden"`
	RespectGitignore bool `yaml:"respect_gitignore"`
	Prefilter        bool `yaml:"prefilter"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		Workers:          0,
		ChunkLines:       1,
		MatchTimeout:     5 * time.Second,
		Color:            "auto",
		Format:           "human",
		IncludeHidden:    false,
		RespectGitignore: true,
		Prefilter:        true,
	}
}

// yamlConfig mirrors Config with pointers so that keys present in the file
// can be told apart from zero values.
type yamlConfig struct {
	Workers          *int    `yaml:"workers"`
	ChunkLines       *int    `yaml:"chunk_lines"`
	MatchTimeout     *string `yaml:"match_timeout"`
	Color            *string `yaml:"color"`
	Format           *string `yaml:"format"`
	IncludeHidden    *bool   `yaml:"include_hidden"`
	RespectGitignore *bool   `yaml:"respect_gitignore"`
	Prefilter        *bool   `yaml:"prefilter"`
}

// Load reads the config file at path and merges it over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse merges YAML config data over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlCfg.Workers != nil {
		cfg.Workers = *yamlCfg.Workers
	}
	if yamlCfg.ChunkLines != nil {
		cfg.ChunkLines = *yamlCfg.ChunkLines
	}
	if yamlCfg.MatchTimeout != nil {
		timeout, err := time.ParseDuration(*yamlCfg.MatchTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid match_timeout format %q: %w", *yamlCfg.MatchTimeout, err)
		}
		cfg.MatchTimeout = timeout
	}
	if yamlCfg.Color != nil {
		cfg.Color = *yamlCfg.Color
	}
	if yamlCfg.Format != nil {
		cfg.Format = *yamlCfg.Format
	}
	if yamlCfg.IncludeHidden != nil {
		cfg.IncludeHidden = *yamlCfg.IncludeHidden
	}
	if yamlCfg.RespectGitignore != nil {
		cfg.RespectGitignore = *yamlCfg.RespectGitignore
	}
	if yamlCfg.Prefilter != nil {
		cfg.Prefilter = *yamlCfg.Prefilter
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve picks the config file to load: explicit if set, else
// $RGREP_CONFIG, else ~/.config/rgrep/config.yaml when it exists.
// An empty result means no file applies.
func Resolve(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(EnvVar); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(home, ".config", "rgrep", "config.yaml")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// LoadDefault loads the file chosen by Resolve, or the defaults when there
// is none. A file that was named explicitly must exist.
func LoadDefault(explicit string) (*Config, error) {
	path := Resolve(explicit)
	if path == "" {
		return DefaultConfig(), nil
	}
	cfg, err := Load(path)
	if err != nil {
		if explicit == "" && os.Getenv(EnvVar) == "" && errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if c.ChunkLines < 1 {
		return fmt.Errorf("chunk_lines must be >= 1, got %d", c.ChunkLines)
	}
	if c.MatchTimeout < 0 {
		return fmt.Errorf("match_timeout must be >= 0, got %v", c.MatchTimeout)
	}

	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color %q, must be one of: auto, always, never", c.Color)
	}

	switch c.Format {
	case "human", "json", "sarif":
	default:
		return fmt.Errorf("invalid format %q, must be one of: human, json, sarif", c.Format)
	}

	return nil
}
