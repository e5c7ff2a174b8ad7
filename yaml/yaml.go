// Package yaml loads promptsmith configuration files.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fwojciec/promptsmith"
	"gopkg.in/yaml.v3"
)

// file mirrors the config file. Pointer fields distinguish "absent" from
// "set to the zero value".
type file struct {
	Model     *string  `yaml:"model"`
	BaseURL   *string  `yaml:"base_url"`
	Addr      *string  `yaml:"addr"`
	LogLevel  *string  `yaml:"log_level"`
	RateLimit *int     `yaml:"rate_limit"`
	Positions []string `yaml:"positions"`
	APIKey    *string  `yaml:"api_key"`
}

// DefaultPath returns ~/.config/promptsmith/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "promptsmith", "config.yaml"), nil
}

// Load reads the file at path and applies the values it sets on top of
// base. A missing file yields an error matching fs.ErrNotExist. Unknown
// keys and credentials are rejected.
func Load(path string, base promptsmith.Config) (promptsmith.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, err
	}
	cfg, err := Parse(data, base)
	if err != nil {
		return base, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse applies the YAML document in data on top of base and validates
// the result.
func Parse(data []byte, base promptsmith.Config) (promptsmith.Config, error) {
	var f file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return base, fmt.Errorf("%w: %w", promptsmith.ErrInvalidConfig, err)
	}
	if f.APIKey != nil {
		return base, fmt.Errorf("api_key is not accepted; keys are held in memory only: %w", promptsmith.ErrInvalidConfig)
	}

	cfg := base
	if f.Model != nil {
		cfg.Model = *f.Model
	}
	if f.BaseURL != nil {
		cfg.BaseURL = *f.BaseURL
	}
	if f.Addr != nil {
		cfg.Addr = *f.Addr
	}
	if f.LogLevel != nil {
		cfg.LogLevel = *f.LogLevel
	}
	if f.RateLimit != nil {
		cfg.RateLimit = *f.RateLimit
	}
	if f.Positions != nil {
		cfg.Positions = f.Positions
	}
	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}
