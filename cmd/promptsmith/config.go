package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/fwojciec/promptsmith"
	"github.com/fwojciec/promptsmith/yaml"
)

// options holds parsed command-line flags.
type options struct {
	configPath     string
	configExplicit bool // -config was given; a missing file is then an error
	model          string
	addr           string
	logLevel       string
	logFile        string
	serve          bool
	apiKey         string
}

// environment holds the environment variables promptsmith reads.
type environment struct {
	model    string // PROMPTSMITH_MODEL
	addr     string // PROMPTSMITH_ADDR
	logLevel string // LOG_LEVEL
	apiKey   string // GEMINI_API_KEY
}

// settings is the resolved runtime configuration.
type settings struct {
	cfg     promptsmith.Config
	serve   bool
	logFile string
	// apiKey pre-fills the TUI keyring. Always empty in serve mode.
	apiKey string
}

// resolveConfig layers defaults, the config file, environment, and flags,
// in that order. Flag and env values are passed in; env is only read in
// main().
func resolveConfig(opts options, env environment) (settings, error) {
	cfg := promptsmith.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := yaml.Load(opts.configPath, cfg)
		switch {
		case err == nil:
			cfg = loaded
		case errors.Is(err, fs.ErrNotExist) && !opts.configExplicit:
			// No config file at the default location.
		default:
			return settings{}, fmt.Errorf("load config: %w", err)
		}
	}

	override(&cfg.Model, env.model, opts.model)
	override(&cfg.Addr, env.addr, opts.addr)
	override(&cfg.LogLevel, env.logLevel, opts.logLevel)
	if err := cfg.Validate(); err != nil {
		return settings{}, err
	}

	s := settings{cfg: cfg, serve: opts.serve, logFile: opts.logFile}
	if opts.serve {
		if opts.apiKey != "" {
			return settings{}, fmt.Errorf("-api-key cannot be used with -serve: the browser sends its own key: %w", promptsmith.ErrInvalidConfig)
		}
		return s, nil
	}
	s.apiKey = opts.apiKey
	if s.apiKey == "" {
		s.apiKey = env.apiKey
	}
	return s, nil
}

// override sets *dst to the last non-empty value.
func override(dst *string, values ...string) {
	for _, v := range values {
		if v != "" {
			*dst = v
		}
	}
}
