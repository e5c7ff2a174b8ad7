package promptsmith

import (
	"fmt"
	"slices"
)

// Config carries runtime settings. It never holds a credential.
type Config struct {
	Model     string   // Gemini model ID; empty = client default.
	BaseURL   string   // Gemini models endpoint; empty = client default.
	Addr      string   // Listen address for the browser front end.
	LogLevel  string   // zap level name.
	RateLimit int      // Generate requests per minute across the server; 0 = unlimited.
	Positions []string // Role choices; must end with OtherPosition.
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Addr:      ":8080",
		LogLevel:  "info",
		Positions: slices.Clone(DefaultPositions),
	}
}

// Validate checks the configuration for values no component can use.
func (c Config) Validate() error {
	if c.RateLimit < 0 {
		return fmt.Errorf("rate_limit must be non-negative, got %d: %w", c.RateLimit, ErrInvalidConfig)
	}
	if len(c.Positions) == 0 {
		return fmt.Errorf("positions must not be empty: %w", ErrInvalidConfig)
	}
	if c.Positions[len(c.Positions)-1] != OtherPosition {
		return fmt.Errorf("positions must end with %q: %w", OtherPosition, ErrInvalidConfig)
	}
	for i, p := range c.Positions {
		if p == "" {
			return fmt.Errorf("position %d is empty: %w", i, ErrInvalidConfig)
		}
	}
	return nil
}
