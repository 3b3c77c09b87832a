package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if RINKFEED_CONFIG is set
//  3. env (prefix RINKFEED_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("RINKFEED_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: RINKFEED_START_SEASON, RINKFEED_RAW_DIR, ...
	// Map env keys like RINKFEED_START_SEASON -> start_season (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("RINKFEED_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "rinkfeed_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate enforces the invariants the walk depends on.
func (c *Config) validate() error {
	if c.EndSeason < c.StartSeason {
		return fmt.Errorf("%w: end_season %d before start_season %d", ErrInvalidConfig, c.EndSeason, c.StartSeason)
	}
	if c.StartGame < 1 {
		return fmt.Errorf("%w: start_game must be >= 1", ErrInvalidConfig)
	}
	if c.WaitMS < 0 {
		return fmt.Errorf("%w: wait_ms must not be negative", ErrInvalidConfig)
	}
	if c.BaseURL == "" {
		return fmt.Errorf("%w: base_url must not be empty", ErrInvalidConfig)
	}
	if c.RawDir == "" {
		return fmt.Errorf("%w: raw_dir must not be empty", ErrInvalidConfig)
	}
	if c.CorpusPath == "" {
		return fmt.Errorf("%w: corpus_path must not be empty", ErrInvalidConfig)
	}
	return nil
}
