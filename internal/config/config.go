// Package config defines scraper configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import "time"

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// StartSeason is the first season to scrape (2016 for 2016-2017).
	StartSeason int `koanf:"start_season"`

	// EndSeason is the last season to scrape, inclusive.
	EndSeason int `koanf:"end_season"`

	// GameKind selects the game category: preseason, regular, playoff
	// (or the API's two-digit codes).
	GameKind string `koanf:"game_kind"`

	// StartGame is the game number to start probing at.
	StartGame int `koanf:"start_game"`

	// WaitMS is the politeness delay between successful probes.
	WaitMS int `koanf:"wait_ms"`

	// SkipExisting makes the scraper treat already-persisted games as
	// fetched, so interrupted walks can resume.
	SkipExisting bool `koanf:"skip_existing"`

	// BaseURL points at the stats API root.
	BaseURL string `koanf:"base_url"`

	// FetchTimeoutMS bounds a single fetch round trip.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// RawDir is the directory raw game files are written to and read from.
	RawDir string `koanf:"raw_dir"`

	// CorpusPath is the single-file corpus written by the extract pass.
	CorpusPath string `koanf:"corpus_path"`

	// Teams filters the rest-days analysis; empty means every team.
	Teams []string `koanf:"teams"`

	// WindowDays is the rolling-window length for the rest-days analysis.
	WindowDays int `koanf:"window_days"`

	// MetricsAddr exposes /metrics during long scrape runs when non-empty.
	MetricsAddr string `koanf:"metrics_addr"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		StartSeason:    2016,
		EndSeason:      2017,
		GameKind:       "regular",
		StartGame:      1,
		WaitMS:         2000,
		SkipExisting:   false,
		BaseURL:        "https://statsapi.web.nhl.com/api/v1",
		FetchTimeoutMS: 30_000,
		RawDir:         ".",
		CorpusPath:     "nhl_api_bulk_data_processing_results.json",
		Teams:          nil,
		WindowDays:     10,
		MetricsAddr:    "",
	}
}

// Wait returns the politeness delay as a duration.
func (c *Config) Wait() time.Duration {
	return time.Duration(c.WaitMS) * time.Millisecond
}

// FetchTimeout returns the fetch timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}
