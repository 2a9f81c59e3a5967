// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Layer file and environment overrides in Load.
// - External errors must be wrapped via this package's error kinds.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":5001".
	Addr string `koanf:"addr"`

	// DataDir holds the snapshot files (swimmers.json, race_results.json,
	// events.json).
	DataDir string `koanf:"data_dir"`

	// CORSOrigin is the value sent in Access-Control-Allow-Origin.
	CORSOrigin string `koanf:"cors_origin"`
}

// New creates a Config with defaults: a local mock server on :5001 over a
// ./data snapshot directory.
func New() *Config {
	return &Config{
		LogLevel:   "info",
		Addr:       ":5001",
		DataDir:    "data",
		CORSOrigin: "*",
	}
}
