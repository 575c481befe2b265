package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	CompositionPath string // .hcl composition manifest file or directory

	LogFormat string
	LogLevel  string
	Debug     bool // force debug mode regardless of the manifest
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.CompositionPath == "" {
		return nil, errors.New("CompositionPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
