package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// NodesetPaths lists nodeset files or directories, loaded in order.
	NodesetPaths []string
	// Namespaces are registered before any nodeset namespace, so the first
	// one becomes the application's own namespace.
	Namespaces []string
	// SkipStandard leaves out the embedded base model.
	SkipStandard bool

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.NodesetPaths) == 0 && cfg.SkipStandard {
		return nil, errors.New("no nodeset to load: give at least one nodeset path or keep the standard nodeset")
	}
	for _, uri := range cfg.Namespaces {
		if uri == "" {
			return nil, errors.New("namespace uri cannot be empty")
		}
	}
	return &cfg, nil
}
