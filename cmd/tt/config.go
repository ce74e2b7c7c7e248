package main

import (
	"fmt"

	"timetracking/internal/config"
	"timetracking/internal/logging"
)

// loadConfig reads defaults, the config file and the environment, in that order.
// Command line flags are applied later by the root command.
func loadConfig() (*config.Config, string, error) {
	loader := config.NewLoader()

	cfg, err := loader.Load()
	if err != nil {
		return nil, "", fmt.Errorf("failed to load configuration: %w", err)
	}

	logging.SetVerbose(cfg.Application.Verbose)
	logging.Debugf("Using config file %s\n", loader.FilePath())
	return cfg, loader.FilePath(), nil
}
