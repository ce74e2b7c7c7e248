package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the YAML config file
type FileConfig struct {
	Files struct {
		Dir          string `yaml:"dir"`
		ProjectsFile string `yaml:"projects_file"`
		TrackingFile string `yaml:"tracking_file"`
	} `yaml:"files"`
	Tracker struct {
		RoundMinutes int `yaml:"round_minutes"`
	} `yaml:"tracker"`
	Display struct {
		DateFormat string `yaml:"date_format"`
		NameWidth  int    `yaml:"name_width"`
	} `yaml:"display"`
	Application struct {
		Timeout string `yaml:"timeout"`
		Verbose bool   `yaml:"verbose"`
	} `yaml:"application"`
}

// loadFile merges the YAML file at path into cfg. A missing file is not an
// error and reports found=false.
func loadFile(path string, cfg *Config) (bool, error) {
	if path == "" {
		return false, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, &ConfigError{Field: "config_file", Message: err.Error()}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return false, &ConfigError{Field: "config_file", Message: fmt.Sprintf("cannot read %s: %v", path, err)}
	}

	if v.IsSet("files.dir") {
		cfg.Files.Dir = v.GetString("files.dir")
	}
	if v.IsSet("files.projects_file") {
		cfg.Files.ProjectsFile = v.GetString("files.projects_file")
	}
	if v.IsSet("files.tracking_file") {
		cfg.Files.TrackingFile = v.GetString("files.tracking_file")
	}

	// Read as a string so that an unparsable value falls back to the default
	// instead of silently becoming zero.
	if v.IsSet("tracker.round_minutes") {
		cfg.Tracker.RoundMinutes = ParseIntWithFallback(v.GetString("tracker.round_minutes"), DefaultRoundMinutes)
	}

	if v.IsSet("display.date_format") {
		cfg.Display.DateFormat = v.GetString("display.date_format")
	}
	if v.IsSet("display.name_width") {
		cfg.Display.NameWidth = ParseIntWithFallback(v.GetString("display.name_width"), cfg.Display.NameWidth)
	}

	if v.IsSet("application.timeout") {
		cfg.Application.Timeout = ParseDurationWithFallback(v.GetString("application.timeout"), cfg.Application.Timeout)
	}
	if v.IsSet("application.verbose") {
		cfg.Application.Verbose = ParseBoolWithFallback(v.GetString("application.verbose"), cfg.Application.Verbose)
	}

	return true, nil
}

// ToFileConfig converts the configuration into its on-disk shape
func (c *Config) ToFileConfig() FileConfig {
	var fc FileConfig
	fc.Files.Dir = c.Files.Dir
	fc.Files.ProjectsFile = c.Files.ProjectsFile
	fc.Files.TrackingFile = c.Files.TrackingFile
	fc.Tracker.RoundMinutes = c.GetRoundMinutes()
	fc.Display.DateFormat = c.Display.DateFormat
	fc.Display.NameWidth = c.Display.NameWidth
	fc.Application.Timeout = c.Application.Timeout.String()
	fc.Application.Verbose = c.Application.Verbose
	return fc
}

// YAML renders the configuration as it would be written to the config file
func (c *Config) YAML() (string, error) {
	out, err := yaml.Marshal(c.ToFileConfig())
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(out), nil
}

// WriteDefault writes the default configuration to path. An existing file is
// left untouched and reported as an error.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return &ConfigError{Field: "config_file", Message: fmt.Sprintf("%s already exists", path)}
	}

	content, err := NewConfig().YAML()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	header := "# Time tracking configuration\n"
	return os.WriteFile(path, []byte(header+content), 0644)
}
