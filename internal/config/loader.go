package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"timetracking/internal/logging"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config   *Config
	filePath string
}

// NewLoader creates a new configuration loader reading the default config file
func NewLoader() *Loader {
	return NewLoaderWithFile(DefaultFilePath())
}

// NewLoaderWithFile creates a loader that reads the given config file
func NewLoaderWithFile(path string) *Loader {
	return &Loader{
		config:   NewConfig(),
		filePath: path,
	}
}

// DefaultFilePath returns TT_CONFIG if set, otherwise config.yaml in the default data directory
func DefaultFilePath() string {
	if path := os.Getenv("TT_CONFIG"); path != "" {
		return path
	}
	return filepath.Join(DefaultDir(), "config.yaml")
}

// FilePath returns the config file this loader reads
func (l *Loader) FilePath() string {
	return l.filePath
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the config file
// 3. Override with environment variables
// 4. Override with command line flags (applied by the root command)
func (l *Loader) Load() (*Config, error) {
	// Step 1: Start with defaults (already done in NewConfig)

	// Step 2: Load from the config file, which may not exist
	found, err := loadFile(l.filePath, l.config)
	if err != nil {
		return nil, err
	}
	if found {
		logging.Debugf("Loaded config file %s\n", l.filePath)
	}

	// Step 3: Load from environment variables
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	// Step 4: Validate the configuration
	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Files overrides
	Dir          *string
	ProjectsFile *string
	TrackingFile *string

	// Tracker overrides
	RoundMinutes *int

	// Display overrides
	DateFormat *string
	NameWidth  *int

	// Application overrides
	Timeout *time.Duration
	Verbose *bool
}

// ApplyOverrides applies command line overrides to the configuration
func ApplyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.Dir != nil {
		config.Files.Dir = *overrides.Dir
	}
	if overrides.ProjectsFile != nil {
		config.Files.ProjectsFile = *overrides.ProjectsFile
	}
	if overrides.TrackingFile != nil {
		config.Files.TrackingFile = *overrides.TrackingFile
	}

	if overrides.RoundMinutes != nil {
		config.Tracker.RoundMinutes = *overrides.RoundMinutes
	}

	if overrides.DateFormat != nil {
		config.Display.DateFormat = *overrides.DateFormat
	}
	if overrides.NameWidth != nil {
		config.Display.NameWidth = *overrides.NameWidth
	}

	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
