package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultRoundMinutes is used when no usable rounding granularity is configured
	DefaultRoundMinutes = 15
	// DefaultDateFormat renders dates as weekday-abbreviation day.month.year
	DefaultDateFormat = "Mon 2.1.2006"
)

// Config holds all configuration options for the time tracker application
type Config struct {
	Files       FilesConfig
	Tracker     TrackerConfig
	Display     DisplayConfig
	Application ApplicationConfig
}

// FilesConfig holds the locations of the project list and the tracking log
type FilesConfig struct {
	Dir            string `env:"TT_DIR"`
	ProjectsFile   string `env:"TT_PROJECTS_FILE"`
	TrackingFile   string `env:"TT_TRACKING_FILE"`
	DirPermissions uint32 `env:"TT_DIR_PERMISSIONS"`
}

// TrackerConfig holds report calculation settings
type TrackerConfig struct {
	RoundMinutes int `env:"TT_ROUND_MINUTES"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	DateFormat string `env:"TT_DATE_FORMAT"`
	NameWidth  int    `env:"TT_NAME_WIDTH"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"TT_APP_TIMEOUT"`
	Verbose bool          `env:"TT_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Files: FilesConfig{
			Dir:            DefaultDir(),
			ProjectsFile:   "projects.json",
			TrackingFile:   "tracking.log",
			DirPermissions: 0755,
		},
		Tracker: TrackerConfig{
			RoundMinutes: DefaultRoundMinutes,
		},
		Display: DisplayConfig{
			DateFormat: DefaultDateFormat,
			NameWidth:  15,
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// DefaultDir returns ~/.tt, or .tt in the working directory when there is no home
func DefaultDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".tt"
	}
	return filepath.Join(homeDir, ".tt")
}

// GetProjectsPath returns the full path to the project list file
func (c *Config) GetProjectsPath() string {
	return c.resolve(c.Files.ProjectsFile)
}

// GetTrackingPath returns the full path to the tracking log file
func (c *Config) GetTrackingPath() string {
	return c.resolve(c.Files.TrackingFile)
}

// GetRoundMinutes returns the rounding granularity, falling back to the default
// for values that cannot be used
func (c *Config) GetRoundMinutes() int {
	if c.Tracker.RoundMinutes < 1 {
		return DefaultRoundMinutes
	}
	return c.Tracker.RoundMinutes
}

func (c *Config) resolve(name string) string {
	name = expandHome(name)
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(expandHome(c.Files.Dir), name)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Files configuration
	if dir := os.Getenv("TT_DIR"); dir != "" {
		c.Files.Dir = dir
	}
	if projects := os.Getenv("TT_PROJECTS_FILE"); projects != "" {
		c.Files.ProjectsFile = projects
	}
	if tracking := os.Getenv("TT_TRACKING_FILE"); tracking != "" {
		c.Files.TrackingFile = tracking
	}
	if perms := os.Getenv("TT_DIR_PERMISSIONS"); perms != "" {
		c.Files.DirPermissions = ParseUint32WithFallback(perms, 8, c.Files.DirPermissions)
	}

	// Tracker configuration
	if round := os.Getenv("TT_ROUND_MINUTES"); round != "" {
		c.Tracker.RoundMinutes = ParseIntWithFallback(round, DefaultRoundMinutes)
	}

	// Display configuration
	if format := os.Getenv("TT_DATE_FORMAT"); format != "" {
		c.Display.DateFormat = format
	}
	if width := os.Getenv("TT_NAME_WIDTH"); width != "" {
		c.Display.NameWidth = ParseIntWithFallback(width, c.Display.NameWidth)
	}

	// Application configuration
	if timeout := os.Getenv("TT_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("TT_APP_VERBOSE"); verbose != "" {
		if b, err := strconv.ParseBool(verbose); err == nil {
			c.Application.Verbose = b
		}
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Files.Dir == "" {
		return &ConfigError{Field: "files.dir", Message: "data directory cannot be empty"}
	}
	if c.Files.ProjectsFile == "" {
		return &ConfigError{Field: "files.projects_file", Message: "projects file cannot be empty"}
	}
	if c.Files.TrackingFile == "" {
		return &ConfigError{Field: "files.tracking_file", Message: "tracking file cannot be empty"}
	}
	if c.GetProjectsPath() == c.GetTrackingPath() {
		return &ConfigError{Field: "files.tracking_file", Message: "tracking file must differ from projects file"}
	}

	if c.Display.DateFormat == "" {
		return &ConfigError{Field: "display.date_format", Message: "date format cannot be empty"}
	}
	if c.Display.NameWidth < 0 {
		return &ConfigError{Field: "display.name_width", Message: "name width cannot be negative"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
