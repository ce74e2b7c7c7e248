package config

import (
	"context"
	"fmt"
	"os"

	"timetracking/internal/repository/logfile"
	"timetracking/internal/repository/projects"
	"timetracking/internal/repository/sqlite"
)

// CreateTrackingLog creates the tracking log store at the configured path
func CreateTrackingLog(config *Config) *logfile.Store {
	return logfile.NewWithDirPermissions(config.GetTrackingPath(), config.GetDirPermissions())
}

// CreateProjectRegistry creates the project registry at the configured path
func CreateProjectRegistry(config *Config) *projects.Registry {
	return projects.NewWithDirPermissions(config.GetProjectsPath(), config.GetDirPermissions())
}

// CreateExportRepository opens the SQLite export database at path, relative
// paths resolving against the working directory
func CreateExportRepository(ctx context.Context, path string) (*sqlite.SQLiteRepository, error) {
	repo, err := sqlite.New(ctx, expandHome(path))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize export database: %w", err)
	}
	return repo, nil
}

// GetDirPermissions returns the mode used when creating the data directory
func (c *Config) GetDirPermissions() os.FileMode {
	if c.Files.DirPermissions == 0 {
		return 0755
	}
	return os.FileMode(c.Files.DirPermissions)
}
