// Package logfile reads and appends the plain-text tracking log.
//
// The log holds one event per line:
//
//	2024-01-01 09:00 START proj1
//	2024-01-01 12:07 STOP proj1
//
// It is the only source of truth for tracking state and is never rewritten.
// Access is not synchronized between processes.
package logfile

import (
	"bufio"
	"context"
	"os"

	"timetracking/internal/domain"
	"timetracking/internal/errors"
	"timetracking/internal/logging"
	"timetracking/internal/repository/fileutil"
)

// maxLineLength bounds a single log line when scanning.
const maxLineLength = 1024 * 1024

// Store provides access to the tracking log at a fixed path.
type Store struct {
	path    string
	dirPerm os.FileMode
}

// New creates a Store for the log at path.
func New(path string) *Store {
	return &Store{path: path, dirPerm: 0755}
}

// NewWithDirPermissions creates a Store that creates missing parent directories with perm.
func NewWithDirPermissions(path string, perm os.FileMode) *Store {
	return &Store{path: path, dirPerm: perm}
}

// Path returns the location of the log file.
func (s *Store) Path() string {
	return s.path
}

// ensure creates an empty log if none exists yet.
func (s *Store) ensure() error {
	presence, err := fileutil.Ensure(s.path, nil, s.dirPerm)
	if err != nil {
		return s.withPath(errors.NewStorageError("initialize tracking log", err))
	}
	if presence == fileutil.PresenceCreated {
		logging.Debugf("Created tracking log %s\n", s.path)
	}
	return nil
}

// withPath records the log location on application errors
func (s *Store) withPath(err error) error {
	if appErr, ok := errors.AsAppError(err); ok {
		return appErr.WithContext("path", s.path)
	}
	return err
}

// Lines returns the raw lines of the log. A missing log is created empty.
func (s *Store) Lines(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ensure(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, errors.NewStorageError("open tracking log", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 4096), maxLineLength)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewStorageError("read tracking log", err)
	}

	return lines, nil
}

// ActiveProjects returns the projects that are currently being tracked.
func (s *Store) ActiveProjects(ctx context.Context) (*ActiveSet, error) {
	lines, err := s.Lines(ctx)
	if err != nil {
		return nil, err
	}
	active, err := ScanActiveProjects(lines)
	if err != nil {
		return nil, s.withPath(err)
	}
	return active, nil
}

// Records parses every non-blank line of the log. The first malformed line
// aborts the read.
func (s *Store) Records(ctx context.Context) ([]Record, error) {
	lines, err := s.Lines(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(lines))
	for i, line := range lines {
		if isBlank(line) {
			continue
		}
		record, err := ParseRecord(i+1, line)
		if err != nil {
			return nil, s.withPath(err)
		}
		records = append(records, record)
	}
	return records, nil
}

// Append writes event as a single line at the end of the log.
func (s *Store) Append(ctx context.Context, event domain.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ensure(); err != nil {
		return err
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errors.NewStorageError("open tracking log for append", err)
	}

	if _, err := f.WriteString(event.String() + "\n"); err != nil {
		f.Close()
		return errors.NewStorageError("append tracking log", err)
	}
	if err := f.Close(); err != nil {
		return errors.NewStorageError("close tracking log", err)
	}

	logging.Debugf("Appended %q to %s\n", event.String(), s.path)
	return nil
}
