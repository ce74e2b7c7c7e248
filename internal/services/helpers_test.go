package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"timetracking/internal/errors"
	"timetracking/internal/repository/logfile"

	"github.com/stretchr/testify/require"
)

// setupTestLog creates a tracking log in a temp dir holding the given lines
func setupTestLog(t *testing.T, lines ...string) *logfile.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tracking.log")
	if len(lines) > 0 {
		content := strings.Join(lines, "\n") + "\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return logfile.New(path)
}

// readLog returns the non-empty lines of the log
func readLog(t *testing.T, store *logfile.Store) []string {
	t.Helper()
	content, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	return strings.FieldsFunc(string(content), func(r rune) bool { return r == '\n' })
}

// fixedClock returns a clock that always reports at
func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// fakeRegistry is an in-memory ProjectRegistry
type fakeRegistry struct {
	names   []string
	readErr error
}

func (f *fakeRegistry) Names(ctx context.Context) ([]string, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.names, nil
}

func (f *fakeRegistry) Exists(ctx context.Context, name string) (bool, error) {
	if f.readErr != nil {
		return false, f.readErr
	}
	for _, n := range f.names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRegistry) Add(ctx context.Context, name string) error {
	if exists, _ := f.Exists(ctx, name); exists {
		return errors.NewDuplicateProjectError(name)
	}
	f.names = append(f.names, name)
	return nil
}
