package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"timetracking/internal/config"

	"github.com/stretchr/testify/require"
)

// fakePrompter answers every prompt with a fixed value
type fakePrompter struct {
	answer string
	err    error
	labels []string
}

func (p *fakePrompter) Prompt(ctx context.Context, label string) (string, error) {
	p.labels = append(p.labels, label)
	return p.answer, p.err
}

// setupTestApp creates an app whose files live in a temp dir, with the given
// projects registered
func setupTestApp(t *testing.T, projects ...string) (*App, *bytes.Buffer) {
	t.Helper()

	cfg := config.NewConfig()
	cfg.Files.Dir = t.TempDir()

	out := &bytes.Buffer{}
	app := NewApp(cfg,
		WithOutput(out, &bytes.Buffer{}),
		WithPrompter(&fakePrompter{}),
		WithConfigPath(filepath.Join(cfg.Files.Dir, "config.yaml")),
	)

	for _, project := range projects {
		_, err := app.services.ProjectService.AddProject(context.Background(), project)
		require.NoError(t, err)
	}
	return app, out
}

// writeLog replaces the tracking log with lines
func writeLog(t *testing.T, app *App, lines ...string) {
	t.Helper()
	content := strings.Join(lines, "\n") + "\n"
	require.NoError(t, os.WriteFile(app.config.GetTrackingPath(), []byte(content), 0644))
}

// readLog returns the non-empty lines of the tracking log
func readLog(t *testing.T, app *App) []string {
	t.Helper()
	content, err := os.ReadFile(app.config.GetTrackingPath())
	require.NoError(t, err)
	return strings.FieldsFunc(string(content), func(r rune) bool { return r == '\n' })
}
