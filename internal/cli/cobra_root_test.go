package cli

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"timetracking/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runRoot executes the root command with args against a fresh data directory
func runRoot(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()

	cfg := config.NewConfig()
	cfg.Files.Dir = dir

	out := &bytes.Buffer{}
	root := NewRootCommand(cfg, WithOutput(out, &bytes.Buffer{}), WithPrompter(&fakePrompter{}))
	root.Command().SetArgs(args)
	root.Command().SetOut(out)

	err := root.Execute()
	return out.String(), err
}

func TestRootCommand_Execute(t *testing.T) {
	t.Run("should track a project end to end", func(t *testing.T) {
		dir := t.TempDir()

		out, err := runRoot(t, dir, "add", "website")
		require.NoError(t, err)
		assert.Equal(t, "Added project website\n", out)

		out, err = runRoot(t, dir, "start", "-p", "website")
		require.NoError(t, err)
		assert.Equal(t, "Started website\n", out)

		out, err = runRoot(t, dir, "list", "-a")
		require.NoError(t, err)
		assert.Equal(t, "website\n", out)

		out, err = runRoot(t, dir, "stop", "website")
		require.NoError(t, err)
		assert.Equal(t, "Stopped website\n", out)

		out, err = runRoot(t, dir, "end")
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("should reject an unknown project", func(t *testing.T) {
		_, err := runRoot(t, t.TempDir(), "start", "nope")

		require.Error(t, err)
		assert.Equal(t, "Invalid project: nope", err.Error())
	})

	t.Run("should apply the directory flag", func(t *testing.T) {
		dir := t.TempDir()
		other := t.TempDir()

		_, err := runRoot(t, dir, "--dir", other, "add", "website")
		require.NoError(t, err)

		out, err := runRoot(t, other, "list")
		require.NoError(t, err)
		assert.Equal(t, "website\n", out)

		out, err = runRoot(t, dir, "list")
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("should report with the round flag", func(t *testing.T) {
		dir := t.TempDir()
		_, err := runRoot(t, dir, "add", "proj1")
		require.NoError(t, err)

		cfg := config.NewConfig()
		cfg.Files.Dir = dir
		writeLogFile(t, cfg.GetTrackingPath(), "2024-01-01 09:00 START proj1", "2024-01-01 09:10 STOP proj1")

		out, err := runRoot(t, dir, "report", "--round", "60")
		require.NoError(t, err)
		assert.Contains(t, out, row("proj1", "1h 0m"))

		out, err = runRoot(t, dir, "--round-minutes", "30", "report")
		require.NoError(t, err)
		assert.Contains(t, out, row("proj1", "0h 30m"))
	})

	t.Run("should reject an invalid configuration from flags", func(t *testing.T) {
		_, err := runRoot(t, t.TempDir(), "--projects-file", "same", "--tracking-file", "same", "list")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "tracking file must differ from projects file")
	})
}

func TestRootCommand_GetConfigFromFlags(t *testing.T) {
	// Arrange
	cfg := config.NewConfig()
	root := NewRootCommand(cfg)
	flags := root.Command().PersistentFlags()
	require.NoError(t, flags.Set("dir", "/tmp/tt"))
	require.NoError(t, flags.Set("name-width", "20"))
	require.NoError(t, flags.Set("date-format", "2006-01-02"))
	require.NoError(t, flags.Set("app-timeout", "5s"))
	require.NoError(t, flags.Set("verbose", "true"))

	// Act
	err := root.getConfigFromFlags()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "/tmp/tt", cfg.Files.Dir)
	assert.Equal(t, 20, cfg.Display.NameWidth)
	assert.Equal(t, "2006-01-02", cfg.Display.DateFormat)
	assert.Equal(t, 5*time.Second, cfg.Application.Timeout)
	assert.True(t, cfg.Application.Verbose)
	assert.Equal(t, "projects.json", cfg.Files.ProjectsFile)
}

func TestRootCommand_GetConfigFromFlags_FalseOverridesEnvironment(t *testing.T) {
	// Arrange
	t.Setenv("TT_APP_VERBOSE", "true")
	cfg := config.NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())
	require.True(t, cfg.Application.Verbose)

	root := NewRootCommand(cfg)
	require.NoError(t, root.Command().PersistentFlags().Set("verbose", "false"))

	// Act
	err := root.getConfigFromFlags()

	// Assert
	require.NoError(t, err)
	assert.False(t, cfg.Application.Verbose)
}

func TestRootCommand_GetConfigFromFlags_KeepsUnsetValues(t *testing.T) {
	// Arrange
	cfg := config.NewConfig()
	cfg.Application.Verbose = true
	cfg.Application.Timeout = 7 * time.Second
	root := NewRootCommand(cfg)

	// Act
	err := root.getConfigFromFlags()

	// Assert
	require.NoError(t, err)
	assert.True(t, cfg.Application.Verbose)
	assert.Equal(t, 7*time.Second, cfg.Application.Timeout)
}

func TestProjectArgs(t *testing.T) {
	assert.Equal(t, []string{"flag"}, projectArgs("flag", []string{"arg"}))
	assert.Equal(t, []string{"arg"}, projectArgs("", []string{"arg"}))
	assert.Empty(t, projectArgs("", nil))
}

func writeLogFile(t *testing.T, path string, lines ...string) {
	t.Helper()
	content := strings.Join(lines, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}
