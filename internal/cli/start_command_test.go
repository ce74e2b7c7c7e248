package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("should start a registered project", func(t *testing.T) {
		// Arrange
		app, out := setupTestApp(t, "proj1")

		// Act
		err := NewStartCommand(app, false).Execute(ctx, []string{"proj1"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Started proj1\n", out.String())
		lines := readLog(t, app)
		require.Len(t, lines, 1)
		assert.True(t, strings.HasSuffix(lines[0], " START proj1"))
	})

	t.Run("should stop other active projects first", func(t *testing.T) {
		// Arrange
		app, out := setupTestApp(t, "proj1", "proj2")
		writeLog(t, app, "2024-01-01 09:00 START proj1")

		// Act
		err := NewStartCommand(app, false).Execute(ctx, []string{"proj2"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Stopped proj1\nStarted proj2\n", out.String())
		lines := readLog(t, app)
		require.Len(t, lines, 3)
		assert.True(t, strings.HasSuffix(lines[1], " STOP proj1"))
		assert.True(t, strings.HasSuffix(lines[2], " START proj2"))
	})

	t.Run("should keep other projects running with continue", func(t *testing.T) {
		// Arrange
		app, out := setupTestApp(t, "proj1", "proj2")
		writeLog(t, app, "2024-01-01 09:00 START proj1")

		// Act
		err := NewStartCommand(app, true).Execute(ctx, []string{"proj2"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Started proj2\n", out.String())
		assert.Len(t, readLog(t, app), 2)
	})

	t.Run("should report an already active project with continue", func(t *testing.T) {
		// Arrange
		app, out := setupTestApp(t, "proj1")
		writeLog(t, app, "2024-01-01 09:00 START proj1")

		// Act
		err := NewStartCommand(app, true).Execute(ctx, []string{"proj1"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "proj1 is already active\n", out.String())
		assert.Len(t, readLog(t, app), 1)
	})

	t.Run("should restart an active project without continue", func(t *testing.T) {
		// Arrange
		app, out := setupTestApp(t, "proj1")
		writeLog(t, app, "2024-01-01 09:00 START proj1")

		// Act
		err := NewStartCommand(app, false).Execute(ctx, []string{"proj1"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Stopped proj1\nStarted proj1\n", out.String())
		assert.Len(t, readLog(t, app), 3)
	})

	t.Run("should reject an unknown project", func(t *testing.T) {
		// Arrange
		app, out := setupTestApp(t, "proj1")

		// Act
		err := NewStartCommand(app, false).Execute(ctx, []string{"nope"})

		// Assert
		require.Error(t, err)
		assert.Equal(t, "Invalid project: nope", err.Error())
		assert.Empty(t, out.String())
	})

	t.Run("should require a project", func(t *testing.T) {
		// Arrange
		app, _ := setupTestApp(t, "proj1")

		// Act
		err := NewStartCommand(app, false).Execute(ctx, []string{})

		// Assert
		require.Error(t, err)
		assert.Contains(t, err.Error(), "usage: tt start")
	})

	t.Run("should fail on a malformed log", func(t *testing.T) {
		// Arrange
		app, _ := setupTestApp(t, "proj1")
		writeLog(t, app, "2024-01-01 09:00 PAUSE proj1")

		// Act
		err := NewStartCommand(app, false).Execute(ctx, []string{"proj1"})

		// Assert
		require.Error(t, err)
		assert.Contains(t, err.Error(), "tracking log is malformed")
	})
}
