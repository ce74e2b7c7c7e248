package cli

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("should add the project named by the arguments", func(t *testing.T) {
		// Arrange
		app, out := setupTestApp(t)

		// Act
		err := NewAddCommand(app).Execute(ctx, []string{"website"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Added project website\n", out.String())
		names, err := app.services.ProjectService.ListProjects(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"website"}, names)
	})

	t.Run("should remove spaces from the name", func(t *testing.T) {
		// Arrange
		app, out := setupTestApp(t)

		// Act
		err := NewAddCommand(app).Execute(ctx, []string{"my", "project"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Added project myproject\n", out.String())
	})

	t.Run("should prompt for a name without arguments", func(t *testing.T) {
		// Arrange
		app, out := setupTestApp(t)
		prompter := &fakePrompter{answer: " web site "}
		app.prompter = prompter

		// Act
		err := NewAddCommand(app).Execute(ctx, nil)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []string{"Project name: "}, prompter.labels)
		assert.Equal(t, "Added project website\n", out.String())
	})

	t.Run("should add nothing when the prompt is cancelled", func(t *testing.T) {
		// Arrange
		app, out := setupTestApp(t)
		app.prompter = &fakePrompter{err: ErrPromptCancelled}

		// Act
		err := NewAddCommand(app).Execute(ctx, nil)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "No project added\n", out.String())
		_, statErr := os.Stat(app.config.GetProjectsPath())
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("should return prompt failures", func(t *testing.T) {
		// Arrange
		app, _ := setupTestApp(t)
		app.prompter = &fakePrompter{err: errors.New("no terminal")}

		// Act
		err := NewAddCommand(app).Execute(ctx, nil)

		// Assert
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no terminal")
	})

	t.Run("should report a duplicate without failing", func(t *testing.T) {
		// Arrange
		app, out := setupTestApp(t, "website")

		// Act
		err := NewAddCommand(app).Execute(ctx, []string{"website"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Cannot add project website, error: project website already defined\n", out.String())
	})

	t.Run("should reject an empty name", func(t *testing.T) {
		// Arrange
		app, _ := setupTestApp(t)
		app.prompter = &fakePrompter{answer: "   "}

		// Act
		err := NewAddCommand(app).Execute(ctx, nil)

		// Assert
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to add project")
	})
}
