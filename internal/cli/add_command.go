package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"timetracking/internal/services"
)

// AddCommand handles the add command
type AddCommand struct {
	projects     services.ProjectService
	prompter     Prompter
	out          io.Writer
	errorHandler *ErrorHandler
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{
		projects:     app.services.ProjectService,
		prompter:     app.prompter,
		out:          app.out,
		errorHandler: NewErrorHandler(),
	}
}

// Execute registers the project named by args, prompting when args are empty
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	name := strings.Join(args, " ")
	if len(args) == 0 {
		input, err := c.prompter.Prompt(ctx, "Project name: ")
		if stderrors.Is(err, ErrPromptCancelled) {
			fmt.Fprintln(c.out, "No project added")
			return nil
		}
		if err != nil {
			return err
		}
		name = input
	}

	added, err := c.projects.AddProject(ctx, name)
	if err != nil {
		if c.errorHandler.IsDuplicateError(err) {
			fmt.Fprintf(c.out, "Cannot add project %s, error: %s\n", added, c.errorHandler.HandleSimple(err))
			return nil
		}
		return c.errorHandler.Handle("add project", err)
	}

	fmt.Fprintf(c.out, "Added project %s\n", added)
	return nil
}
