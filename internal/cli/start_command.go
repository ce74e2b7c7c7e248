package cli

import (
	"context"
	"fmt"
	"io"

	"timetracking/internal/errors"
	"timetracking/internal/services"
)

// StartCommand handles the start command
type StartCommand struct {
	tracking     services.TrackingService
	projects     services.ProjectService
	out          io.Writer
	keepOthers   bool
	errorHandler *ErrorHandler
}

// NewStartCommand creates a new start command handler. With keepOthers set the
// other active projects keep running.
func NewStartCommand(app *App, keepOthers bool) *StartCommand {
	return &StartCommand{
		tracking:     app.services.TrackingService,
		projects:     app.services.ProjectService,
		out:          app.out,
		keepOthers:   keepOthers,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the start command
func (c *StartCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "start", "usage: tt start <project>")
	}
	project := args[0]

	if err := c.projects.RequireProject(ctx, project); err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	if !c.keepOthers {
		if err := stopAll(ctx, c.tracking, c.out); err != nil {
			return c.errorHandler.Handle("stop active projects", err)
		}
	}

	outcome, err := c.tracking.Start(ctx, project)
	if err != nil {
		return c.errorHandler.Handle("start project", err)
	}

	if outcome == services.OutcomeAlreadyActive {
		fmt.Fprintf(c.out, "%s is already active\n", project)
		return nil
	}
	fmt.Fprintf(c.out, "Started %s\n", project)
	return nil
}
