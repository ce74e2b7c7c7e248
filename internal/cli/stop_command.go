package cli

import (
	"context"
	"fmt"
	"io"

	"timetracking/internal/services"
)

// StopCommand handles the end command
type StopCommand struct {
	tracking     services.TrackingService
	projects     services.ProjectService
	out          io.Writer
	errorHandler *ErrorHandler
}

// NewStopCommand creates a new stop command handler
func NewStopCommand(app *App) *StopCommand {
	return &StopCommand{
		tracking:     app.services.TrackingService,
		projects:     app.services.ProjectService,
		out:          app.out,
		errorHandler: NewErrorHandler(),
	}
}

// Execute stops the named project, or every active project when none is named
func (c *StopCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		if err := stopAll(ctx, c.tracking, c.out); err != nil {
			return c.errorHandler.Handle("stop active projects", err)
		}
		return nil
	}

	project := args[0]
	if err := c.projects.RequireProject(ctx, project); err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	outcome, err := c.tracking.Stop(ctx, project)
	if err != nil {
		return c.errorHandler.Handle("stop project", err)
	}

	if outcome == services.OutcomeNotActive {
		fmt.Fprintf(c.out, "%s is not active\n", project)
		return nil
	}
	fmt.Fprintf(c.out, "Stopped %s\n", project)
	return nil
}

// stopAll stops every active project and reports each one
func stopAll(ctx context.Context, tracking services.TrackingService, out io.Writer) error {
	stopped, err := tracking.StopAll(ctx)
	if err != nil {
		return err
	}
	for _, project := range stopped {
		fmt.Fprintf(out, "Stopped %s\n", project)
	}
	return nil
}
