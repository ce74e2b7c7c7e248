package cli

import (
	"context"
	"fmt"
	"io"

	"timetracking/internal/services"
)

// ListCommand handles the list command
type ListCommand struct {
	tracking     services.TrackingService
	projects     services.ProjectService
	out          io.Writer
	activeOnly   bool
	errorHandler *ErrorHandler
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App, activeOnly bool) *ListCommand {
	return &ListCommand{
		tracking:     app.services.TrackingService,
		projects:     app.services.ProjectService,
		out:          app.out,
		activeOnly:   activeOnly,
		errorHandler: NewErrorHandler(),
	}
}

// Execute prints one project name per line
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	var (
		names []string
		err   error
	)
	if c.activeOnly {
		names, err = c.tracking.CurrentlyTrackedProjects(ctx)
	} else {
		names, err = c.projects.ListProjects(ctx)
	}
	if err != nil {
		return c.errorHandler.Handle("list projects", err)
	}

	for _, name := range names {
		fmt.Fprintln(c.out, name)
	}
	return nil
}
