package cli

import (
	"context"
	"io"

	"timetracking/internal/services"
)

// ReportCommand handles the report command
type ReportCommand struct {
	reporting    services.ReportingService
	view         *ReportView
	out          io.Writer
	roundTo      int
	errorHandler *ErrorHandler
}

// NewReportCommand creates a new report command handler
func NewReportCommand(app *App, roundTo int) *ReportCommand {
	return &ReportCommand{
		reporting:    app.services.ReportingService,
		view:         NewReportView(app.out, app.config.Display),
		out:          app.out,
		roundTo:      roundTo,
		errorHandler: NewErrorHandler(),
	}
}

// Execute replays the log and prints the daily totals
func (c *ReportCommand) Execute(ctx context.Context, args []string) error {
	report, err := c.reporting.BuildReport(ctx, c.roundTo)
	if err != nil {
		return c.errorHandler.Handle("build report", err)
	}

	_, err = io.WriteString(c.out, c.view.Render(report))
	return err
}
