package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"timetracking/internal/domain"
	"timetracking/internal/errors"
	"timetracking/internal/logging"
	"timetracking/internal/services"
)

// OutputCommand handles the output command
type OutputCommand struct {
	export       services.ExportService
	openExport   func(ctx context.Context, path string) (ExportTarget, error)
	roundTo      int
	out          io.Writer
	errorHandler *ErrorHandler
}

// NewOutputCommand creates a new output command handler
func NewOutputCommand(app *App) *OutputCommand {
	return &OutputCommand{
		export:       app.services.ExportService,
		openExport:   app.openExport,
		roundTo:      app.config.GetRoundMinutes(),
		out:          app.out,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the output command
func (c *OutputCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("command", "output", "usage: tt output format=csv")
	}

	if args[0] == "runs" {
		switch len(args) {
		case 2:
			return c.listRuns(ctx, args[1])
		case 3:
			return c.showRun(ctx, args[1], args[2])
		default:
			return errors.NewInvalidInputError("command", "output", "usage: tt output runs <path> [run-id]")
		}
	}

	// Parse format option
	format := args[0]
	if !strings.HasPrefix(format, "format=") {
		return errors.NewInvalidInputError("format", format, "invalid format option")
	}

	format = strings.TrimPrefix(format, "format=")
	switch format {
	case "csv":
		if len(args) > 1 {
			return errors.NewInvalidInputError("command", "output", "usage: tt output format=csv")
		}
		return c.outputCSV(ctx)
	case "sqlite":
		if len(args) != 2 {
			return errors.NewInvalidInputError("command", "output", "usage: tt output format=sqlite <path>")
		}
		return c.outputSQLite(ctx, args[1])
	default:
		return errors.NewInvalidInputError("format", format, "unsupported format")
	}
}

// outputCSV writes the log to standard output as CSV
func (c *OutputCommand) outputCSV(ctx context.Context) error {
	if err := c.export.WriteCSV(ctx, c.out); err != nil {
		return c.errorHandler.Handle("export CSV", err)
	}
	return nil
}

// withExport opens the database at path for the duration of fn
func (c *OutputCommand) withExport(ctx context.Context, path string, fn func(target ExportTarget) error) error {
	target, err := c.openExport(ctx, path)
	if err != nil {
		return c.errorHandler.Handle("open export database", err)
	}
	defer func() {
		if closeErr := target.Close(); closeErr != nil {
			logging.Debugf("Failed to close export database: %v\n", closeErr)
		}
	}()
	return fn(target)
}

// listRuns prints one line per export run stored at path
func (c *OutputCommand) listRuns(ctx context.Context, path string) error {
	return c.withExport(ctx, path, func(target ExportTarget) error {
		runs, err := c.export.ListRuns(ctx, target)
		if err != nil {
			return c.errorHandler.Handle("list export runs", err)
		}
		if len(runs) == 0 {
			fmt.Fprintf(c.out, "No export runs in %s\n", path)
			return nil
		}
		for _, summary := range runs {
			run := summary.Run
			fmt.Fprintf(c.out, "%s  %s  round=%d  events=%d  totals=%d  %s\n",
				run.ID, run.ExportedAt.Format(domain.TimestampLayout), run.RoundMinutes,
				summary.EventCount, summary.TotalCount, run.SourcePath)
		}
		return nil
	})
}

// showRun prints the daily totals stored with one export run
func (c *OutputCommand) showRun(ctx context.Context, path, runID string) error {
	return c.withExport(ctx, path, func(target ExportTarget) error {
		run, totals, err := c.export.RunTotals(ctx, target, runID)
		if err != nil {
			return c.errorHandler.Handle("show export run", err)
		}
		fmt.Fprintf(c.out, "Run %s exported %s from %s\n",
			run.ID, run.ExportedAt.Format(domain.TimestampLayout), run.SourcePath)
		for _, total := range totals {
			fmt.Fprintf(c.out, "%s\t%s\t%s\n",
				total.Day, total.Project, services.FormatDuration(time.Duration(total.Minutes)*time.Minute))
		}
		return nil
	})
}

// outputSQLite stores a snapshot of the log in the database at path
func (c *OutputCommand) outputSQLite(ctx context.Context, path string) error {
	return c.withExport(ctx, path, func(target ExportTarget) error {
		summary, err := c.export.ExportSQLite(ctx, target, c.roundTo)
		if err != nil {
			return c.errorHandler.Handle("export to SQLite", err)
		}

		fmt.Fprintf(c.out, "Exported %d events and %d daily totals to %s (run %s)\n",
			summary.EventCount, summary.TotalCount, path, summary.RunID)
		if summary.WarningCount > 0 {
			fmt.Fprintf(c.out, "%d spans were left out, run tt report for details\n", summary.WarningCount)
		}
		return nil
	})
}
