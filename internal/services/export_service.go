package services

import (
	"context"
	"encoding/csv"
	"io"
	"time"

	"timetracking/internal/domain"
	"timetracking/internal/errors"
	"timetracking/internal/logging"
	"timetracking/internal/repository/sqlite"

	"github.com/google/uuid"
)

// csvHeader names the columns written by WriteCSV
var csvHeader = []string{"Date", "Time", "Command", "Project"}

// exportServiceImpl implements the ExportService interface
type exportServiceImpl struct {
	log       EventLog
	reporting ReportingService
	now       func() time.Time
}

// NewExportService creates a new ExportService instance
func NewExportService(log EventLog, reporting ReportingService) ExportService {
	return &exportServiceImpl{log: log, reporting: reporting, now: time.Now}
}

// WriteCSV writes every event of the log as a CSV row
func (s *exportServiceImpl) WriteCSV(ctx context.Context, w io.Writer) error {
	records, err := s.log.Records(ctx)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return errors.WrapError(err, errors.ErrorTypeStorage, "failed to write CSV header")
	}

	for _, record := range records {
		event := record.Event
		row := []string{
			event.Timestamp.Format(domain.DateLayout),
			event.Timestamp.Format("15:04"),
			event.Command.String(),
			event.Project,
		}
		if err := writer.Write(row); err != nil {
			return errors.WrapError(err, errors.ErrorTypeStorage, "failed to write CSV row")
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.WrapError(err, errors.ErrorTypeStorage, "failed to write CSV output")
	}
	return nil
}

// ExportSQLite stores the events of the log and the report totals as a new
// run in repo. Everything is written in one transaction.
func (s *exportServiceImpl) ExportSQLite(ctx context.Context, repo ExportRepository, roundToMinutes int) (*ExportSummary, error) {
	records, err := s.log.Records(ctx)
	if err != nil {
		return nil, err
	}
	report, err := s.reporting.BuildReport(ctx, roundToMinutes)
	if err != nil {
		return nil, err
	}

	run := &sqlite.ExportRun{
		ID:           uuid.New().String(),
		ExportedAt:   s.now(),
		SourcePath:   s.log.Path(),
		RoundMinutes: report.RoundTo,
	}

	events := make([]sqlite.EventRow, 0, len(records))
	for _, record := range records {
		events = append(events, sqlite.EventRow{
			LineNumber: record.LineNumber,
			OccurredAt: record.Event.Timestamp,
			Command:    record.Event.Command.String(),
			Project:    record.Event.Project,
		})
	}

	var totals []sqlite.DailyTotalRow
	for _, day := range report.Days {
		for _, total := range day.Projects {
			totals = append(totals, sqlite.DailyTotalRow{
				Day:     day.Date.Format(domain.DateLayout),
				Project: total.Project,
				Minutes: int(total.Duration / time.Minute),
			})
		}
	}

	err = repo.WithTransaction(ctx, func(tx sqlite.Repository) error {
		if err := tx.CreateExportRun(ctx, run); err != nil {
			return err
		}
		if err := tx.InsertEvents(ctx, run.ID, events); err != nil {
			return err
		}
		return tx.InsertDailyTotals(ctx, run.ID, totals)
	})
	if err != nil {
		return nil, err
	}

	logging.Debugf("Exported run %s: %d events, %d totals\n", run.ID, len(events), len(totals))
	return &ExportSummary{
		RunID:        run.ID,
		EventCount:   len(events),
		TotalCount:   len(totals),
		WarningCount: len(report.Warnings),
	}, nil
}

// ListRuns returns every run stored in repo, oldest first, with its row counts
func (s *exportServiceImpl) ListRuns(ctx context.Context, repo ExportReader) ([]RunSummary, error) {
	runs, err := repo.ListExportRuns(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]RunSummary, 0, len(runs))
	for _, run := range runs {
		events, err := repo.ListEvents(ctx, run.ID)
		if err != nil {
			return nil, err
		}
		totals, err := repo.ListDailyTotals(ctx, run.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, RunSummary{Run: run, EventCount: len(events), TotalCount: len(totals)})
	}
	return summaries, nil
}

// RunTotals returns one stored run and its daily totals
func (s *exportServiceImpl) RunTotals(ctx context.Context, repo ExportReader, runID string) (*sqlite.ExportRun, []*sqlite.DailyTotalRow, error) {
	run, err := repo.GetExportRun(ctx, runID)
	if err != nil {
		return nil, nil, err
	}
	totals, err := repo.ListDailyTotals(ctx, runID)
	if err != nil {
		return nil, nil, err
	}
	return run, totals, nil
}
