package services

import (
	"context"
	"sort"
	"time"

	"timetracking/internal/domain"
	"timetracking/internal/logging"
	"timetracking/internal/repository/logfile"
)

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct {
	log EventLog
}

// NewReportingService creates a new ReportingService instance
func NewReportingService(log EventLog) ReportingService {
	return &reportingServiceImpl{log: log}
}

// BuildReport replays the whole log and accumulates rounded spans per day and
// project. Spans of a day or more, or with a negative length, are reported as
// warnings and left out of the totals. Unmatched STARTs are listed as active.
func (r *reportingServiceImpl) BuildReport(ctx context.Context, roundToMinutes int) (*Report, error) {
	records, err := r.log.Records(ctx)
	if err != nil {
		return nil, err
	}

	report := &Report{RoundTo: NormalizeRoundMinutes(roundToMinutes)}
	totals := newDailyTotals()
	started := make(map[string]logfile.Record)

	for _, record := range records {
		event := record.Event
		switch event.Command {
		case domain.CommandStart:
			started[event.Project] = record
		case domain.CommandStop:
			start, ok := started[event.Project]
			if !ok {
				report.Warnings = append(report.Warnings, newSpanWarning(StopWithoutStart, record, 0))
				continue
			}
			delete(started, event.Project)

			elapsed := event.Timestamp.Sub(start.Event.Timestamp)
			switch {
			case elapsed >= maxSpan:
				report.Warnings = append(report.Warnings, newSpanWarning(SpanTooLong, record, elapsed))
			case elapsed < 0:
				report.Warnings = append(report.Warnings, newSpanWarning(SpanNegative, record, elapsed))
			default:
				totals.add(event.Timestamp, event.Project, RoundElapsed(elapsed, report.RoundTo))
			}
		}
	}

	report.Days = totals.sorted()
	report.Active = activeProjects(started)

	logging.Debugf("Report built from %d records: %d days, %d active, %d warnings\n",
		len(records), len(report.Days), len(report.Active), len(report.Warnings))
	return report, nil
}

func newSpanWarning(kind WarningKind, record logfile.Record, elapsed time.Duration) SpanWarning {
	return SpanWarning{
		Kind:       kind,
		LineNumber: record.LineNumber,
		Line:       record.Line,
		Project:    record.Event.Project,
		Elapsed:    elapsed,
	}
}

// activeProjects lists leftover STARTs in the order they appear in the log
func activeProjects(started map[string]logfile.Record) []ActiveProject {
	pending := make([]logfile.Record, 0, len(started))
	for _, record := range started {
		pending = append(pending, record)
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].LineNumber < pending[j].LineNumber
	})

	active := make([]ActiveProject, 0, len(pending))
	for _, record := range pending {
		active = append(active, ActiveProject{
			Project: record.Event.Project,
			Since:   record.Event.Timestamp,
		})
	}
	return active
}

// dailyTotals accumulates durations keyed by calendar date
type dailyTotals struct {
	days map[string]*DayTotals
}

func newDailyTotals() *dailyTotals {
	return &dailyTotals{days: make(map[string]*DayTotals)}
}

func (d *dailyTotals) add(at time.Time, project string, duration time.Duration) {
	key := at.Format(domain.DateLayout)
	day, ok := d.days[key]
	if !ok {
		day = &DayTotals{Date: time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())}
		d.days[key] = day
	}

	for i := range day.Projects {
		if day.Projects[i].Project == project {
			day.Projects[i].Duration += duration
			return
		}
	}
	day.Projects = append(day.Projects, ProjectTotal{Project: project, Duration: duration})
}

func (d *dailyTotals) sorted() []*DayTotals {
	days := make([]*DayTotals, 0, len(d.days))
	for _, day := range d.days {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})
	return days
}
