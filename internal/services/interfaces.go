package services

import (
	"context"
	"io"
	"time"

	"timetracking/internal/domain"
	"timetracking/internal/repository/logfile"
	"timetracking/internal/repository/sqlite"
)

// Outcome describes what a start or stop request did to the log.
type Outcome int

const (
	// OutcomeRecorded means an event was appended.
	OutcomeRecorded Outcome = iota
	// OutcomeAlreadyActive means a START was requested for an active project.
	OutcomeAlreadyActive
	// OutcomeNotActive means a STOP was requested for an inactive project.
	OutcomeNotActive
)

// String returns the outcome name for display purposes
func (o Outcome) String() string {
	switch o {
	case OutcomeRecorded:
		return "recorded"
	case OutcomeAlreadyActive:
		return "already_active"
	case OutcomeNotActive:
		return "not_active"
	default:
		return "unknown"
	}
}

// IsNotice reports whether the request was a redundant no-op
func (o Outcome) IsNotice() bool {
	return o != OutcomeRecorded
}

// WarningKind classifies a span that was left out of the daily totals.
type WarningKind int

const (
	// SpanTooLong is a span of 24 hours or more.
	SpanTooLong WarningKind = iota
	// SpanNegative is a STOP timestamped before its START.
	SpanNegative
	// StopWithoutStart is a STOP with no pending START for its project.
	StopWithoutStart
)

// String returns the warning kind name for display purposes
func (k WarningKind) String() string {
	switch k {
	case SpanTooLong:
		return "span_too_long"
	case SpanNegative:
		return "span_negative"
	case StopWithoutStart:
		return "stop_without_start"
	default:
		return "unknown"
	}
}

// SpanWarning names a log line whose span was not counted
type SpanWarning struct {
	Kind       WarningKind
	LineNumber int
	Line       string
	Project    string
	Elapsed    time.Duration
}

// ProjectTotal is the accumulated rounded duration of one project on one day
type ProjectTotal struct {
	Project  string
	Duration time.Duration
}

// DayTotals holds the totals for one calendar date, in the order the projects
// were first stopped on that date
type DayTotals struct {
	Date     time.Time
	Projects []ProjectTotal
}

// Total returns the duration accumulated by project on this day
func (d *DayTotals) Total(project string) time.Duration {
	for _, p := range d.Projects {
		if p.Project == project {
			return p.Duration
		}
	}
	return 0
}

// ActiveProject is a project whose START has no matching STOP
type ActiveProject struct {
	Project string
	Since   time.Time
}

// Report is the result of replaying the whole log
type Report struct {
	RoundTo  int
	Days     []*DayTotals
	Active   []ActiveProject
	Warnings []SpanWarning
}

// Day returns the totals for the date of t, or nil if nothing was recorded that day
func (r *Report) Day(t time.Time) *DayTotals {
	date := t.Format(domain.DateLayout)
	for _, day := range r.Days {
		if day.Date.Format(domain.DateLayout) == date {
			return day
		}
	}
	return nil
}

// Total returns the duration accumulated by project on the date of t
func (r *Report) Total(t time.Time, project string) time.Duration {
	if day := r.Day(t); day != nil {
		return day.Total(project)
	}
	return 0
}

// EventLog is the append-only tracking log
type EventLog interface {
	Path() string
	Lines(ctx context.Context) ([]string, error)
	Records(ctx context.Context) ([]logfile.Record, error)
	ActiveProjects(ctx context.Context) (*logfile.ActiveSet, error)
	Append(ctx context.Context, event domain.Event) error
}

// ProjectRegistry is the list of known project names
type ProjectRegistry interface {
	Names(ctx context.Context) ([]string, error)
	Exists(ctx context.Context, name string) (bool, error)
	Add(ctx context.Context, name string) error
}

// ExportRepository receives snapshots of the log
type ExportRepository interface {
	CreateExportRun(ctx context.Context, run *sqlite.ExportRun) error
	InsertEvents(ctx context.Context, runID string, events []sqlite.EventRow) error
	InsertDailyTotals(ctx context.Context, runID string, totals []sqlite.DailyTotalRow) error
	WithTransaction(ctx context.Context, fn func(repo sqlite.Repository) error) error
}

// ExportReader reads back stored export runs
type ExportReader interface {
	GetExportRun(ctx context.Context, id string) (*sqlite.ExportRun, error)
	ListExportRuns(ctx context.Context) ([]*sqlite.ExportRun, error)
	ListEvents(ctx context.Context, runID string) ([]*sqlite.EventRow, error)
	ListDailyTotals(ctx context.Context, runID string) ([]*sqlite.DailyTotalRow, error)
}

// TrackingService records START and STOP events
type TrackingService interface {
	Start(ctx context.Context, project string) (Outcome, error)
	Stop(ctx context.Context, project string) (Outcome, error)
	StopAll(ctx context.Context) ([]string, error)
	CurrentlyTrackedProjects(ctx context.Context) ([]string, error)
}

// ProjectService manages the project registry
type ProjectService interface {
	ListProjects(ctx context.Context) ([]string, error)
	AddProject(ctx context.Context, name string) (string, error)
	RequireProject(ctx context.Context, name string) error
}

// ReportingService derives elapsed time totals from the log
type ReportingService interface {
	BuildReport(ctx context.Context, roundToMinutes int) (*Report, error)
}

// ExportService snapshots the log into other formats
type ExportService interface {
	WriteCSV(ctx context.Context, w io.Writer) error
	ExportSQLite(ctx context.Context, repo ExportRepository, roundToMinutes int) (*ExportSummary, error)
	ListRuns(ctx context.Context, repo ExportReader) ([]RunSummary, error)
	RunTotals(ctx context.Context, repo ExportReader, runID string) (*sqlite.ExportRun, []*sqlite.DailyTotalRow, error)
}

// ExportSummary describes a completed SQLite export
type ExportSummary struct {
	RunID        string
	EventCount   int
	TotalCount   int
	WarningCount int
}

// RunSummary describes a stored export run and the number of rows it holds
type RunSummary struct {
	Run        *sqlite.ExportRun
	EventCount int
	TotalCount int
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	TrackingService  TrackingService
	ProjectService   ProjectService
	ReportingService ReportingService
	ExportService    ExportService
}

// NewServiceContainer wires the services around a log and a registry
func NewServiceContainer(log EventLog, registry ProjectRegistry) *ServiceContainer {
	reporting := NewReportingService(log)
	return &ServiceContainer{
		TrackingService:  NewTrackingService(log),
		ProjectService:   NewProjectService(registry),
		ReportingService: reporting,
		ExportService:    NewExportService(log, reporting),
	}
}
