package sqlite

import "time"

// ExportRun is one snapshot of the tracking log
type ExportRun struct {
	ID           string
	ExportedAt   time.Time
	SourcePath   string
	RoundMinutes int
}

// EventRow is a log event as stored in an export
type EventRow struct {
	ID         int64
	RunID      string
	LineNumber int
	OccurredAt time.Time
	Command    string
	Project    string
}

// DailyTotalRow is the rounded total of one project on one day
type DailyTotalRow struct {
	ID      int64
	RunID   string
	Day     string // YYYY-MM-DD
	Project string
	Minutes int
}
