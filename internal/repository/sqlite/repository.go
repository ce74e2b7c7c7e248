package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"timetracking/internal/errors"
	"timetracking/internal/logging"
	"timetracking/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the interface for export database operations
type Repository interface {
	// Create operations
	CreateExportRun(ctx context.Context, run *ExportRun) error
	InsertEvents(ctx context.Context, runID string, events []EventRow) error
	InsertDailyTotals(ctx context.Context, runID string, totals []DailyTotalRow) error

	// Read operations
	GetExportRun(ctx context.Context, id string) (*ExportRun, error)
	ListExportRuns(ctx context.Context) ([]*ExportRun, error)
	ListEvents(ctx context.Context, runID string) ([]*EventRow, error)
	ListDailyTotals(ctx context.Context, runID string) ([]*DailyTotalRow, error)

	// Utility
	WithTransaction(ctx context.Context, fn func(repo Repository) error) error
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db   *sql.DB
	conn DBTX
}

// New creates a new SQLite repository instance and brings its schema up to date
func New(ctx context.Context, dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewStorageError("open database", err)
	}

	if err := migrations.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, errors.NewStorageError("run migrations", err)
	}

	logging.Debugf("Opened export database %s\n", dbPath)
	return &SQLiteRepository{db: db, conn: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// WithTransaction runs fn against a repository bound to a single transaction.
// The transaction is committed when fn returns nil and rolled back otherwise.
func (r *SQLiteRepository) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	if _, nested := r.conn.(*sql.Tx); nested {
		return fn(r)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin transaction", err)
	}

	if err := fn(&SQLiteRepository{db: r.db, conn: tx}); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit transaction", err)
	}
	return nil
}

// CreateExportRun records a new export run
func (r *SQLiteRepository) CreateExportRun(ctx context.Context, run *ExportRun) error {
	query := `
	INSERT INTO export_runs (id, exported_at, source_path, round_minutes)
	VALUES (?, ?, ?, ?)`

	return Execute(ctx, r.conn, query, run.ID, FormatTimeForDB(run.ExportedAt), run.SourcePath, run.RoundMinutes)
}

// InsertEvents stores the events of a run
func (r *SQLiteRepository) InsertEvents(ctx context.Context, runID string, events []EventRow) error {
	query := `
	INSERT INTO events (run_id, line_number, occurred_at, command, project)
	VALUES (?, ?, ?, ?, ?)`

	for _, event := range events {
		if err := Execute(ctx, r.conn, query, runID, event.LineNumber, FormatTimeForDB(event.OccurredAt), event.Command, event.Project); err != nil {
			return fmt.Errorf("insert event from line %d: %w", event.LineNumber, err)
		}
	}
	return nil
}

// InsertDailyTotals stores the daily totals of a run
func (r *SQLiteRepository) InsertDailyTotals(ctx context.Context, runID string, totals []DailyTotalRow) error {
	query := `
	INSERT INTO daily_totals (run_id, day, project, minutes)
	VALUES (?, ?, ?, ?)`

	for _, total := range totals {
		if err := Execute(ctx, r.conn, query, runID, total.Day, total.Project, total.Minutes); err != nil {
			return fmt.Errorf("insert total for %s on %s: %w", total.Project, total.Day, err)
		}
	}
	return nil
}

// GetExportRun retrieves an export run by ID
func (r *SQLiteRepository) GetExportRun(ctx context.Context, id string) (*ExportRun, error) {
	query := `
	SELECT id, exported_at, source_path, round_minutes
	FROM export_runs
	WHERE id = ?`

	return QuerySingle(ctx, r.conn, query, ScanExportRun, "export run", id, id)
}

// ListExportRuns retrieves all export runs, oldest first
func (r *SQLiteRepository) ListExportRuns(ctx context.Context) ([]*ExportRun, error) {
	query := `
	SELECT id, exported_at, source_path, round_minutes
	FROM export_runs
	ORDER BY exported_at ASC, rowid ASC`

	return QueryMultiple(ctx, r.conn, query, ScanExportRuns, "export runs")
}

// ListEvents retrieves the events of a run in log order
func (r *SQLiteRepository) ListEvents(ctx context.Context, runID string) ([]*EventRow, error) {
	query := `
	SELECT id, run_id, line_number, occurred_at, command, project
	FROM events
	WHERE run_id = ?
	ORDER BY line_number ASC`

	return QueryMultiple(ctx, r.conn, query, ScanEventRows, "events", runID)
}

// ListDailyTotals retrieves the daily totals of a run in insertion order
func (r *SQLiteRepository) ListDailyTotals(ctx context.Context, runID string) ([]*DailyTotalRow, error) {
	query := `
	SELECT id, run_id, day, project, minutes
	FROM daily_totals
	WHERE run_id = ?
	ORDER BY id ASC`

	return QueryMultiple(ctx, r.conn, query, ScanDailyTotalRows, "daily totals", runID)
}
