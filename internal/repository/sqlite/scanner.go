package sqlite

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanExportRun scans a single export run from a database row
func ScanExportRun(scanner Scanner) (*ExportRun, error) {
	run := &ExportRun{}
	var exportedAt string

	err := scanner.Scan(&run.ID, &exportedAt, &run.SourcePath, &run.RoundMinutes)
	if err != nil {
		return nil, err
	}

	run.ExportedAt, err = ParseTimeFromDB(exportedAt)
	if err != nil {
		return nil, err
	}
	return run, nil
}

// ScanExportRuns scans multiple export runs from database rows
func ScanExportRuns(rows Rows) ([]*ExportRun, error) {
	return scanAll(rows, ScanExportRun)
}

// ScanEventRow scans a single exported event from a database row
func ScanEventRow(scanner Scanner) (*EventRow, error) {
	event := &EventRow{}
	var occurredAt string

	err := scanner.Scan(&event.ID, &event.RunID, &event.LineNumber, &occurredAt, &event.Command, &event.Project)
	if err != nil {
		return nil, err
	}

	event.OccurredAt, err = ParseTimeFromDB(occurredAt)
	if err != nil {
		return nil, err
	}
	return event, nil
}

// ScanEventRows scans multiple exported events from database rows
func ScanEventRows(rows Rows) ([]*EventRow, error) {
	return scanAll(rows, ScanEventRow)
}

// ScanDailyTotalRow scans a single daily total from a database row
func ScanDailyTotalRow(scanner Scanner) (*DailyTotalRow, error) {
	total := &DailyTotalRow{}
	err := scanner.Scan(&total.ID, &total.RunID, &total.Day, &total.Project, &total.Minutes)
	if err != nil {
		return nil, err
	}
	return total, nil
}

// ScanDailyTotalRows scans multiple daily totals from database rows
func ScanDailyTotalRows(rows Rows) ([]*DailyTotalRow, error) {
	return scanAll(rows, ScanDailyTotalRow)
}

func scanAll[T any](rows Rows, scanOne func(Scanner) (*T, error)) ([]*T, error) {
	var results []*T
	for rows.Next() {
		item, err := scanOne(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
