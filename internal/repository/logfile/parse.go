package logfile

import (
	"fmt"
	"strings"
	"time"

	"timetracking/internal/domain"
	"timetracking/internal/errors"
)

// timestampLayouts are tried in order when parsing the timestamp fields of a line.
var timestampLayouts = []string{
	domain.TimestampLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

// Record is a parsed log line together with its position in the file.
type Record struct {
	LineNumber int
	Line       string
	Event      domain.Event
}

// isBlank reports whether line holds no fields at all.
func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// splitCommand returns the last two whitespace-separated tokens of line as
// (command, project). The timestamp fields in front of them are not inspected.
func splitCommand(lineNumber int, line string) (domain.Command, string, []string, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", "", nil, errors.NewMalformedLogError(lineNumber, line, "expected a command and a project name")
	}

	token := fields[len(fields)-2]
	command, ok := domain.ParseCommand(token)
	if !ok {
		return "", "", nil, errors.NewMalformedLogError(lineNumber, line, fmt.Sprintf("invalid tracker command %s", token))
	}

	return command, fields[len(fields)-1], fields[:len(fields)-2], nil
}

// ParseRecord fully parses one log line, including its timestamp.
func ParseRecord(lineNumber int, line string) (Record, error) {
	command, project, timestampFields, err := splitCommand(lineNumber, line)
	if err != nil {
		return Record{}, err
	}
	if len(timestampFields) == 0 {
		return Record{}, errors.NewMalformedLogError(lineNumber, line, "missing timestamp")
	}

	timestamp, err := parseTimestamp(strings.Join(timestampFields, " "))
	if err != nil {
		return Record{}, errors.NewMalformedLogError(lineNumber, line, err.Error())
	}

	return Record{
		LineNumber: lineNumber,
		Line:       line,
		Event:      domain.NewEvent(command, project, timestamp),
	}, nil
}

// parseTimestamp reads a naive wall-clock timestamp. It is held in UTC so that
// differences between timestamps never shift across daylight saving changes.
func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", value)
}
