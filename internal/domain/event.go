package domain

import (
	"fmt"
	"time"
)

// TimestampLayout is the layout of the date and time fields of a log line.
const TimestampLayout = "2006-01-02 15:04"

// DateLayout is the layout of the date field of a log line.
const DateLayout = "2006-01-02"

// Command is the action recorded by a tracking event.
type Command string

const (
	CommandStart Command = "START"
	CommandStop  Command = "STOP"
)

// ParseCommand returns the command for token. Matching is exact.
func ParseCommand(token string) (Command, bool) {
	switch Command(token) {
	case CommandStart:
		return CommandStart, true
	case CommandStop:
		return CommandStop, true
	default:
		return "", false
	}
}

// String returns the command as it is written to the log.
func (c Command) String() string {
	return string(c)
}

// Event represents one line of the tracking log.
// Events are immutable once appended.
type Event struct {
	Timestamp time.Time
	Command   Command
	Project   string
}

// NewEvent creates an event for project at the given time, truncated to the minute.
func NewEvent(command Command, project string, at time.Time) Event {
	return Event{
		Timestamp: at.Truncate(time.Minute),
		Command:   command,
		Project:   project,
	}
}

// Date returns the calendar date of the event in log format.
func (e Event) Date() string {
	return e.Timestamp.Format(DateLayout)
}

// String returns the event serialized as a log line without the trailing newline.
func (e Event) String() string {
	return fmt.Sprintf("%s %s %s", e.Timestamp.Format(TimestampLayout), e.Command, e.Project)
}
