package services

import (
	"context"
	"testing"
	"time"
	_ "time/tzdata"

	"timetracking/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

func TestReportingService_BuildReport_SingleSpan(t *testing.T) {
	// Arrange
	log := setupTestLog(t,
		"2024-01-01 09:00 START proj1",
		"2024-01-01 12:07 STOP proj1",
	)
	service := NewReportingService(log)

	// Act
	report, err := service.BuildReport(context.Background(), 15)

	// Assert
	require.NoError(t, err)
	require.Len(t, report.Days, 1)
	assert.Equal(t, 3*time.Hour+15*time.Minute, report.Total(date(2024, 1, 1), "proj1"))
	assert.Empty(t, report.Active)
	assert.Empty(t, report.Warnings)
	assert.Equal(t, 15, report.RoundTo)
}

func TestReportingService_BuildReport_AccumulatesPerDay(t *testing.T) {
	log := setupTestLog(t,
		"2024-01-02 09:00 START b",
		"2024-01-02 09:20 STOP b",
		"2024-01-01 09:00 START a",
		"2024-01-01 09:05 START b",
		"2024-01-01 10:00 STOP b",
		"2024-01-01 11:00 STOP a",
		"2024-01-01 13:00 START a",
		"2024-01-01 13:10 STOP a",
	)
	service := NewReportingService(log)

	report, err := service.BuildReport(context.Background(), 15)
	require.NoError(t, err)
	require.Len(t, report.Days, 2)

	// Days ascending even though the log is not
	assert.Equal(t, date(2024, 1, 1), report.Days[0].Date)
	assert.Equal(t, date(2024, 1, 2), report.Days[1].Date)

	// Insertion order of the first STOP on that date
	first := report.Days[0]
	require.Len(t, first.Projects, 2)
	assert.Equal(t, "b", first.Projects[0].Project)
	assert.Equal(t, time.Hour, first.Projects[0].Duration, "55 minutes rounds to an hour")
	assert.Equal(t, "a", first.Projects[1].Project)
	assert.Equal(t, 2*time.Hour+15*time.Minute, first.Projects[1].Duration, "2h plus 10 minutes rounded to 15")

	assert.Equal(t, 30*time.Minute, report.Total(date(2024, 1, 2), "b"))
}

func TestReportingService_BuildReport_LastStartWins(t *testing.T) {
	log := setupTestLog(t,
		"2024-01-01 08:00 START proj1",
		"2024-01-01 09:00 START proj1",
		"2024-01-01 09:30 STOP proj1",
	)
	service := NewReportingService(log)

	report, err := service.BuildReport(context.Background(), 15)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, report.Total(date(2024, 1, 1), "proj1"))
}

func TestReportingService_BuildReport_SpanTooLong(t *testing.T) {
	log := setupTestLog(t,
		"2024-01-01 09:00 START proj1",
		"2024-01-02 09:00 STOP proj1",
		"2024-01-02 10:00 START proj2",
		"2024-01-02 10:40 STOP proj2",
	)
	service := NewReportingService(log)

	report, err := service.BuildReport(context.Background(), 15)
	require.NoError(t, err)

	require.Len(t, report.Warnings, 1)
	warning := report.Warnings[0]
	assert.Equal(t, SpanTooLong, warning.Kind)
	assert.Equal(t, 2, warning.LineNumber)
	assert.Equal(t, "2024-01-02 09:00 STOP proj1", warning.Line)
	assert.Equal(t, 24*time.Hour, warning.Elapsed)

	assert.Equal(t, time.Duration(0), report.Total(date(2024, 1, 2), "proj1"))
	assert.Equal(t, 45*time.Minute, report.Total(date(2024, 1, 2), "proj2"), "other spans still count")
	assert.Empty(t, report.Active, "the long span clears its START")
}

func TestReportingService_BuildReport_NegativeSpan(t *testing.T) {
	log := setupTestLog(t,
		"2024-01-01 12:00 START proj1",
		"2024-01-01 11:00 STOP proj1",
	)
	service := NewReportingService(log)

	report, err := service.BuildReport(context.Background(), 15)
	require.NoError(t, err)

	require.Len(t, report.Warnings, 1)
	assert.Equal(t, SpanNegative, report.Warnings[0].Kind)
	assert.Empty(t, report.Days)
}

func TestReportingService_BuildReport_StopWithoutStart(t *testing.T) {
	log := setupTestLog(t,
		"2024-01-01 08:00 STOP proj1",
		"2024-01-01 09:00 START proj1",
		"2024-01-01 09:15 STOP proj1",
	)
	service := NewReportingService(log)

	report, err := service.BuildReport(context.Background(), 15)
	require.NoError(t, err)

	require.Len(t, report.Warnings, 1)
	assert.Equal(t, StopWithoutStart, report.Warnings[0].Kind)
	assert.Equal(t, 1, report.Warnings[0].LineNumber)
	assert.Equal(t, 15*time.Minute, report.Total(date(2024, 1, 1), "proj1"))
}

func TestReportingService_BuildReport_TrailingStartIsActive(t *testing.T) {
	log := setupTestLog(t,
		"2024-01-01 09:00 START proj2",
		"2024-01-01 09:00 START proj1",
		"2024-01-01 10:00 STOP proj1",
		"2024-01-01 11:00 START proj3",
	)
	service := NewReportingService(log)

	report, err := service.BuildReport(context.Background(), 15)
	require.NoError(t, err)

	require.Len(t, report.Active, 2)
	assert.Equal(t, "proj2", report.Active[0].Project)
	assert.Equal(t, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), report.Active[0].Since)
	assert.Equal(t, "proj3", report.Active[1].Project)

	day := report.Day(date(2024, 1, 1))
	require.NotNil(t, day)
	assert.Len(t, day.Projects, 1, "active projects are never added to totals")
}

func TestReportingService_BuildReport_MidnightSpanUsesStopDate(t *testing.T) {
	log := setupTestLog(t,
		"2024-01-01 23:30 START proj1",
		"2024-01-02 00:20 STOP proj1",
	)
	service := NewReportingService(log)

	report, err := service.BuildReport(context.Background(), 15)
	require.NoError(t, err)

	assert.Nil(t, report.Day(date(2024, 1, 1)))
	assert.Equal(t, time.Hour, report.Total(date(2024, 1, 2), "proj1"))
}

func TestReportingService_BuildReport_DefaultGranularity(t *testing.T) {
	log := setupTestLog(t,
		"2024-01-01 09:00 START proj1",
		"2024-01-01 10:07 STOP proj1",
	)
	service := NewReportingService(log)

	report, err := service.BuildReport(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 15, report.RoundTo)
	assert.Equal(t, time.Hour+15*time.Minute, report.Total(date(2024, 1, 1), "proj1"))
}

func TestReportingService_BuildReport_EmptyLog(t *testing.T) {
	service := NewReportingService(setupTestLog(t))

	report, err := service.BuildReport(context.Background(), 15)
	require.NoError(t, err)
	assert.Empty(t, report.Days)
	assert.Empty(t, report.Active)
	assert.Empty(t, report.Warnings)
}

func TestReportingService_BuildReport_MalformedLog(t *testing.T) {
	log := setupTestLog(t,
		"2024-01-01 09:00 START proj1",
		"not a timestamp STOP proj1",
	)
	service := NewReportingService(log)

	report, err := service.BuildReport(context.Background(), 15)
	require.Error(t, err)
	assert.Nil(t, report)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeMalformedLog))
}

// useLocalZone switches time.Local for the duration of the test
func useLocalZone(t *testing.T, name string) {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)

	previous := time.Local
	time.Local = loc
	t.Cleanup(func() { time.Local = previous })
}

func TestReportingService_BuildReport_DaylightSavingChanges(t *testing.T) {
	useLocalZone(t, "America/New_York")

	tests := []struct {
		name     string
		lines    []string
		day      time.Time
		expected time.Duration
	}{
		{
			name:     "should measure the fall back day by wall clock",
			lines:    []string{"2024-11-03 00:30 START proj1", "2024-11-03 23:45 STOP proj1"},
			day:      date(2024, 11, 3),
			expected: 23*time.Hour + 15*time.Minute,
		},
		{
			name:     "should measure the spring forward day by wall clock",
			lines:    []string{"2024-03-10 01:30 START proj1", "2024-03-10 03:30 STOP proj1"},
			day:      date(2024, 3, 10),
			expected: 2 * time.Hour,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			service := NewReportingService(setupTestLog(t, tt.lines...))

			// Act
			report, err := service.BuildReport(context.Background(), 15)

			// Assert
			require.NoError(t, err)
			assert.Empty(t, report.Warnings)
			assert.Equal(t, tt.expected, report.Total(tt.day, "proj1"))
		})
	}
}
