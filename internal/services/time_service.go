package services

import (
	"fmt"
	"time"
)

// DefaultRoundMinutes is the granularity used when a non-positive one is requested
const DefaultRoundMinutes = 15

// maxSpan is the length at which a span is treated as a forgotten STOP
const maxSpan = 24 * time.Hour

// NormalizeRoundMinutes returns g, or the default granularity if g is not positive
func NormalizeRoundMinutes(g int) int {
	if g < 1 {
		return DefaultRoundMinutes
	}
	return g
}

// RoundElapsed rounds the minute component of d up to a multiple of
// roundToMinutes. Seconds are dropped and whole hours are kept as they are,
// so 58 minutes at a granularity of 15 becomes one hour.
func RoundElapsed(d time.Duration, roundToMinutes int) time.Duration {
	g := NormalizeRoundMinutes(roundToMinutes)

	hours := d / time.Hour
	minutes := int((d % time.Hour) / time.Minute)
	if rem := minutes % g; rem != 0 {
		minutes += g - rem
	}

	return hours*time.Hour + time.Duration(minutes)*time.Minute
}

// FormatDuration formats a duration as hours and minutes
func FormatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", hours, minutes)
}
