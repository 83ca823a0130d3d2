package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// CombineDateAndTime builds a timezone-aware instant from a calendar date,
// a clock time and a location. Lecture windows are stored as a date plus
// wall-clock times and only become comparable instants in the lecture's
// own timezone.
func CombineDateAndTime(date time.Time, clock time.Time, loc *time.Location) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0,
		loc,
	)
}
