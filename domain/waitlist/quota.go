package waitlist

import (
	"math"
	"time"
)

// dayBoundsUTC returns the inclusive bounds of the UTC calendar day holding
// t: 00:00:00.000 through 23:59:59.999.
func dayBoundsUTC(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24*time.Hour - time.Millisecond)
	return start, end
}

// secondsUntilNextMidnightUTC is the Retry-After value for a throttled
// request: whole seconds until the limiter window resets, at least 1.
func secondsUntilNextMidnightUTC(t time.Time) int {
	t = t.UTC()
	dayStart := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	nextMidnight := dayStart.Add(24 * time.Hour)

	seconds := int(math.Ceil(nextMidnight.Sub(t).Seconds()))
	if seconds < 1 {
		seconds = 1
	}
	return seconds
}
