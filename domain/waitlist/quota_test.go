package waitlist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayBoundsUTC(t *testing.T) {
	at := time.Date(2026, 3, 14, 15, 9, 26, 535_000_000, time.UTC)

	start, end := dayBoundsUTC(at)

	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 14, 23, 59, 59, 999_000_000, time.UTC), end)
}

func TestDayBoundsUTC_NormalizesZone(t *testing.T) {
	// 23:30 in UTC+2 is 21:30 UTC the same day; the bounds must follow UTC.
	zone := time.FixedZone("UTC+2", 2*3600)
	at := time.Date(2026, 3, 14, 23, 30, 0, 0, zone)

	start, _ := dayBoundsUTC(at)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), start)
}

func TestSecondsUntilNextMidnightUTC(t *testing.T) {
	cases := []struct {
		name string
		at   time.Time
		want int
	}{
		{
			"start of day",
			time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
			86400,
		},
		{
			"thirty seconds left",
			time.Date(2026, 3, 14, 23, 59, 30, 0, time.UTC),
			30,
		},
		{
			"fractional second rounds up",
			time.Date(2026, 3, 14, 23, 59, 59, 100_000_000, time.UTC),
			1,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, secondsUntilNextMidnightUTC(tc.at))
		})
	}
}
