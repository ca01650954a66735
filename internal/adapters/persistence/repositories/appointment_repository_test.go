package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayWindow(t *testing.T) {
	kolkata := time.FixedZone("IST", 5*3600+1800)

	cases := []struct {
		name string
		day  time.Time
	}{
		{"local midnight", time.Date(2026, time.August, 29, 0, 0, 0, 0, kolkata)},
		{"mid-morning instant", time.Date(2026, time.August, 29, 8, 30, 0, 0, kolkata)},
		{"just before next midnight", time.Date(2026, time.August, 29, 23, 59, 59, 0, kolkata)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := dayWindow(tc.day)
			assert.Equal(t, time.Date(2026, time.August, 29, 0, 0, 0, 0, kolkata), start)
			assert.Equal(t, time.Date(2026, time.August, 30, 0, 0, 0, 0, kolkata), end)
			assert.Equal(t, kolkata.String(), start.Location().String())
		})
	}

	// An appointment stored at 00:30 local falls inside its own day's window.
	early := time.Date(2026, time.August, 29, 0, 30, 0, 0, kolkata)
	start, end := dayWindow(time.Date(2026, time.August, 29, 8, 30, 0, 0, kolkata))
	assert.False(t, early.Before(start))
	assert.True(t, early.Before(end))
}
