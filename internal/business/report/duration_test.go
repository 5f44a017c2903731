package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"zero", 0, "0:00:00"},
		{"minute", time.Minute, "0:01:00"},
		{"hour", time.Hour, "1:00:00"},
		{"with seconds", 9*time.Hour + 30*time.Minute + 15*time.Second, "9:30:15"},
		{"just under a day", 23*time.Hour + 59*time.Minute + 59*time.Second, "23:59:59"},
		{"single day", 32 * time.Hour, "1 day, 8:00:00"},
		{"exact days", 48 * time.Hour, "2 days, 0:00:00"},
		{"many days", 10*24*time.Hour + 2*time.Hour + 5*time.Second, "10 days, 2:00:05"},
		{"sub-second discarded", time.Hour + 500*time.Millisecond, "1:00:00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, formatDuration(tc.d))
		})
	}
}
