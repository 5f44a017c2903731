package report

import (
	"fmt"
	"time"
)

// formatDuration renders a duration as "D days, H:MM:SS", with the day
// part omitted when zero ("8:00:00") and singular when one
// ("1 day, 8:00:00"). Sub-second precision is discarded; callers deal
// in whole seconds.
func formatDuration(d time.Duration) string {
	secs := int64(d / time.Second)

	days := secs / 86400
	secs %= 86400
	hms := fmt.Sprintf("%d:%02d:%02d", secs/3600, secs%3600/60, secs%60)

	switch {
	case days == 0:
		return hms
	case days == 1:
		return "1 day, " + hms
	default:
		return fmt.Sprintf("%d days, %s", days, hms)
	}
}
