package report

import (
	"sort"

	"github.com/mpetrenko/calendar-insights-backend/internal/model"
)

// topAttendees picks the n largest counts, keeping everyone tied with
// the n-th entry. Ordered by count descending, then email, so ties
// come out deterministically.
func topAttendees(counts map[string]int, n int) []model.AttendeeCount {
	entries := make([]model.AttendeeCount, 0, len(counts))
	for email, count := range counts {
		entries = append(entries, model.AttendeeCount{Name: email, NumberOfEvents: count})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].NumberOfEvents != entries[j].NumberOfEvents {
			return entries[i].NumberOfEvents > entries[j].NumberOfEvents
		}
		return entries[i].Name < entries[j].Name
	})

	if len(entries) <= n {
		return entries
	}

	cutoff := entries[n-1].NumberOfEvents
	res := entries[:n:n]
	for _, e := range entries[n:] {
		if e.NumberOfEvents != cutoff {
			break
		}
		res = append(res, e)
	}

	return res
}
