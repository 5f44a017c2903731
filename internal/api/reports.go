package api

import (
	"fmt"
	"net/http"

	"github.com/mpetrenko/calendar-insights-backend/internal/model"
)

type monthCountResp struct {
	Month string `json:"month"`
	Value int    `json:"value"`
}

type monthDurationResp struct {
	Month string `json:"month"`
	Value string `json:"value"`
}

type eventCountsResp struct {
	Total         int              `json:"total"`
	Last3Months   []monthCountResp `json:"last_3_months"`
	Most          []monthCountResp `json:"most"`
	Least         []monthCountResp `json:"least"`
	WeeklyAverage float64          `json:"weekly_average"`
}

type timeSpentResp struct {
	Total         string              `json:"total"`
	Last3Months   []monthDurationResp `json:"last_3_months"`
	Most          []monthDurationResp `json:"most"`
	Least         []monthDurationResp `json:"least"`
	WeeklyAverage interface{}         `json:"weekly_average"`
}

type topAttendeeResp struct {
	Name           string `json:"name"`
	NumberOfEvents int    `json:"number_of_events"`
}

type attendeeResp struct {
	TopAttendees []topAttendeeResp `json:"top_attendees"`
}

type reportResp struct {
	NumberOfEvents *eventCountsResp `json:"number_of_events"`
	TimeSpent      *timeSpentResp   `json:"time_spent"`
	Attendee       *attendeeResp    `json:"attendee"`
}

// getReportHandler serves the aggregated calendar report. The optional
// search parameter narrows events to summaries containing the text.
func (a *Api) getReportHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(contextKeyUser).(*model.User)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveUser)
		return
	}

	report, err := a.reports.BuildReport(r.Context(), user, r.URL.Query().Get("search"))
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("build report: %w", err))
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapToReportResp(report), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func mapToReportResp(report *model.Report) *reportResp {
	counts, _ := mapSlice(report.NumberOfEvents.LastThreeMonths, mapToMonthCountResp)
	mostCounts, _ := mapSlice(report.NumberOfEvents.Most, mapToMonthCountResp)
	leastCounts, _ := mapSlice(report.NumberOfEvents.Least, mapToMonthCountResp)

	durations, _ := mapSlice(report.TimeSpent.LastThreeMonths, mapToMonthDurationResp)
	mostDurations, _ := mapSlice(report.TimeSpent.Most, mapToMonthDurationResp)
	leastDurations, _ := mapSlice(report.TimeSpent.Least, mapToMonthDurationResp)

	attendees, _ := mapSlice(report.Attendee.TopAttendees, func(a model.AttendeeCount) (topAttendeeResp, error) {
		return topAttendeeResp{Name: a.Name, NumberOfEvents: a.NumberOfEvents}, nil
	})

	return &reportResp{
		NumberOfEvents: &eventCountsResp{
			Total:         report.NumberOfEvents.Total,
			Last3Months:   counts,
			Most:          mostCounts,
			Least:         leastCounts,
			WeeklyAverage: report.NumberOfEvents.WeeklyAverage,
		},
		TimeSpent: &timeSpentResp{
			Total:         report.TimeSpent.Total,
			Last3Months:   durations,
			Most:          mostDurations,
			Least:         leastDurations,
			WeeklyAverage: report.TimeSpent.WeeklyAverage,
		},
		Attendee: &attendeeResp{
			TopAttendees: attendees,
		},
	}
}

func mapToMonthCountResp(m model.MonthCount) (monthCountResp, error) {
	return monthCountResp{Month: m.Month, Value: m.Value}, nil
}

func mapToMonthDurationResp(m model.MonthDuration) (monthDurationResp, error) {
	return monthDurationResp{Month: m.Month, Value: m.Value}, nil
}
