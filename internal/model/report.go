package model

// MonthCount is one month's event count, with the month rendered as
// a zero-padded "YYYY-MM" label.
type MonthCount struct {
	Month string
	Value int
}

// MonthDuration is one month's total meeting time, rendered as a
// "D days, H:MM:SS" style string.
type MonthDuration struct {
	Month string
	Value string
}

type EventCountsReport struct {
	Total           int
	LastThreeMonths []MonthCount
	Most            []MonthCount
	Least           []MonthCount
	WeeklyAverage   float64
}

type TimeSpentReport struct {
	Total           string
	LastThreeMonths []MonthDuration
	Most            []MonthDuration
	Least           []MonthDuration
	// WeeklyAverage is a duration string, or the number 0 when there
	// are no weeks to average over.
	WeeklyAverage interface{}
}

type AttendeeCount struct {
	Name           string
	NumberOfEvents int
}

type AttendeesReport struct {
	TopAttendees []AttendeeCount
}

type Report struct {
	NumberOfEvents *EventCountsReport
	TimeSpent      *TimeSpentReport
	Attendee       *AttendeesReport
}
