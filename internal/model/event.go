package model

import "time"

// ResponseStatus is an attendee's reply to an invitation, as reported
// by the calendar provider.
type ResponseStatus string

const (
	ResponseNeedsAction ResponseStatus = "needsAction"
	ResponseDeclined    ResponseStatus = "declined"
	ResponseTentative   ResponseStatus = "tentative"
	ResponseAccepted    ResponseStatus = "accepted"
)

type EventCreate struct {
	UserID       int64
	EventUID     string
	Summary      string
	Description  string
	Location     string
	IsCreator    bool
	CreatorEmail string
	IsAttendee   bool
	Start        time.Time
	End          time.Time
	CreatedAt    time.Time
	Attendees    []*AttendeeCreate
}

type Event struct {
	ID int64
	EventCreate
}

type AttendeeCreate struct {
	Email    string
	Response ResponseStatus
}

type Attendee struct {
	ID      int64
	EventID int64
	AttendeeCreate
}

// ReportFilter selects the eligible event set for one report request:
// the user's accepted events that started no later than MaxStart,
// optionally narrowed by a case-insensitive substring match on summary.
type ReportFilter struct {
	UserID          int64
	SummaryContains string
	MaxStart        time.Time
}
