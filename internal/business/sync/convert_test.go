package sync

import (
	"testing"

	"github.com/mpetrenko/calendar-insights-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	calendar "google.golang.org/api/calendar/v3"
)

func TestMapToEventCreate(t *testing.T) {
	item := &calendar.Event{
		Id:          "evt-1",
		Summary:     "Planning",
		Description: "Quarterly planning",
		Location:    "Room 4",
		Created:     "2021-03-01T09:00:00Z",
		Creator:     &calendar.EventCreator{Email: "organizer@example.com"},
		Start:       &calendar.EventDateTime{DateTime: "2021-03-05T10:00:00Z"},
		End:         &calendar.EventDateTime{DateTime: "2021-03-05T11:30:00Z"},
		Attendees: []*calendar.EventAttendee{
			{Email: "me@example.com", Self: true, ResponseStatus: "accepted"},
			{Email: "organizer@example.com", ResponseStatus: "accepted"},
			{Email: "maybe@example.com", ResponseStatus: "tentative"},
		},
	}

	e, ok := mapToEventCreate(item, 7)
	require.True(t, ok)

	assert.Equal(t, int64(7), e.UserID)
	assert.Equal(t, "evt-1", e.EventUID)
	assert.Equal(t, "Planning", e.Summary)
	assert.Equal(t, "Room 4", e.Location)
	assert.False(t, e.IsCreator)
	assert.Equal(t, "organizer@example.com", e.CreatorEmail)
	assert.True(t, e.IsAttendee)
	assert.Equal(t, "2021-03-05T10:00:00Z", e.Start.Format("2006-01-02T15:04:05Z07:00"))
	assert.Equal(t, 90*60.0, e.End.Sub(e.Start).Seconds())

	// The self entry is dropped; everyone else keeps their response.
	require.Len(t, e.Attendees, 2)
	assert.Equal(t, "organizer@example.com", e.Attendees[0].Email)
	assert.Equal(t, model.ResponseAccepted, e.Attendees[0].Response)
	assert.Equal(t, model.ResponseTentative, e.Attendees[1].Response)
}

func TestMapToEventCreateSelfNotAccepted(t *testing.T) {
	item := &calendar.Event{
		Id:    "evt-2",
		Start: &calendar.EventDateTime{DateTime: "2021-03-05T10:00:00Z"},
		End:   &calendar.EventDateTime{DateTime: "2021-03-05T11:00:00Z"},
		Attendees: []*calendar.EventAttendee{
			{Email: "me@example.com", Self: true, ResponseStatus: "declined"},
		},
	}

	e, ok := mapToEventCreate(item, 7)
	require.True(t, ok)

	assert.False(t, e.IsAttendee)
	assert.Empty(t, e.Attendees)
}

func TestMapToEventCreateOwnCalendarEvent(t *testing.T) {
	item := &calendar.Event{
		Id:      "evt-3",
		Creator: &calendar.EventCreator{Email: "me@example.com", Self: true},
		Start:   &calendar.EventDateTime{DateTime: "2021-03-05T10:00:00Z"},
		End:     &calendar.EventDateTime{DateTime: "2021-03-05T11:00:00Z"},
	}

	e, ok := mapToEventCreate(item, 7)
	require.True(t, ok)

	assert.True(t, e.IsCreator)
	assert.Empty(t, e.CreatorEmail)
}

func TestMapToEventCreateSkipsAllDay(t *testing.T) {
	item := &calendar.Event{
		Id:    "evt-4",
		Start: &calendar.EventDateTime{Date: "2021-03-05"},
		End:   &calendar.EventDateTime{Date: "2021-03-06"},
	}

	_, ok := mapToEventCreate(item, 7)
	assert.False(t, ok)
}

func TestMapToEventCreateSkipsMalformedTimes(t *testing.T) {
	item := &calendar.Event{
		Id:    "evt-5",
		Start: &calendar.EventDateTime{DateTime: "not-a-time"},
		End:   &calendar.EventDateTime{DateTime: "2021-03-05T11:00:00Z"},
	}

	_, ok := mapToEventCreate(item, 7)
	assert.False(t, ok)
}
