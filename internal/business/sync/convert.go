package sync

import (
	"time"

	"github.com/mpetrenko/calendar-insights-backend/internal/model"
	calendar "google.golang.org/api/calendar/v3"
)

// mapToEventCreate converts a provider event to the stored model.
// Events without a concrete start time (all-day entries) and events
// with unparsable timestamps are skipped. IsAttendee is true only when
// the user's own attendee entry carries an accepted response; the self
// entry itself is never stored as an attendee row.
func mapToEventCreate(item *calendar.Event, userID int64) (*model.EventCreate, bool) {
	if item.Start == nil || item.Start.DateTime == "" || item.End == nil {
		return nil, false
	}

	start, err := time.Parse(time.RFC3339, item.Start.DateTime)
	if err != nil {
		return nil, false
	}

	end, err := time.Parse(time.RFC3339, item.End.DateTime)
	if err != nil {
		return nil, false
	}

	e := &model.EventCreate{
		UserID:      userID,
		EventUID:    item.Id,
		Summary:     item.Summary,
		Description: item.Description,
		Location:    item.Location,
		Start:       start,
		End:         end,
	}

	if created, err := time.Parse(time.RFC3339, item.Created); err == nil {
		e.CreatedAt = created
	}

	if item.Creator != nil {
		e.IsCreator = item.Creator.Self
		if !e.IsCreator {
			e.CreatorEmail = item.Creator.Email
		}
	}

	for _, a := range item.Attendees {
		if a.Self {
			e.IsAttendee = a.ResponseStatus == string(model.ResponseAccepted)
			continue
		}

		e.Attendees = append(e.Attendees, &model.AttendeeCreate{
			Email:    a.Email,
			Response: model.ResponseStatus(a.ResponseStatus),
		})
	}

	return e, true
}
