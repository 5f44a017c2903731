package event

import (
	"context"
	"fmt"

	"github.com/mpetrenko/calendar-insights-backend/internal/database"
	"github.com/mpetrenko/calendar-insights-backend/internal/model"
)

func (*Repository) CreateEvent(ctx context.Context, q database.Queryable, event *model.EventCreate) (int64, error) {
	qb := database.PSQL.
		Insert(database.EventsTable).
		Columns(
			"user_id",
			"event_uid",
			"summary",
			"description",
			"location",
			"is_creator",
			"creator_email",
			"is_attendee",
			"start_datetime",
			"end_datetime",
			"created_at",
		).
		Values(
			event.UserID,
			event.EventUID,
			event.Summary,
			event.Description,
			event.Location,
			event.IsCreator,
			event.CreatorEmail,
			event.IsAttendee,
			event.Start,
			event.End,
			event.CreatedAt,
		).
		Suffix("returning id")

	var id int64
	if err := q.Get(ctx, &id, qb); err != nil {
		return 0, fmt.Errorf("SQL request: %w", err)
	}

	if len(event.Attendees) != 0 {
		if err := createAttendees(ctx, q, id, event.Attendees); err != nil {
			return 0, err
		}
	}

	return id, nil
}

func createAttendees(ctx context.Context, q database.Queryable, eventID int64, attendees []*model.AttendeeCreate) error {
	qb := database.PSQL.
		Insert(database.AttendeesTable).
		Columns("event_id", "email", "response")

	for _, a := range attendees {
		qb = qb.Values(eventID, a.Email, string(a.Response))
	}

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}
