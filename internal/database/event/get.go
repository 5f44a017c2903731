package event

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/mpetrenko/calendar-insights-backend/internal/database"
	"github.com/mpetrenko/calendar-insights-backend/internal/model"
)

func (*Repository) GetEligibleEvents(ctx context.Context, q database.Queryable, filter model.ReportFilter) ([]*model.Event, error) {
	qb := baseQuery.
		Where(eligiblePredicate("", filter))

	var dtos []*eventDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.Event, len(dtos))
	for i, d := range dtos {
		res[i] = mapToEvent(d)
	}

	return res, nil
}

// GetAcceptedAttendees returns attendee rows with an accepted response
// on the user's eligible events. The user's own response is never
// stored as a row, so the result only contains other participants.
func (*Repository) GetAcceptedAttendees(ctx context.Context, q database.Queryable, filter model.ReportFilter) ([]*model.Attendee, error) {
	qb := database.PSQL.
		Select("a.id", "a.event_id", "a.email", "a.response").
		From(database.AttendeesTable + " a").
		Join(database.EventsTable + " e on e.id = a.event_id").
		Where(sq.Eq{"a.response": string(model.ResponseAccepted)}).
		Where(eligiblePredicate("e.", filter))

	var dtos []*attendeeDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.Attendee, len(dtos))
	for i, d := range dtos {
		res[i] = mapToAttendee(d)
	}

	return res, nil
}

// GetEarliestEventStart returns the start of the oldest eligible event,
// or nil when the user has none.
func (*Repository) GetEarliestEventStart(ctx context.Context, q database.Queryable, filter model.ReportFilter) (*time.Time, error) {
	qb := database.PSQL.
		Select("min(start_datetime)").
		From(database.EventsTable).
		Where(eligiblePredicate("", filter))

	var earliest *time.Time
	if err := q.Get(ctx, &earliest, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	return earliest, nil
}
