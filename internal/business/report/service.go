package report

import (
	"context"
	"time"

	"github.com/mpetrenko/calendar-insights-backend/internal/database"
	"github.com/mpetrenko/calendar-insights-backend/internal/model"
)

// Service builds calendar reports. Each request gets its own
// calculator so the three sections of a report are computed from one
// consistent point-in-time view of the store.
type Service struct {
	db     database.PGX
	events eventsRepository
}

type eventsRepository interface {
	GetEligibleEvents(ctx context.Context, q database.Queryable, filter model.ReportFilter) ([]*model.Event, error)
	GetAcceptedAttendees(ctx context.Context, q database.Queryable, filter model.ReportFilter) ([]*model.Attendee, error)
	GetEarliestEventStart(ctx context.Context, q database.Queryable, filter model.ReportFilter) (*time.Time, error)
}

func NewService(db database.PGX, events eventsRepository) *Service {
	return &Service{
		db:     db,
		events: events,
	}
}

// BuildReport computes the three report sections for a user. search
// narrows events to summaries containing the text, case-insensitively;
// an empty string means no filter.
func (s *Service) BuildReport(ctx context.Context, user *model.User, search string) (*model.Report, error) {
	c := newCalculator(s.db, s.events, user, search, time.Now())

	numberOfEvents, err := c.EventCounts(ctx)
	if err != nil {
		return nil, err
	}

	timeSpent, err := c.TimeSpent(ctx)
	if err != nil {
		return nil, err
	}

	attendee, err := c.TopAttendees(ctx)
	if err != nil {
		return nil, err
	}

	return &model.Report{
		NumberOfEvents: numberOfEvents,
		TimeSpent:      timeSpent,
		Attendee:       attendee,
	}, nil
}
