package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mpetrenko/calendar-insights-backend/internal/database"
	"github.com/mpetrenko/calendar-insights-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventsRepository struct {
	events    []*model.Event
	attendees []*model.Attendee
	earliest  *time.Time
	err       error

	eventsCalls    int
	attendeesCalls int
	earliestCalls  int
	lastFilter     model.ReportFilter
}

func (f *fakeEventsRepository) GetEligibleEvents(_ context.Context, _ database.Queryable, filter model.ReportFilter) ([]*model.Event, error) {
	f.eventsCalls++
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

func (f *fakeEventsRepository) GetAcceptedAttendees(_ context.Context, _ database.Queryable, filter model.ReportFilter) ([]*model.Attendee, error) {
	f.attendeesCalls++
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	return f.attendees, nil
}

func (f *fakeEventsRepository) GetEarliestEventStart(_ context.Context, _ database.Queryable, filter model.ReportFilter) (*time.Time, error) {
	f.earliestCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.earliest, nil
}

func monthEvents(year int, month time.Month, count int, each time.Duration) []*model.Event {
	res := make([]*model.Event, count)
	for i := range res {
		start := time.Date(year, month, 2, 10, 0, 0, 0, time.UTC).AddDate(0, 0, i)
		res[i] = &model.Event{EventCreate: model.EventCreate{
			Start: start,
			End:   start.Add(each),
		}}
	}
	return res
}

func timePtr(t time.Time) *time.Time {
	return &t
}

// now in November 2019 puts the reference window start at 2019-09-01;
// an earliest event exactly 336 days back makes 48 weeks.
var testNow = time.Date(2019, time.November, 20, 12, 0, 0, 0, time.UTC)

func TestEventCounts(t *testing.T) {
	var events []*model.Event
	events = append(events, monthEvents(2019, time.January, 5, time.Hour)...)
	events = append(events, monthEvents(2019, time.November, 8, time.Hour)...)
	events = append(events, monthEvents(2019, time.February, 10, time.Hour)...)
	events = append(events, monthEvents(2019, time.September, 15, time.Hour)...)
	events = append(events, monthEvents(2019, time.July, 18, time.Hour)...)

	fake := &fakeEventsRepository{
		events:   events,
		earliest: timePtr(testNow.AddDate(0, 0, -336)),
	}

	c := newCalculator(nil, fake, &model.User{ID: 1}, "", testNow)

	res, err := c.EventCounts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 56, res.Total)
	assert.Equal(t, []model.MonthCount{
		{Month: "2019-09", Value: 15},
		{Month: "2019-11", Value: 8},
	}, res.LastThreeMonths)
	assert.Equal(t, []model.MonthCount{{Month: "2019-07", Value: 18}}, res.Most)
	assert.Equal(t, []model.MonthCount{{Month: "2019-01", Value: 5}}, res.Least)
	assert.Equal(t, 1.17, res.WeeklyAverage)
}

func TestEventCountsEmpty(t *testing.T) {
	fake := &fakeEventsRepository{}

	c := newCalculator(nil, fake, &model.User{ID: 1}, "", testNow)

	res, err := c.EventCounts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, res.Total)
	assert.Empty(t, res.LastThreeMonths)
	assert.NotNil(t, res.LastThreeMonths)
	assert.Empty(t, res.Most)
	assert.Empty(t, res.Least)
	assert.Equal(t, 0.0, res.WeeklyAverage)
}

func TestTimeSpent(t *testing.T) {
	var events []*model.Event
	events = append(events, monthEvents(2019, time.January, 1, 4*time.Hour)...)
	events = append(events, monthEvents(2019, time.November, 1, time.Hour)...)
	events = append(events, monthEvents(2019, time.February, 1, 32*time.Hour)...)
	events = append(events, monthEvents(2019, time.September, 1, 2*time.Hour)...)
	events = append(events, monthEvents(2019, time.July, 1, 9*time.Hour)...)

	fake := &fakeEventsRepository{
		events:   events,
		earliest: timePtr(testNow.AddDate(0, 0, -336)),
	}

	c := newCalculator(nil, fake, &model.User{ID: 1}, "", testNow)

	res, err := c.TimeSpent(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2 days, 0:00:00", res.Total)
	assert.Equal(t, []model.MonthDuration{
		{Month: "2019-09", Value: "2:00:00"},
		{Month: "2019-11", Value: "1:00:00"},
	}, res.LastThreeMonths)
	assert.Equal(t, []model.MonthDuration{{Month: "2019-02", Value: "1 day, 8:00:00"}}, res.Most)
	assert.Equal(t, []model.MonthDuration{{Month: "2019-11", Value: "1:00:00"}}, res.Least)
	// 48h over 48 weeks averages an hour a week.
	assert.Equal(t, "1:00:00", res.WeeklyAverage)
}

func TestTimeSpentEmpty(t *testing.T) {
	fake := &fakeEventsRepository{}

	c := newCalculator(nil, fake, &model.User{ID: 1}, "", testNow)

	res, err := c.TimeSpent(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "0:00:00", res.Total)
	assert.Empty(t, res.LastThreeMonths)
	assert.Empty(t, res.Most)
	assert.Empty(t, res.Least)
	assert.Equal(t, 0, res.WeeklyAverage)
}

func TestTimeZoneBucketing(t *testing.T) {
	// 23:30 UTC on January 31st is already February in Moscow.
	start := time.Date(2019, time.January, 31, 23, 30, 0, 0, time.UTC)
	fake := &fakeEventsRepository{
		events: []*model.Event{{EventCreate: model.EventCreate{
			Start: start,
			End:   start.Add(time.Hour),
		}}},
		earliest: timePtr(start),
	}

	user := &model.User{ID: 1, UserCreate: model.UserCreate{TimeZone: "Europe/Moscow"}}
	c := newCalculator(nil, fake, user, "", testNow)

	res, err := c.EventCounts(context.Background())
	require.NoError(t, err)

	require.Len(t, res.Most, 1)
	assert.Equal(t, "2019-02", res.Most[0].Month)
}

func TestUnknownTimeZoneFallsBackToUTC(t *testing.T) {
	start := time.Date(2019, time.January, 31, 23, 30, 0, 0, time.UTC)
	fake := &fakeEventsRepository{
		events: []*model.Event{{EventCreate: model.EventCreate{
			Start: start,
			End:   start.Add(time.Hour),
		}}},
		earliest: timePtr(start),
	}

	user := &model.User{ID: 1, UserCreate: model.UserCreate{TimeZone: "Pluto/Crater"}}
	c := newCalculator(nil, fake, user, "", testNow)

	res, err := c.EventCounts(context.Background())
	require.NoError(t, err)

	require.Len(t, res.Most, 1)
	assert.Equal(t, "2019-01", res.Most[0].Month)
}

func TestTopAttendees(t *testing.T) {
	attendee := func(email string, n int) []*model.Attendee {
		res := make([]*model.Attendee, n)
		for i := range res {
			res[i] = &model.Attendee{AttendeeCreate: model.AttendeeCreate{
				Email:    email,
				Response: model.ResponseAccepted,
			}}
		}
		return res
	}

	var attendees []*model.Attendee
	attendees = append(attendees, attendee("colleague@example.com", 4)...)
	attendees = append(attendees, attendee("boss@example.com", 2)...)
	// The reporting user's own rows never count.
	attendees = append(attendees, attendee("me@example.com", 10)...)

	fake := &fakeEventsRepository{attendees: attendees}

	user := &model.User{ID: 1, UserCreate: model.UserCreate{Email: "me@example.com"}}
	c := newCalculator(nil, fake, user, "", testNow)

	res, err := c.TopAttendees(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []model.AttendeeCount{
		{Name: "colleague@example.com", NumberOfEvents: 4},
		{Name: "boss@example.com", NumberOfEvents: 2},
	}, res.TopAttendees)
}

func TestTopAttendeesEmpty(t *testing.T) {
	fake := &fakeEventsRepository{}

	c := newCalculator(nil, fake, &model.User{ID: 1}, "", testNow)

	res, err := c.TopAttendees(context.Background())
	require.NoError(t, err)

	assert.Empty(t, res.TopAttendees)
	assert.NotNil(t, res.TopAttendees)
}

func TestReportsAreMemoized(t *testing.T) {
	fake := &fakeEventsRepository{
		events:   monthEvents(2019, time.July, 3, time.Hour),
		earliest: timePtr(testNow.AddDate(0, 0, -70)),
	}

	c := newCalculator(nil, fake, &model.User{ID: 1}, "", testNow)
	ctx := context.Background()

	first, err := c.EventCounts(ctx)
	require.NoError(t, err)
	second, err := c.EventCounts(ctx)
	require.NoError(t, err)
	_, err = c.TimeSpent(ctx)
	require.NoError(t, err)
	_, err = c.TopAttendees(ctx)
	require.NoError(t, err)
	_, err = c.TopAttendees(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, fake.eventsCalls)
	assert.Equal(t, 1, fake.earliestCalls)
	assert.Equal(t, 1, fake.attendeesCalls)
}

func TestFilterCarriesSearchAndNow(t *testing.T) {
	fake := &fakeEventsRepository{}

	c := newCalculator(nil, fake, &model.User{ID: 42}, "standup", testNow)

	_, err := c.EventCounts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(42), fake.lastFilter.UserID)
	assert.Equal(t, "standup", fake.lastFilter.SummaryContains)
	assert.True(t, fake.lastFilter.MaxStart.Equal(testNow))
}

func TestStoreErrorsPropagate(t *testing.T) {
	fake := &fakeEventsRepository{err: errors.New("connection refused")}

	c := newCalculator(nil, fake, &model.User{ID: 1}, "", testNow)

	_, err := c.EventCounts(context.Background())
	assert.ErrorContains(t, err, "connection refused")

	_, err = c.TopAttendees(context.Background())
	assert.ErrorContains(t, err, "connection refused")
}
