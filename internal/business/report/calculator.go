package report

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/mpetrenko/calendar-insights-backend/internal/database"
	"github.com/mpetrenko/calendar-insights-backend/internal/model"
)

// calculator derives one user's reports from the event store. It
// captures "now" once at construction and memoizes the derived tables,
// so every report produced by one instance is internally consistent
// and repeated calls return identical results. A different filter or a
// fresh "now" requires a new instance.
type calculator struct {
	db     database.PGX
	events eventsRepository

	user   *model.User
	loc    *time.Location
	filter model.ReportFilter
	now    time.Time

	// First day of the month two calendar months before now, in the
	// user's zone. Anchors the "last 3 months" window.
	windowYear  int
	windowMonth time.Month

	buckets       []monthBucket
	bucketsLoaded bool

	weeks       int
	weeksLoaded bool

	attendeeCounts map[string]int
}

func newCalculator(db database.PGX, events eventsRepository, user *model.User, search string, now time.Time) *calculator {
	loc := time.UTC
	if user.TimeZone != "" {
		if l, err := time.LoadLocation(user.TimeZone); err == nil {
			loc = l
		}
	}

	now = now.In(loc)
	windowStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc).AddDate(0, -2, 0)

	return &calculator{
		db:     db,
		events: events,
		user:   user,
		loc:    loc,
		filter: model.ReportFilter{
			UserID:          user.ID,
			SummaryContains: search,
			MaxStart:        now,
		},
		now:         now,
		windowYear:  windowStart.Year(),
		windowMonth: windowStart.Month(),
	}
}

// monthlyBuckets aggregates eligible events by the (year, month) of
// their start in the user's zone. No order is guaranteed; report
// methods sort as needed.
func (c *calculator) monthlyBuckets(ctx context.Context) ([]monthBucket, error) {
	if c.bucketsLoaded {
		return c.buckets, nil
	}

	events, err := c.events.GetEligibleEvents(ctx, c.db, c.filter)
	if err != nil {
		return nil, fmt.Errorf("events.GetEligibleEvents: %w", err)
	}

	type key struct {
		year  int
		month time.Month
	}

	byMonth := map[key]*monthBucket{}
	for _, e := range events {
		start := e.Start.In(c.loc)
		k := key{year: start.Year(), month: start.Month()}

		b, ok := byMonth[k]
		if !ok {
			b = &monthBucket{year: k.year, month: k.month}
			byMonth[k] = b
		}
		b.count++
		b.duration += e.End.Sub(e.Start)
	}

	buckets := make([]monthBucket, 0, len(byMonth))
	for _, b := range byMonth {
		buckets = append(buckets, *b)
	}

	c.buckets = buckets
	c.bucketsLoaded = true
	return c.buckets, nil
}

// numberOfWeeks estimates the weeks elapsed from the earliest eligible
// event to now: whole days, divided by 7, rounded. 0 when there are no
// events, in which case weekly averages degrade to zero instead of
// dividing.
func (c *calculator) numberOfWeeks(ctx context.Context) (int, error) {
	if c.weeksLoaded {
		return c.weeks, nil
	}

	earliest, err := c.events.GetEarliestEventStart(ctx, c.db, c.filter)
	if err != nil {
		return 0, fmt.Errorf("events.GetEarliestEventStart: %w", err)
	}

	weeks := 0
	if earliest != nil {
		days := int(c.now.Sub(*earliest).Hours() / 24)
		weeks = int(math.Round(float64(days) / 7))
	}

	c.weeks = weeks
	c.weeksLoaded = true
	return c.weeks, nil
}

// collaboratorCounts counts accepted shared events per attendee email.
// The reporting user's own address is never included.
func (c *calculator) collaboratorCounts(ctx context.Context) (map[string]int, error) {
	if c.attendeeCounts != nil {
		return c.attendeeCounts, nil
	}

	attendees, err := c.events.GetAcceptedAttendees(ctx, c.db, c.filter)
	if err != nil {
		return nil, fmt.Errorf("events.GetAcceptedAttendees: %w", err)
	}

	counts := map[string]int{}
	for _, a := range attendees {
		if a.Email == c.user.Email {
			continue
		}
		counts[a.Email]++
	}

	c.attendeeCounts = counts
	return c.attendeeCounts, nil
}

func (c *calculator) EventCounts(ctx context.Context) (*model.EventCountsReport, error) {
	buckets, err := c.monthlyBuckets(ctx)
	if err != nil {
		return nil, err
	}

	weeks, err := c.numberOfWeeks(ctx)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, b := range buckets {
		total += b.count
	}

	most, least := extremes(buckets, func(b monthBucket) int64 { return int64(b.count) })
	window := lastThreeMonths(buckets, c.windowYear, c.windowMonth)

	weeklyAverage := 0.0
	if weeks != 0 {
		weeklyAverage = math.Round(float64(total)/float64(weeks)*100) / 100
	}

	return &model.EventCountsReport{
		Total:           total,
		LastThreeMonths: mapToCounts(window),
		Most:            mapToCounts(most),
		Least:           mapToCounts(least),
		WeeklyAverage:   weeklyAverage,
	}, nil
}

func (c *calculator) TimeSpent(ctx context.Context) (*model.TimeSpentReport, error) {
	buckets, err := c.monthlyBuckets(ctx)
	if err != nil {
		return nil, err
	}

	weeks, err := c.numberOfWeeks(ctx)
	if err != nil {
		return nil, err
	}

	var total time.Duration
	for _, b := range buckets {
		total += b.duration
	}

	most, least := extremes(buckets, func(b monthBucket) int64 { return int64(b.duration) })
	window := lastThreeMonths(buckets, c.windowYear, c.windowMonth)

	// A numeric zero, not a duration string, when there is nothing to
	// average over.
	var weeklyAverage interface{} = 0
	if weeks != 0 {
		secs := math.Round(total.Seconds() / float64(weeks))
		weeklyAverage = formatDuration(time.Duration(secs) * time.Second)
	}

	return &model.TimeSpentReport{
		Total:           formatDuration(total),
		LastThreeMonths: mapToDurations(window),
		Most:            mapToDurations(most),
		Least:           mapToDurations(least),
		WeeklyAverage:   weeklyAverage,
	}, nil
}

// TopAttendees ranks collaborators by shared accepted events and keeps
// the top 3 counts. Everyone tied with third place is included, so the
// list may be longer than 3.
func (c *calculator) TopAttendees(ctx context.Context) (*model.AttendeesReport, error) {
	counts, err := c.collaboratorCounts(ctx)
	if err != nil {
		return nil, err
	}

	return &model.AttendeesReport{
		TopAttendees: topAttendees(counts, 3),
	}, nil
}

func mapToCounts(buckets []monthBucket) []model.MonthCount {
	res := make([]model.MonthCount, len(buckets))
	for i, b := range buckets {
		res[i] = model.MonthCount{Month: b.label(), Value: b.count}
	}
	return res
}

func mapToDurations(buckets []monthBucket) []model.MonthDuration {
	res := make([]model.MonthDuration, len(buckets))
	for i, b := range buckets {
		res[i] = model.MonthDuration{Month: b.label(), Value: formatDuration(b.duration)}
	}
	return res
}
