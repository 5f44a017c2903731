package report

import (
	"context"
	"testing"
	"time"

	"github.com/mpetrenko/calendar-insights-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReport(t *testing.T) {
	earliest := time.Now().AddDate(0, 0, -14)
	fake := &fakeEventsRepository{
		events:   monthEvents(earliest.Year(), earliest.Month(), 2, time.Hour),
		earliest: &earliest,
	}

	s := NewService(nil, fake)

	report, err := s.BuildReport(context.Background(), &model.User{ID: 1}, "")
	require.NoError(t, err)

	require.NotNil(t, report.NumberOfEvents)
	require.NotNil(t, report.TimeSpent)
	require.NotNil(t, report.Attendee)
	assert.Equal(t, 2, report.NumberOfEvents.Total)
	assert.Equal(t, "2:00:00", report.TimeSpent.Total)
}
