package event

import (
	"time"

	"github.com/mpetrenko/calendar-insights-backend/internal/model"
)

type eventDTO struct {
	ID            int64
	UserID        int64
	EventUID      string
	Summary       string
	Description   string
	Location      string
	IsCreator     bool
	CreatorEmail  string
	IsAttendee    bool
	StartDatetime time.Time
	EndDatetime   time.Time
	CreatedAt     time.Time
}

type attendeeDTO struct {
	ID       int64
	EventID  int64
	Email    string
	Response string
}

func mapToEvent(dto *eventDTO) *model.Event {
	return &model.Event{
		ID: dto.ID,
		EventCreate: model.EventCreate{
			UserID:       dto.UserID,
			EventUID:     dto.EventUID,
			Summary:      dto.Summary,
			Description:  dto.Description,
			Location:     dto.Location,
			IsCreator:    dto.IsCreator,
			CreatorEmail: dto.CreatorEmail,
			IsAttendee:   dto.IsAttendee,
			Start:        dto.StartDatetime,
			End:          dto.EndDatetime,
			CreatedAt:    dto.CreatedAt,
		},
	}
}

func mapToAttendee(dto *attendeeDTO) *model.Attendee {
	return &model.Attendee{
		ID:      dto.ID,
		EventID: dto.EventID,
		AttendeeCreate: model.AttendeeCreate{
			Email:    dto.Email,
			Response: model.ResponseStatus(dto.Response),
		},
	}
}
