package user

import (
	"github.com/mpetrenko/calendar-insights-backend/internal/model"
)

type userDTO struct {
	ID       int64
	FullName string
	Email    string
	Photo    string
	TimeZone string
}

func mapToUser(dto *userDTO) *model.User {
	return &model.User{
		ID: dto.ID,
		UserCreate: model.UserCreate{
			FullName: dto.FullName,
			Email:    dto.Email,
			Photo:    dto.Photo,
			TimeZone: dto.TimeZone,
		},
	}
}
