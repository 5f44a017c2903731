package user

import (
	"github.com/mpetrenko/calendar-insights-backend/internal/database"
)

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var baseQuery = database.PSQL.
	Select(
		"id",
		"full_name",
		"email",
		"photo",
		"time_zone",
	).
	From(database.UsersTable)
