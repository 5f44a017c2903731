package event

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/mpetrenko/calendar-insights-backend/internal/database"
	"github.com/mpetrenko/calendar-insights-backend/internal/model"
)

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var baseQuery = database.PSQL.
	Select(
		"id",
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
	From(database.EventsTable)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// eligiblePredicate narrows events to the ones reports are built from:
// accepted by the user, already started, optionally matching the
// summary filter. The filter text is escaped so it always matches as
// a literal substring.
func eligiblePredicate(prefix string, filter model.ReportFilter) sq.And {
	pred := sq.And{
		sq.Eq{prefix + "user_id": filter.UserID},
		sq.Eq{prefix + "is_attendee": true},
		sq.LtOrEq{prefix + "start_datetime": filter.MaxStart},
	}

	if filter.SummaryContains != "" {
		pred = append(pred, sq.ILike{
			prefix + "summary": "%" + likeEscaper.Replace(filter.SummaryContains) + "%",
		})
	}

	return pred
}
