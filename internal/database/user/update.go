package user

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/mpetrenko/calendar-insights-backend/internal/database"
)

// UpdateTimeZone stores the IANA zone name reported by the user's
// calendar settings. An empty name means the zone is unknown and
// reports fall back to UTC.
func (*Repository) UpdateTimeZone(ctx context.Context, q database.Queryable, id int64, timeZone string) error {
	qb := database.PSQL.
		Update(database.UsersTable).
		Set("time_zone", timeZone).
		Where(sq.Eq{"id": id})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}
