package event

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/mpetrenko/calendar-insights-backend/internal/database"
)

// DeleteUserEvents removes all of a user's events. Attendee rows go
// with them via the foreign key cascade. Used by the full-replace sync.
func (*Repository) DeleteUserEvents(ctx context.Context, q database.Queryable, userID int64) error {
	qb := database.PSQL.
		Delete(database.EventsTable).
		Where(sq.Eq{"user_id": userID})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}
