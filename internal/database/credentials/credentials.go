package credentials

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/mpetrenko/calendar-insights-backend/internal/database"
	"github.com/mpetrenko/calendar-insights-backend/internal/model"
)

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

type credentialsDTO struct {
	UserID       int64
	AccessToken  string
	RefreshToken string
}

func (*Repository) UpsertCredentials(ctx context.Context, q database.Queryable, creds *model.Credentials) error {
	qb := database.PSQL.
		Insert(database.CredentialsTable).
		Columns("user_id", "access_token", "refresh_token").
		Values(creds.UserID, creds.AccessToken, creds.RefreshToken).
		Suffix("on conflict (user_id) do update set access_token = excluded.access_token, refresh_token = excluded.refresh_token")

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

func (*Repository) GetCredentials(ctx context.Context, q database.Queryable, userID int64) (*model.Credentials, error) {
	qb := database.PSQL.
		Select("user_id", "access_token", "refresh_token").
		From(database.CredentialsTable).
		Where(sq.Eq{"user_id": userID})

	var dtos []*credentialsDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	if len(dtos) == 0 {
		return nil, model.ErrNoRecord
	}

	return &model.Credentials{
		UserID:       dtos[0].UserID,
		AccessToken:  dtos[0].AccessToken,
		RefreshToken: dtos[0].RefreshToken,
	}, nil
}
