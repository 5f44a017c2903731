package sync

import (
	"context"
	"errors"
	"fmt"

	"github.com/mpetrenko/calendar-insights-backend/internal/database"
	"github.com/mpetrenko/calendar-insights-backend/internal/model"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Service imports a user's primary calendar into the store. Each sync
// is a full replace: the user's previous events are dropped and the
// current provider state is written inside one transaction, so report
// queries never observe a half-imported calendar.
type Service struct {
	db          database.PGX
	logger      *zap.SugaredLogger
	events      eventsRepository
	users       usersRepository
	credentials credentialsRepository
	tokens      tokenSourceProvider
	pageSize    int64
}

type eventsRepository interface {
	CreateEvent(ctx context.Context, q database.Queryable, event *model.EventCreate) (int64, error)
	DeleteUserEvents(ctx context.Context, q database.Queryable, userID int64) error
}

type usersRepository interface {
	UpdateTimeZone(ctx context.Context, q database.Queryable, id int64, timeZone string) error
}

type credentialsRepository interface {
	GetCredentials(ctx context.Context, q database.Queryable, userID int64) (*model.Credentials, error)
}

type tokenSourceProvider interface {
	TokenSource(ctx context.Context, creds *model.Credentials) oauth2.TokenSource
}

func NewService(
	db database.PGX,
	logger *zap.SugaredLogger,
	events eventsRepository,
	users usersRepository,
	credentials credentialsRepository,
	tokens tokenSourceProvider,
	pageSize int64,
) *Service {
	return &Service{
		db:          db,
		logger:      logger,
		events:      events,
		users:       users,
		credentials: credentials,
		tokens:      tokens,
		pageSize:    pageSize,
	}
}

// SyncUser fetches all events of the user's primary calendar and
// replaces the stored copy. Returns model.ErrNotAuthorized when the
// user has not completed the calendar consent flow yet.
func (s *Service) SyncUser(ctx context.Context, user *model.User) error {
	creds, err := s.credentials.GetCredentials(ctx, s.db, user.ID)
	if err != nil {
		if errors.Is(err, model.ErrNoRecord) {
			return model.ErrNotAuthorized
		}
		return fmt.Errorf("credentials.GetCredentials: %w", err)
	}

	svc, err := calendar.NewService(ctx, option.WithTokenSource(s.tokens.TokenSource(ctx, creds)))
	if err != nil {
		return fmt.Errorf("create calendar service: %w", err)
	}

	s.refreshTimeZone(ctx, svc, user)

	var events []*model.EventCreate
	pageToken := ""
	for {
		call := svc.Events.List("primary").
			SingleEvents(true).
			MaxResults(s.pageSize).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return fmt.Errorf("list events: %w", err)
		}

		for _, item := range resp.Items {
			if e, ok := mapToEventCreate(item, user.ID); ok {
				events = append(events, e)
			}
		}

		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.events.DeleteUserEvents(ctx, tx, user.ID); err != nil {
		return fmt.Errorf("events.DeleteUserEvents: %w", err)
	}

	for _, e := range events {
		if _, err := s.events.CreateEvent(ctx, tx, e); err != nil {
			return fmt.Errorf("events.CreateEvent: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	s.logger.Infow("calendar synced", "user_id", user.ID, "events", len(events))
	return nil
}

// refreshTimeZone keeps the stored zone in step with the calendar's
// timezone setting. Failure here only degrades report bucketing to the
// previous zone, so it is logged and not fatal to the sync.
func (s *Service) refreshTimeZone(ctx context.Context, svc *calendar.Service, user *model.User) {
	setting, err := svc.Settings.Get("timezone").Context(ctx).Do()
	if err != nil {
		s.logger.Warnw("failed to fetch timezone setting", "user_id", user.ID, "err", err)
		return
	}

	if setting.Value == user.TimeZone {
		return
	}

	if err := s.users.UpdateTimeZone(ctx, s.db, user.ID, setting.Value); err != nil {
		s.logger.Errorw("failed to update timezone", "user_id", user.ID, "err", err)
		return
	}

	user.TimeZone = setting.Value
}
