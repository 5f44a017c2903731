package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gomodule/redigo/redis"
	"github.com/mpetrenko/calendar-insights-backend/internal/config"
	"github.com/mpetrenko/calendar-insights-backend/internal/model"
	"go.uber.org/zap"
)

const (
	sessionPrefix      = "session:"
	userSessionsPrefix = "user_sessions:"
)

// RefreshTokenRepository stores refresh sessions as expiring keys plus
// a per-user index set, so all of a user's sessions can be revoked at
// once. Expired keys vanish on their own; the index is swept by
// DeleteExpired.
type RefreshTokenRepository struct {
	pool   *redis.Pool
	logger *zap.SugaredLogger
}

func NewRefreshTokenRepository(pool *redis.Pool, logger *zap.SugaredLogger) *RefreshTokenRepository {
	return &RefreshTokenRepository{
		pool:   pool,
		logger: logger,
	}
}

func (r *RefreshTokenRepository) Add(ctx context.Context, session string, id int64) error {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	ttl := int(config.SessionTTl().Seconds())
	if _, err := redis.String(conn.Do("SET", sessionPrefix+session, id, "NX", "EX", ttl)); err != nil {
		if errors.Is(err, redis.ErrNil) {
			return model.ErrAlreadyExists
		}
		return fmt.Errorf("SET session: %w", err)
	}

	if _, err := conn.Do("SADD", userSessionsKey(id), session); err != nil {
		return fmt.Errorf("SADD session: %w", err)
	}

	return nil
}

func (r *RefreshTokenRepository) Get(ctx context.Context, session string) (int64, error) {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	id, err := redis.Int64(conn.Do("GET", sessionPrefix+session))
	if err != nil {
		if errors.Is(err, redis.ErrNil) {
			return 0, model.ErrNoRecord
		}
		return 0, fmt.Errorf("GET session: %w", err)
	}

	return id, nil
}

func (r *RefreshTokenRepository) Refresh(ctx context.Context, old, new string) error {
	id, err := r.Get(ctx, old)
	if err != nil {
		return err
	}

	if err := r.Add(ctx, new, id); err != nil {
		return err
	}

	return r.Delete(ctx, old)
}

func (r *RefreshTokenRepository) Delete(ctx context.Context, session string) error {
	id, err := r.Get(ctx, session)
	if err != nil {
		return err
	}

	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.Do("DEL", sessionPrefix+session); err != nil {
		return fmt.Errorf("DEL session: %w", err)
	}

	if _, err := conn.Do("SREM", userSessionsKey(id), session); err != nil {
		return fmt.Errorf("SREM session: %w", err)
	}

	return nil
}

func (r *RefreshTokenRepository) DeleteByUserID(ctx context.Context, id int64) error {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	sessions, err := redis.Strings(conn.Do("SMEMBERS", userSessionsKey(id)))
	if err != nil {
		return fmt.Errorf("SMEMBERS sessions: %w", err)
	}

	for _, s := range sessions {
		if _, err := conn.Do("DEL", sessionPrefix+s); err != nil {
			return fmt.Errorf("DEL session: %w", err)
		}
	}

	if _, err := conn.Do("DEL", userSessionsKey(id)); err != nil {
		return fmt.Errorf("DEL sessions index: %w", err)
	}

	return nil
}

// DeleteExpired removes index entries whose session keys already
// expired.
func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context) error {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	cursor := 0
	for {
		values, err := redis.Values(conn.Do("SCAN", cursor, "MATCH", userSessionsPrefix+"*"))
		if err != nil {
			return fmt.Errorf("SCAN indexes: %w", err)
		}

		var keys []string
		if _, err := redis.Scan(values, &cursor, &keys); err != nil {
			return fmt.Errorf("parse SCAN reply: %w", err)
		}

		for _, key := range keys {
			sessions, err := redis.Strings(conn.Do("SMEMBERS", key))
			if err != nil {
				return fmt.Errorf("SMEMBERS sessions: %w", err)
			}

			for _, s := range sessions {
				exists, err := redis.Bool(conn.Do("EXISTS", sessionPrefix+s))
				if err != nil {
					return fmt.Errorf("EXISTS session: %w", err)
				}
				if !exists {
					if _, err := conn.Do("SREM", key, s); err != nil {
						return fmt.Errorf("SREM session: %w", err)
					}
				}
			}
		}

		if cursor == 0 {
			return nil
		}
	}
}

func userSessionsKey(id int64) string {
	return userSessionsPrefix + strconv.FormatInt(id, 10)
}
