package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"forum-backend/internal/domain"
)

// SessionRepository stores refresh-token sessions in Redis, keyed by the
// SHA-256 of the token so the raw token never touches the store.
type SessionRepository interface {
	Save(ctx context.Context, tokenHash, userID string, ttl time.Duration) error
	UserID(ctx context.Context, tokenHash string) (string, error)
	Delete(ctx context.Context, tokenHash string) error
}

type sessionRepository struct {
	rdb *redis.Client
}

func NewSessionRepository(rdb *redis.Client) SessionRepository {
	return &sessionRepository{rdb: rdb}
}

func sessionKey(tokenHash string) string {
	return "session:" + tokenHash
}

func (r *sessionRepository) Save(ctx context.Context, tokenHash, userID string, ttl time.Duration) error {
	if err := r.rdb.Set(ctx, sessionKey(tokenHash), userID, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *sessionRepository) UserID(ctx context.Context, tokenHash string) (string, error) {
	userID, err := r.rdb.Get(ctx, sessionKey(tokenHash)).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("session: %w", domain.ErrUnauthorized)
	}
	if err != nil {
		return "", fmt.Errorf("get session: %w", err)
	}
	return userID, nil
}

func (r *sessionRepository) Delete(ctx context.Context, tokenHash string) error {
	if err := r.rdb.Del(ctx, sessionKey(tokenHash)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
