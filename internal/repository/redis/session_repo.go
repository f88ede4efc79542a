package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrRedisUnavailable = errors.New("redis unavailable")
	ErrSessionNotFound  = errors.New("session not found")
)

const SessionPrefix = "session"

// SessionRepository tracks issued tokens by jti so sign-out and deactivation can revoke them.
type SessionRepository struct {
	Client *redis.Client
}

func sessionKey(accountID, jti string) string {
	return fmt.Sprintf("%s:%s:%s", SessionPrefix, accountID, jti)
}

func (r *SessionRepository) Add(ctx context.Context, accountID, jti string, ttl time.Duration) error {
	if err := r.Client.Set(ctx, sessionKey(accountID, jti), time.Now().Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Exists reports whether the session is still registered. It never extends the TTL.
func (r *SessionRepository) Exists(ctx context.Context, accountID, jti string) (bool, error) {
	n, err := r.Client.Exists(ctx, sessionKey(accountID, jti)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return n > 0, nil
}

func (r *SessionRepository) Delete(ctx context.Context, accountID, jti string) error {
	n, err := r.Client.Del(ctx, sessionKey(accountID, jti)).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// DeleteAll revokes every session of the account and reports how many were removed.
func (r *SessionRepository) DeleteAll(ctx context.Context, accountID string) (int, error) {
	pattern := fmt.Sprintf("%s:%s:*", SessionPrefix, accountID)
	var removed int
	iter := r.Client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := r.Client.Del(ctx, iter.Val()).Err(); err != nil {
			return removed, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
		}
		removed++
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return removed, nil
}
