// Package redis stores sessions in Redis so they survive restarts and can be
// shared between replicas.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"calorietracker/internal/domain"
)

const keyPrefix = "session:"

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// SessionRepo implements domain.SessionRepository on Redis. Each session is a
// JSON value whose key expires together with the session.
type SessionRepo struct {
	client *goredis.Client
}

var _ domain.SessionRepository = (*SessionRepo)(nil)

// Open connects to Redis and pings it.
func Open(ctx context.Context, opts Options) (*SessionRepo, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &SessionRepo{client: client}, nil
}

// Close closes the client.
func (r *SessionRepo) Close() error {
	return r.client.Close()
}

func key(token string) string {
	return keyPrefix + token
}

// Create stores a session until expiresAt.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	data, err := json.Marshal(domain.Session{
		Token:     token,
		UserID:    userID,
		UserAgent: userAgent,
		IP:        ip,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key(token), data, ttl).Err()
}

// GetByToken returns the session, or nil if it is unknown or expired.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	data, err := r.client.Get(ctx, key(token)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var s domain.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}

// Delete removes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, key(token)).Err()
}

// DeleteExpired is a no-op; Redis evicts keys when their TTL runs out.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	return nil
}
