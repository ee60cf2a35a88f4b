package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/igor-kostenevich/woorkroom-BE/domain"
)

// SessionRepositoryImpl implements domain.SessionRepository using Redis.
// The key TTL equals the refresh token lifetime; rotation re-arms it from
// the full lifetime again.
type SessionRepositoryImpl struct {
	client *redis.Client
	hasher domain.PasswordHasher
	prefix string
	ttl    time.Duration
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(client *redis.Client, hasher domain.PasswordHasher, ttl time.Duration) domain.SessionRepository {
	return &SessionRepositoryImpl{
		client: client,
		hasher: hasher,
		prefix: "session:",
		ttl:    ttl,
	}
}

// Create implements domain.SessionRepository. Each call mints a fresh sid,
// so one login equals one session record.
func (r *SessionRepositoryImpl) Create(ctx context.Context, userID, refreshToken string, meta domain.SessionMeta) (string, error) {
	tokenHash, err := r.hasher.Hash(refreshToken)
	if err != nil {
		return "", fmt.Errorf("failed to hash refresh token: %w", err)
	}

	sid := uuid.NewString()
	rec := domain.Session{
		UserID:    userID,
		TokenHash: tokenHash,
		UserAgent: meta.UserAgent,
		IP:        meta.IP,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.client.Set(ctx, r.prefix+sid, data, r.ttl).Err(); err != nil {
		return "", err
	}
	return sid, nil
}

// VerifyAndRotate implements domain.SessionRepository. It only verifies the
// presented token against the stored hash and hands the owning user back;
// the caller is responsible for issuing new tokens and calling
// UpdateTokenHash.
func (r *SessionRepositoryImpl) VerifyAndRotate(ctx context.Context, sid, refreshToken string) (string, error) {
	rec, err := r.load(ctx, sid)
	if err != nil {
		return "", err
	}

	if !r.hasher.Verify(rec.TokenHash, refreshToken) {
		return "", domain.ErrInvalidRefreshToken
	}
	return rec.UserID, nil
}

// UpdateTokenHash implements domain.SessionRepository. A session that has
// already expired or been destroyed is a silent no-op.
func (r *SessionRepositoryImpl) UpdateTokenHash(ctx context.Context, sid, newRefreshToken string) error {
	rec, err := r.load(ctx, sid)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil
		}
		return err
	}

	tokenHash, err := r.hasher.Hash(newRefreshToken)
	if err != nil {
		return fmt.Errorf("failed to hash refresh token: %w", err)
	}
	rec.TokenHash = tokenHash

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return r.client.Set(ctx, r.prefix+sid, data, r.ttl).Err()
}

// Destroy implements domain.SessionRepository (idempotent)
func (r *SessionRepositoryImpl) Destroy(ctx context.Context, sid string) error {
	return r.client.Del(ctx, r.prefix+sid).Err()
}

func (r *SessionRepositoryImpl) load(ctx context.Context, sid string) (*domain.Session, error) {
	data, err := r.client.Get(ctx, r.prefix+sid).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	var rec domain.Session
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &rec, nil
}
