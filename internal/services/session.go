package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/cinelog/cinelog-backend/internal/database"
)

const (
	// SessionDuration is the Redis TTL for a session.
	SessionDuration = 24 * time.Hour
	// SessionCookieName is the cookie carrying the opaque session token.
	SessionCookieName = "cinelog_session"

	sessionKeyPrefix = "session:"
)

// SessionStore is the server-side session service. A session holds only the
// user's email; it is a convenience alongside the bearer token, not
// authoritative, and the two are deliberately not kept in sync.
type SessionStore struct{}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Create stores a new session for the identity and returns the opaque token
// that goes into the cookie.
func (s *SessionStore) Create(ctx context.Context, email string) (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(tokenBytes)

	if err := database.RedisClient.Set(ctx, sessionKeyPrefix+token, email, SessionDuration).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Identity resolves a session token to the stored email. ok is false for
// missing or expired sessions.
func (s *SessionStore) Identity(ctx context.Context, token string) (string, bool, error) {
	if token == "" {
		return "", false, nil
	}
	email, err := database.RedisClient.Get(ctx, sessionKeyPrefix+token).Result()
	if err != nil || email == "" {
		return "", false, nil
	}
	return email, true, nil
}

// Invalidate deletes a session. Any bearer token issued alongside it stays
// valid until its natural expiry.
func (s *SessionStore) Invalidate(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return database.RedisClient.Del(ctx, sessionKeyPrefix+token).Err()
}
