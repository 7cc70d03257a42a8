package server

import (
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// SessionStore tracks logged-in admin sessions by opaque token. Tokens
// expire after the configured TTL; there is no refresh, a stale admin
// logs in again.
type SessionStore struct {
	sessions *gocache.Cache
	ttl      time.Duration
}

// NewSessionStore creates a session store with the given session TTL.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: gocache.New(ttl, 5*time.Minute),
		ttl:      ttl,
	}
}

// Create issues a new session token for the given user.
func (s *SessionStore) Create(user string) string {
	token := uuid.NewString()
	s.sessions.Set(token, user, s.ttl)
	return token
}

// Valid reports whether token belongs to a live session.
func (s *SessionStore) Valid(token string) bool {
	if token == "" {
		return false
	}
	_, found := s.sessions.Get(token)
	return found
}

// Revoke ends the session for token, if any.
func (s *SessionStore) Revoke(token string) {
	s.sessions.Delete(token)
}
