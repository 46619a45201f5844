package auth

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/welitoonl/tamagochi-pos/internal/domain"
)

// ErrSessionNotFound means the token is unknown or expired.
var ErrSessionNotFound = errors.New("session not found")

type sessionEntry struct {
	user      domain.User
	expiresAt time.Time
}

// SessionStore issues bearer tokens for logged-in operators. Expired entries
// are reaped lazily on resolve.
type SessionStore struct {
	mu      sync.Mutex
	byToken map[string]sessionEntry
	ttl     time.Duration
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		byToken: make(map[string]sessionEntry),
		ttl:     ttl,
	}
}

// Create issues a fresh token for user.
func (s *SessionStore) Create(user domain.User) string {
	token := uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byToken[token] = sessionEntry{
		user:      user,
		expiresAt: time.Now().Add(s.ttl),
	}
	return token
}

// Resolve returns the operator behind a token.
func (s *SessionStore) Resolve(token string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.byToken[token]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.byToken, token)
		return nil, ErrSessionNotFound
	}

	user := entry.user
	return &user, nil
}

// Delete invalidates a token; unknown tokens are ignored.
func (s *SessionStore) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byToken, token)
}
