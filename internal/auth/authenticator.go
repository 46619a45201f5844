package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/welitoonl/tamagochi-pos/internal/domain"
)

// ErrInvalidCredentials covers unknown email, wrong password and inactive
// profiles alike; callers get no hint which one failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

type userRecord struct {
	user domain.User
	hash []byte
}

// UserStore keeps operator profiles with their password hashes in memory.
// The persisted profiles table carries no secrets; credentials live with the
// identity provider, which this store stands in for.
type UserStore struct {
	mu      sync.RWMutex
	byEmail map[string]userRecord
}

func NewUserStore() *UserStore {
	return &UserStore{
		byEmail: make(map[string]userRecord),
	}
}

// Add registers a user with a bcrypt hash of password.
func (s *UserStore) Add(user domain.User, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byEmail[user.Email] = userRecord{user: user, hash: hash}
	return nil
}

func (s *UserStore) lookup(email string) (userRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.byEmail[email]
	return rec, ok
}

// Authenticator verifies operator credentials.
type Authenticator struct {
	users *UserStore
	log   *zap.Logger
}

func NewAuthenticator(users *UserStore, log *zap.Logger) *Authenticator {
	return &Authenticator{
		users: users,
		log:   log,
	}
}

// Authenticate returns the matching active user or ErrInvalidCredentials.
func (a *Authenticator) Authenticate(_ context.Context, email, password string) (*domain.User, error) {
	rec, ok := a.users.lookup(email)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(rec.hash, []byte(password)); err != nil {
		a.log.Warn("failed login attempt", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}
	if !rec.user.Active {
		return nil, ErrInvalidCredentials
	}

	user := rec.user
	return &user, nil
}

// SeedUsers loads the demo profiles, all sharing password. Meant for the
// standalone mode only.
func SeedUsers(store *UserStore, password string) error {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	users := []domain.User{
		{ID: "1", Name: "Admin Sistema", Email: "admin@tamagochii.com", Role: domain.RoleAdmin, Active: true, CreatedAt: created},
		{ID: "2", Name: "João Gerente", Email: "joao@tamagochii.com", Role: domain.RoleManager, Active: true, CreatedAt: created.AddDate(0, 0, 14)},
		{ID: "3", Name: "Maria Operadora", Email: "maria@tamagochii.com", Role: domain.RoleOperator, Active: true, CreatedAt: created.AddDate(0, 1, 0)},
	}

	for _, u := range users {
		if err := store.Add(u, password); err != nil {
			return err
		}
	}
	return nil
}
