// Package identity provides session management: login, logout, registration
// and the current-user lookup. A session is a single password-stripped user
// record in the store; no token or expiry model exists.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/tejaworks/interndesk/internal/domain"
	"github.com/tejaworks/interndesk/internal/latency"
	"github.com/tejaworks/interndesk/internal/store"
)

// Service implements session management over the store.
type Service struct {
	store store.Store
	delay *latency.Injector
}

// NewService creates a new identity service.
func NewService(st store.Store, delay *latency.Injector) *Service {
	return &Service{store: st, delay: delay}
}

// RegisterInput holds data for registering a new user.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// Login matches email and password exactly against the stored users.
// On match the sanitized user becomes the current session and is returned.
// Passwords are compared as plaintext for parity with the mock backend.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, error) {
	defer s.delay.Wait(ctx)

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.Email == email && u.Password == password {
			session := u.Sanitized()
			if err := store.SetJSON(ctx, s.store, store.KeyCurrentUser, session); err != nil {
				return nil, fmt.Errorf("save session: %w", err)
			}
			return &session, nil
		}
	}

	return nil, ErrInvalidCredentials
}

// Logout clears the current session. No-op when no session exists.
func (s *Service) Logout(ctx context.Context) error {
	defer s.delay.Wait(ctx)

	if err := s.store.Delete(ctx, store.KeyCurrentUser); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Register creates a new intern account and establishes a session for it.
// The requested role is ignored: self-registered users are always interns.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	defer s.delay.Wait(ctx)

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.Email == input.Email {
			return nil, ErrDuplicateUser
		}
	}

	user := domain.User{
		ID:       nextID(users),
		Email:    input.Email,
		Password: input.Password,
		Name:     input.Name,
		Role:     domain.RoleIntern,
	}

	users = append(users, user)
	if err := store.SetJSON(ctx, s.store, store.KeyUsers, users); err != nil {
		return nil, fmt.Errorf("save users: %w", err)
	}

	session := user.Sanitized()
	if err := store.SetJSON(ctx, s.store, store.KeyCurrentUser, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	return &session, nil
}

// CurrentUser returns the session record, or nil when no session exists.
// Absence is not an error. Unlike the other operations this is a plain
// synchronous read with no simulated latency.
func (s *Service) CurrentUser(ctx context.Context) (*domain.User, error) {
	var user domain.User
	err := store.GetJSON(ctx, s.store, store.KeyCurrentUser, &user)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	return &user, nil
}

func (s *Service) loadUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := store.GetJSON(ctx, s.store, store.KeyUsers, &users)
	if err != nil && !errors.Is(err, store.ErrKeyNotFound) {
		return nil, fmt.Errorf("load users: %w", err)
	}
	return users, nil
}

// nextID derives a fresh identifier from the current timestamp, bumping past
// any identifier already present in the collection.
func nextID(users []domain.User) string {
	taken := make(map[string]bool, len(users))
	for _, u := range users {
		taken[u.ID] = true
	}

	n := time.Now().UnixMilli()
	id := strconv.FormatInt(n, 10)
	for taken[id] {
		n++
		id = strconv.FormatInt(n, 10)
	}
	return id
}
