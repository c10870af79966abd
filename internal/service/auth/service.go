package auth

import (
	"context"
	"fmt"
	"sync"

	"github.com/entnt/dental-center/internal/model"
	"github.com/entnt/dental-center/internal/repository"
	"github.com/entnt/dental-center/pkg/logger"
	"github.com/entnt/dental-center/pkg/security"
)

// Service owns the in-memory authenticated-user state. It resolves any
// persisted session marker at construction and keeps the marker slot in
// sync with login/logout. Authorization stays with callers: the service
// only exposes identity and role.
type Service struct {
	store    repository.DataStore
	sessions repository.SessionStore
	verifier security.CredentialVerifier
	logger   *logger.Logger

	mu            sync.Mutex
	user          *model.User
	authenticated bool
}

// NewService builds the auth service and resolves an existing session
// marker against the current user set. A marker naming a user that no
// longer exists leaves the service unauthenticated; the marker itself is
// left for Logout to clear.
func NewService(ctx context.Context, store repository.DataStore, sessions repository.SessionStore,
	verifier security.CredentialVerifier, log *logger.Logger) (*Service, error) {
	s := &Service{
		store:    store,
		sessions: sessions,
		verifier: verifier,
		logger:   log,
	}

	userID, err := sessions.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load session marker: %w", err)
	}
	if userID == "" {
		return s, nil
	}

	data, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load user set: %w", err)
	}
	if user := data.UserByID(userID); user != nil {
		u := *user
		s.user = &u
		s.authenticated = true
		log.Info("session restored", "user_id", u.ID, "role", string(u.Role))
	} else {
		log.Warn("session marker names unknown user, starting unauthenticated", "user_id", userID)
	}
	return s, nil
}

// Login matches email exactly (case-sensitive) and checks the secret
// through the configured verifier. A credential mismatch returns
// (false, nil) and leaves all state untouched. There is no lockout, rate
// limit or password policy.
func (s *Service) Login(ctx context.Context, email, password string) (bool, error) {
	data, err := s.store.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to load user set: %w", err)
	}

	var match *model.User
	for i := range data.Users {
		u := &data.Users[i]
		if u.Email == email && s.verifier.Verify(password, u.Password) {
			match = u
			break
		}
	}
	if match == nil {
		s.logger.Debug("login rejected", "email", email)
		return false, nil
	}

	if err := s.sessions.Save(ctx, match.ID); err != nil {
		return false, fmt.Errorf("failed to persist session marker: %w", err)
	}

	s.mu.Lock()
	u := *match
	s.user = &u
	s.authenticated = true
	s.mu.Unlock()

	s.logger.Info("user logged in", "user_id", match.ID, "role", string(match.Role))
	return true, nil
}

// Logout clears the in-memory state and the session marker. It is
// idempotent and succeeds regardless of prior state.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.authenticated = false
	s.mu.Unlock()

	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session marker: %w", err)
	}
	return nil
}

// CurrentUser returns a copy of the authenticated user, or nil.
func (s *Service) CurrentUser() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Service) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// Role returns the authenticated user's role, or "" when unauthenticated.
func (s *Service) Role() model.Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return ""
	}
	return s.user.Role
}
