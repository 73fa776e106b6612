package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/bnema/foodcook-cli/internal/domain"
	"github.com/bnema/foodcook-cli/internal/ports"
	"github.com/sirupsen/logrus"
)

const (
	loginPath    = "/auth/login"
	registerPath = "/auth/register"
	profilePath  = "/auth/profile"
)

// SessionService owns the authenticated identity. The user profile is cached in
// memory; the token is never copied out of storage so IsAuthenticated always
// agrees with what the HTTP client sends.
type SessionService struct {
	requester ports.Requester
	storage   *SessionStorage
	notifier  ports.Notifier
	log       logrus.FieldLogger

	mu   sync.RWMutex
	user *domain.User
}

func NewSessionService(requester ports.Requester, storage *SessionStorage, notifier ports.Notifier, log logrus.FieldLogger) *SessionService {
	return &SessionService{
		requester: requester,
		storage:   storage,
		notifier:  notifierOrNop(notifier),
		log:       loggerOrDiscard(log),
	}
}

func (s *SessionService) Login(ctx context.Context, credentials domain.Credentials) (domain.AuthResult, error) {
	result, err := s.authenticate(ctx, loginPath, credentials)
	if err != nil {
		return domain.AuthResult{}, fmt.Errorf("login: %w", err)
	}

	s.notifier.Notify(domain.Notification{Level: domain.NotificationSuccess, Message: "Logged in"})
	return result, nil
}

func (s *SessionService) Register(ctx context.Context, registration domain.Registration) (domain.AuthResult, error) {
	result, err := s.authenticate(ctx, registerPath, registration)
	if err != nil {
		return domain.AuthResult{}, fmt.Errorf("register: %w", err)
	}

	s.notifier.Notify(domain.Notification{Level: domain.NotificationSuccess, Message: "Registered"})
	return result, nil
}

func (s *SessionService) authenticate(ctx context.Context, path string, body any) (domain.AuthResult, error) {
	var result domain.AuthResult
	if err := s.requester.Request(ctx, http.MethodPost, path, body, nil, &result); err != nil {
		return domain.AuthResult{}, err
	}
	if result.Token == "" {
		err := &domain.APIError{Kind: domain.KindOther, Message: "server returned no token"}
		s.notifyFailure(err)
		return domain.AuthResult{}, err
	}

	if err := s.storage.Save(ctx, result.Token, result.User); err != nil {
		s.notifyFailure(fmt.Errorf("save session: %w", err))
		return domain.AuthResult{}, err
	}
	s.setUser(&result.User)

	return result, nil
}

// FetchProfile refreshes the stored user. The token is left as is.
func (s *SessionService) FetchProfile(ctx context.Context) (domain.User, error) {
	if !s.IsAuthenticated(ctx) {
		return domain.User{}, domain.ErrNotAuthenticated
	}

	var user domain.User
	if err := s.requester.Request(ctx, http.MethodGet, profilePath, nil, nil, &user); err != nil {
		return domain.User{}, fmt.Errorf("fetch profile: %w", err)
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		s.notifyFailure(fmt.Errorf("save profile: %w", err))
		return domain.User{}, fmt.Errorf("fetch profile: %w", err)
	}
	s.setUser(&user)

	return user, nil
}

// Logout clears memory and storage. Storage failures are logged, not returned.
func (s *SessionService) Logout(ctx context.Context) {
	s.setUser(nil)
	if err := s.storage.Clear(ctx); err != nil {
		s.log.WithError(err).Warn("clear stored session on logout")
	}

	s.notifier.Notify(domain.Notification{Level: domain.NotificationSuccess, Message: "Logged out"})
}

// Restore rehydrates the cached user from storage. A missing profile leaves the
// cache empty; the token is not touched.
func (s *SessionService) Restore(ctx context.Context) {
	user, err := s.storage.User(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			s.log.WithError(err).Warn("restore stored session profile")
		}
		return
	}

	s.setUser(&user)
}

// Expire drops the cached user after the HTTP client already cleared storage.
func (s *SessionService) Expire(context.Context) {
	s.setUser(nil)
}

func (s *SessionService) IsAuthenticated(ctx context.Context) bool {
	token, err := s.storage.Token(ctx)
	if err != nil {
		s.log.WithError(err).Warn("read session token")
		return false
	}
	return token != ""
}

// User returns the cached profile. It may lag the token until FetchProfile runs.
func (s *SessionService) User() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

func (s *SessionService) Claims(ctx context.Context) (TokenClaims, error) {
	token, err := s.storage.Token(ctx)
	if err != nil {
		return TokenClaims{}, err
	}
	if token == "" {
		return TokenClaims{}, domain.ErrNotAuthenticated
	}
	return ParseTokenClaims(token)
}

// notifyFailure reports local failures; the HTTP client already notified for
// request failures.
func (s *SessionService) notifyFailure(err error) {
	s.notifier.Notify(domain.Notification{Level: domain.NotificationError, Message: domain.UserMessage(err)})
}

func (s *SessionService) setUser(user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user == nil {
		s.user = nil
		return
	}
	copied := *user
	s.user = &copied
}
