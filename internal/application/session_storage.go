package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/foodcook-cli/internal/domain"
	"github.com/bnema/foodcook-cli/internal/ports"
	"github.com/sirupsen/logrus"
)

const SessionTokenKey = "foodcook://session/token"

// SessionStorage is the durable half of the session: the token lives in the
// secret store and the user profile in the profile repository. It is the single
// source both the HTTP client and the session service read the token from.
type SessionStorage struct {
	secrets  ports.SecretStore
	profiles ports.ProfileRepository
	log      logrus.FieldLogger
}

var _ ports.Credentials = (*SessionStorage)(nil)

func NewSessionStorage(secrets ports.SecretStore, profiles ports.ProfileRepository, log logrus.FieldLogger) *SessionStorage {
	return &SessionStorage{
		secrets:  secrets,
		profiles: profiles,
		log:      loggerOrDiscard(log),
	}
}

func (s *SessionStorage) Token(ctx context.Context) (string, error) {
	token, err := s.secrets.Get(ctx, SessionTokenKey)
	if err != nil {
		if errors.Is(err, domain.ErrSecretNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("read session token: %w", err)
	}

	return strings.TrimSpace(token), nil
}

// Save stores token and user together. The token is removed again when the
// profile cannot be written so storage never holds half a session.
func (s *SessionStorage) Save(ctx context.Context, token string, user domain.User) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("session token is required")
	}

	if err := s.secrets.Put(ctx, SessionTokenKey, token); err != nil {
		return fmt.Errorf("store session token: %w", err)
	}

	if err := s.profiles.Save(ctx, user); err != nil {
		if rollbackErr := s.secrets.Delete(ctx, SessionTokenKey); rollbackErr != nil && !errors.Is(rollbackErr, domain.ErrSecretNotFound) {
			return fmt.Errorf("save session profile and rollback stored token: %w", errors.Join(err, rollbackErr))
		}
		return fmt.Errorf("save session profile: %w", err)
	}

	return nil
}

func (s *SessionStorage) SaveUser(ctx context.Context, user domain.User) error {
	if err := s.profiles.Save(ctx, user); err != nil {
		return fmt.Errorf("save session profile: %w", err)
	}
	return nil
}

// User wraps domain.ErrProfileNotFound when no profile is stored.
func (s *SessionStorage) User(ctx context.Context) (domain.User, error) {
	user, err := s.profiles.Get(ctx)
	if err != nil {
		return domain.User{}, fmt.Errorf("read session profile: %w", err)
	}
	return user, nil
}

func (s *SessionStorage) Clear(ctx context.Context) error {
	var errs error

	if err := s.secrets.Delete(ctx, SessionTokenKey); err != nil && !errors.Is(err, domain.ErrSecretNotFound) {
		errs = errors.Join(errs, fmt.Errorf("delete session token: %w", err))
	}
	if err := s.profiles.Delete(ctx); err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		errs = errors.Join(errs, fmt.Errorf("delete session profile: %w", err))
	}

	return errs
}
