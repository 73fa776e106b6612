package chain

import (
	"context"
	"errors"
	"fmt"
	"io"

	filestore "github.com/bnema/foodcook-cli/internal/adapters/secrets/file"
	passstore "github.com/bnema/foodcook-cli/internal/adapters/secrets/pass"
	"github.com/bnema/foodcook-cli/internal/domain"
	"github.com/bnema/foodcook-cli/internal/ports"
	"github.com/sirupsen/logrus"
)

// Store writes to primary and falls back to fallback when primary fails. Reads
// consult both, so a token written while primary was down stays readable.
// Deletes always reach both backends.
type Store struct {
	primary  ports.SecretStore
	fallback ports.SecretStore
	log      logrus.FieldLogger
}

var _ ports.SecretStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary secret store is nil")
	errNilFallbackStore = errors.New("fallback secret store is nil")
)

func NewStore(primary ports.SecretStore, fallback ports.SecretStore, log logrus.FieldLogger) *Store {
	store, err := NewStoreChecked(primary, fallback, log)
	if err != nil {
		panic(err)
	}

	return store
}

func NewStoreChecked(primary ports.SecretStore, fallback ports.SecretStore, log logrus.FieldLogger) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}

	return &Store{primary: primary, fallback: fallback, log: log}, nil
}

func NewPassFirstWithFileFallback(fileRoot string, log logrus.FieldLogger) (*Store, error) {
	return NewStoreChecked(passstore.NewStore(), filestore.NewStore(fileRoot), log)
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	err := s.primary.Put(ctx, key, value)
	if err == nil {
		return nil
	}
	if shouldSkipFallback(err) {
		return err
	}

	s.log.WithError(err).Debug("primary secret backend put failed; using fallback")
	fallbackErr := s.fallback.Put(ctx, key, value)
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("primary backend put failed: %w; fallback backend put failed: %w", err, fallbackErr)
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.primary.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if shouldSkipFallback(err) {
		return "", err
	}

	s.log.WithError(err).Debug("primary secret backend get failed; using fallback")
	fallbackValue, fallbackErr := s.fallback.Get(ctx, key)
	if fallbackErr == nil {
		return fallbackValue, nil
	}
	if errors.Is(err, domain.ErrSecretNotFound) && errors.Is(fallbackErr, domain.ErrSecretNotFound) {
		return "", fmt.Errorf("secret %q: %w", key, domain.ErrSecretNotFound)
	}

	return "", fmt.Errorf("primary backend get failed: %w; fallback backend get failed: %w", err, fallbackErr)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.primary.Delete(ctx, key)
	if err != nil && shouldSkipFallback(err) {
		return err
	}
	if err != nil {
		s.log.WithError(err).Debug("primary secret backend delete failed")
	}

	fallbackErr := s.fallback.Delete(ctx, key)
	switch {
	case err == nil && fallbackErr == nil:
		return nil
	case err != nil && fallbackErr != nil:
		return fmt.Errorf("primary backend delete failed: %w; fallback backend delete failed: %w", err, fallbackErr)
	case fallbackErr != nil:
		return fmt.Errorf("fallback backend delete failed: %w", fallbackErr)
	default:
		// The primary backend being unreachable is fine once the fallback copy is gone.
		return nil
	}
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
