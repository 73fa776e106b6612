package ports

import "context"

// SecretStore is a durable key-value store for session secrets. Get wraps
// domain.ErrSecretNotFound when the key has no value.
type SecretStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
