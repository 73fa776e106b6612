package ports

import "context"

// Credentials is the durable session storage the HTTP client reads the bearer
// token from on every request.
type Credentials interface {
	// Token returns "" when no session is stored.
	Token(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}
