package ports

import (
	"context"
	"net/url"
)

// Requester sends one API request. A non-nil out receives the decoded
// response payload. Failures are *domain.APIError values.
type Requester interface {
	Request(ctx context.Context, method string, path string, body any, query url.Values, out any) error
}
