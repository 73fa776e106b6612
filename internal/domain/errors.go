package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrSecretNotFound    = errors.New("secret not found")
	ErrProfileNotFound   = errors.New("profile not found")
	ErrSearchUnsupported = errors.New("search is not supported for this collection")
	ErrInvalidPage       = errors.New("page must be at least 1")
	ErrInvalidPageSize   = errors.New("page size must be positive")
)

type ErrorKind string

const (
	KindUnauthorized       ErrorKind = "unauthorized"
	KindForbidden          ErrorKind = "forbidden"
	KindNotFound           ErrorKind = "not_found"
	KindServerError        ErrorKind = "server_error"
	KindNetworkUnreachable ErrorKind = "network_unreachable"
	KindOther              ErrorKind = "other"
)

// Kind sentinels. errors.Is(err, ErrForbidden) matches any *APIError of that kind.
var (
	ErrUnauthorized       = &APIError{Kind: KindUnauthorized}
	ErrForbidden          = &APIError{Kind: KindForbidden}
	ErrNotFound           = &APIError{Kind: KindNotFound}
	ErrServer             = &APIError{Kind: KindServerError}
	ErrNetworkUnreachable = &APIError{Kind: KindNetworkUnreachable}
	ErrRequestFailed      = &APIError{Kind: KindOther}
)

type APIError struct {
	Kind ErrorKind
	// Status is zero when no response was received.
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = DefaultMessage(e.Kind)
	}
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Status == 0 || t.Status == e.Status)
}

// ClassifyStatus maps a non-2xx HTTP status onto the error taxonomy.
func ClassifyStatus(status int) ErrorKind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status >= http.StatusInternalServerError:
		return KindServerError
	default:
		return KindOther
	}
}

func DefaultMessage(kind ErrorKind) string {
	switch kind {
	case KindUnauthorized:
		return "session expired, please log in again"
	case KindForbidden:
		return "permission denied"
	case KindNotFound:
		return "requested resource does not exist"
	case KindServerError:
		return "internal server error"
	case KindNetworkUnreachable:
		return "network connection failed"
	default:
		return "request failed"
	}
}

// UserMessage is the text shown to the user for err: the server-provided
// message when there is one, else the default for its kind.
func UserMessage(err error) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return err.Error()
	}
	if apiErr.Message != "" {
		return apiErr.Message
	}
	return DefaultMessage(apiErr.Kind)
}
