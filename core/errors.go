package core

import (
	"errors"
	"fmt"
)

// APIError represents a failed Bot API call with full context.
//
// Err always holds one of the classification sentinels below, so callers can
// branch with errors.Is without inspecting the other fields.
type APIError struct {
	// Method is the Bot API method that was called (e.g. "sendMessage").
	Method string
	// Code is the error_code reported by the API, or the HTTP status for
	// calls that carry no envelope (downloads). Zero for local failures.
	Code int
	// Description is the human-readable reason reported by the API, or the
	// underlying error text for local failures.
	Description string
	// RetryAfter is the number of seconds to wait before repeating the
	// request, when the API reported flood control.
	RetryAfter int
	// MigrateToChatID is set when a group was migrated to a supergroup.
	MigrateToChatID int64
	// Err is the classification sentinel.
	Err error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("telegram: %s: %s (code=%d)", e.Method, e.Description, e.Code)
	}
	return fmt.Sprintf("telegram: %s: %s: %s", e.Method, e.Err, e.Description)
}

// Unwrap returns the classification sentinel for error chaining.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Sentinel errors for the four failure kinds of a call.
var (
	// ErrNetwork reports a transport failure (connection, DNS, TLS, timeout,
	// cancellation).
	ErrNetwork = errors.New("network error")
	// ErrEncode reports that the request could not be rendered; no network
	// activity took place.
	ErrEncode = errors.New("encode error")
	// ErrDecode reports a response that does not match the envelope or the
	// declared result type.
	ErrDecode = errors.New("decode error")
	// ErrRemote reports that the API answered with ok=false.
	ErrRemote = errors.New("remote error")
)

// Remote error classes. Each wraps ErrRemote.
var (
	ErrBadRequest   = fmt.Errorf("%w: bad request", ErrRemote)
	ErrUnauthorized = fmt.Errorf("%w: unauthorized", ErrRemote)
	ErrForbidden    = fmt.Errorf("%w: forbidden", ErrRemote)
	ErrNotFound     = fmt.Errorf("%w: not found", ErrRemote)
	ErrConflict     = fmt.Errorf("%w: conflict", ErrRemote)
	ErrRateLimited  = fmt.Errorf("%w: rate limited", ErrRemote)
	ErrServer       = fmt.Errorf("%w: server error", ErrRemote)
)

// IsRemote reports whether err is an error the API itself reported.
func IsRemote(err error) bool {
	return errors.Is(err, ErrRemote)
}

// AsAPIError extracts an *APIError from err's chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
