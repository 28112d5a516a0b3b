// Package normalize converts call failures into *core.APIError values.
package normalize

import (
	"net/http"

	"github.com/petal-labs/tgbot/core"
)

// Envelope error fields as reported by the Bot API.
type Envelope struct {
	ErrorCode   int
	Description string
	RetryAfter  int
	MigrateTo   int64
}

// NetworkError wraps transport failures. The message is passed through
// redact so tokens embedded in request URLs never leak.
func NetworkError(method string, err error, redact func(string) string) error {
	msg := err.Error()
	if redact != nil {
		msg = redact(msg)
	}
	return &core.APIError{
		Method:      method,
		Description: msg,
		Err:         core.ErrNetwork,
	}
}

// EncodeError wraps failures to render a request before it is sent.
func EncodeError(method string, err error) error {
	return &core.APIError{
		Method:      method,
		Description: err.Error(),
		Err:         core.ErrEncode,
	}
}

// DecodeError wraps failures to parse a response.
func DecodeError(method string, err error) error {
	return &core.APIError{
		Method:      method,
		Description: err.Error(),
		Err:         core.ErrDecode,
	}
}

// RemoteError constructs the error for an ok=false envelope.
// Missing fields are tolerated: an empty description falls back to the
// status text for the code, or "unknown error" when there is no code either.
func RemoteError(method string, env Envelope) error {
	desc := env.Description
	if desc == "" {
		desc = http.StatusText(env.ErrorCode)
	}
	if desc == "" {
		desc = "unknown error"
	}
	return &core.APIError{
		Method:          method,
		Code:            env.ErrorCode,
		Description:     desc,
		RetryAfter:      env.RetryAfter,
		MigrateToChatID: env.MigrateTo,
		Err:             SentinelForCode(env.ErrorCode),
	}
}

// StatusError constructs a remote error for a response without an envelope,
// such as a failed file download.
func StatusError(method string, status int) error {
	return RemoteError(method, Envelope{ErrorCode: status})
}

// SentinelForCode maps a Bot API error code to a core sentinel error.
// The API reuses HTTP status semantics for its error codes.
func SentinelForCode(code int) error {
	switch {
	case code == http.StatusBadRequest:
		return core.ErrBadRequest
	case code == http.StatusUnauthorized:
		return core.ErrUnauthorized
	case code == http.StatusForbidden:
		return core.ErrForbidden
	case code == http.StatusNotFound:
		return core.ErrNotFound
	case code == http.StatusConflict:
		return core.ErrConflict
	case code == http.StatusTooManyRequests:
		return core.ErrRateLimited
	case code >= 500:
		return core.ErrServer
	default:
		return core.ErrRemote
	}
}
