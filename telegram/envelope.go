package telegram

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/petal-labs/tgbot/internal/normalize"
	"github.com/tidwall/gjson"
)

// Response is the envelope every Bot API method answers with.
type Response[R any] struct {
	OK          bool                `json:"ok"`
	Result      *R                  `json:"result,omitempty"`
	ErrorCode   int                 `json:"error_code,omitempty"`
	Description string              `json:"description,omitempty"`
	Parameters  *ResponseParameters `json:"parameters,omitempty"`
}

// ResponseParameters explains why a request was unsuccessful and how the
// caller can recover.
type ResponseParameters struct {
	// RetryAfter is the number of seconds to wait under flood control.
	RetryAfter int `json:"retry_after,omitempty"`
	// MigrateToChatID is the new identifier of a group that was migrated
	// to a supergroup.
	MigrateToChatID int64 `json:"migrate_to_chat_id,omitempty"`
}

var errMissingResult = errors.New("ok response missing result")

// Unwrap collapses the envelope into a single outcome for method.
//
// ok=true with a result yields the result. ok=true without a result is a
// decode error. ok=false always yields a remote error, whatever the result
// field holds; missing error fields default to empty rather than failing.
func (r Response[R]) Unwrap(method string) (R, error) {
	var zero R
	if !r.OK {
		env := normalize.Envelope{
			ErrorCode:   r.ErrorCode,
			Description: r.Description,
		}
		if r.Parameters != nil {
			env.RetryAfter = r.Parameters.RetryAfter
			env.MigrateTo = r.Parameters.MigrateToChatID
		}
		return zero, normalize.RemoteError(method, env)
	}
	if r.Result == nil {
		return zero, normalize.DecodeError(method, errMissingResult)
	}
	return *r.Result, nil
}

// decodeEnvelope parses body as an envelope and decodes its result into R.
// Bytes that are not a JSON object with an "ok" field are a decode error,
// never a remote one.
func decodeEnvelope[R any](method string, body []byte) (R, error) {
	var zero R
	if !isEnvelope(body) {
		return zero, normalize.DecodeError(method, fmt.Errorf("response is not an envelope: %s", snippet(body)))
	}

	var env Response[json.RawMessage]
	if err := json.Unmarshal(body, &env); err != nil {
		return zero, normalize.DecodeError(method, err)
	}
	// A literal null result counts as missing.
	if env.Result != nil && string(*env.Result) == "null" {
		env.Result = nil
	}

	raw, err := env.Unwrap(method)
	if err != nil {
		return zero, err
	}

	var out R
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, normalize.DecodeError(method, err)
	}
	return out, nil
}

// snippet shortens body for error messages.
func snippet(body []byte) string {
	const limit = 128
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}

// isEnvelope reports whether body has the shape of an envelope.
func isEnvelope(body []byte) bool {
	return gjson.ValidBytes(body) && gjson.GetBytes(body, "ok").Exists()
}
