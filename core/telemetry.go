package core

import "time"

// TelemetryHook receives notifications about the lifecycle of each Bot API call.
// Implementations can use this for logging, metrics, auditing, etc.
//
// Events carry operational metadata only. The bot token, request values,
// uploaded bytes and result payloads are never included, so events can be
// shipped to external systems without scrubbing.
//
// Hooks are called synchronously on the calling goroutine and must be safe
// for concurrent use when the Bot is shared.
type TelemetryHook interface {
	// OnRequestStart is called before the request is sent.
	OnRequestStart(e RequestStartEvent)

	// OnRequestEnd is called once the outcome of the call is known.
	OnRequestEnd(e RequestEndEvent)
}

// RequestStartEvent contains metadata about a starting call.
type RequestStartEvent struct {
	Method    string    // Bot API method (e.g. "sendPhoto")
	CallID    string    // Correlation id shared with logs and spans
	Multipart bool      // Whether the body is a multipart form
	Parts     int       // Number of binary parts attached
	Start     time.Time // When the call started
}

// RequestEndEvent contains metadata about a completed call.
//
// Err holds the *APIError returned to the caller, or nil on success.
type RequestEndEvent struct {
	Method string
	CallID string
	Start  time.Time
	End    time.Time
	Err    error
}

// Duration returns the elapsed time for the call.
func (e RequestEndEvent) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// NoopTelemetryHook is a no-op implementation of TelemetryHook.
// It is the default when no telemetry is configured.
type NoopTelemetryHook struct{}

// OnRequestStart does nothing.
func (NoopTelemetryHook) OnRequestStart(RequestStartEvent) {}

// OnRequestEnd does nothing.
func (NoopTelemetryHook) OnRequestEnd(RequestEndEvent) {}

// Compile-time check that NoopTelemetryHook implements TelemetryHook.
var _ TelemetryHook = NoopTelemetryHook{}
