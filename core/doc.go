// Package core holds the types shared by the Bot API client and its callers:
// the error taxonomy, the token wrapper and the telemetry hook.
//
// # Errors
//
// Every failed call surfaces as an [*APIError] whose Err field is one of
// four sentinels:
//
//   - [ErrNetwork]: the request did not complete (connection, TLS, timeout,
//     cancelled context)
//   - [ErrEncode]: the request could not be rendered, nothing was sent
//   - [ErrDecode]: the response did not match the envelope or result type
//   - [ErrRemote]: the API answered ok=false
//
// Remote failures are classified further by error code ([ErrBadRequest],
// [ErrUnauthorized], [ErrForbidden], [ErrNotFound], [ErrConflict],
// [ErrRateLimited], [ErrServer]); each wraps ErrRemote:
//
//	if errors.Is(err, core.ErrRemote) {
//	    apiErr, _ := core.AsAPIError(err)
//	    log.Printf("%s failed: %d %s", apiErr.Method, apiErr.Code, apiErr.Description)
//	}
//
// # Secrets
//
// [Secret] keeps the bot token out of logs: it formats as "[REDACTED]" under
// every verb and JSON encoding, and [Secret.Redact] scrubs it from error
// text such as transport errors that embed the request URL.
//
// # Telemetry
//
// [TelemetryHook] receives a start and an end event per call. Events carry
// the method name, a call id and timings, never the token or payloads.
package core
