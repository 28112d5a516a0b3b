package commands

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/petal-labs/tgbot/core"
)

// Exit codes
const (
	ExitSuccess    = 0
	ExitValidation = 1
	ExitRemote     = 2
	ExitNetwork    = 3
)

// exitCode maps a call error onto a process exit code.
func exitCode(err error) int {
	switch {
	case errors.Is(err, core.ErrNetwork):
		return ExitNetwork
	case errors.Is(err, core.ErrRemote), errors.Is(err, core.ErrDecode):
		return ExitRemote
	default:
		return ExitValidation
	}
}

func errorType(err error) string {
	switch {
	case errors.Is(err, core.ErrNetwork):
		return "network_error"
	case errors.Is(err, core.ErrRemote):
		return "remote_error"
	case errors.Is(err, core.ErrDecode):
		return "decode_error"
	case errors.Is(err, core.ErrEncode):
		return "encode_error"
	default:
		return "validation_error"
	}
}

// handleError reports err on stderr and attaches its exit code.
func (a *App) handleError(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return err
	}

	if a.jsonOutput {
		a.outputErrorJSON(err)
	} else {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		if apiErr, ok := core.AsAPIError(err); ok {
			if apiErr.RetryAfter > 0 {
				fmt.Fprintf(a.stderr, "  Retry after %d seconds\n", apiErr.RetryAfter)
			}
			if apiErr.MigrateToChatID != 0 {
				fmt.Fprintf(a.stderr, "  Chat migrated to %d\n", apiErr.MigrateToChatID)
			}
		}
	}

	return &exitError{code: exitCode(err), err: err, reported: true}
}

func (a *App) outputErrorJSON(err error) {
	detail := map[string]any{
		"type":    errorType(err),
		"message": err.Error(),
	}
	if apiErr, ok := core.AsAPIError(err); ok {
		detail["method"] = apiErr.Method
		if apiErr.Code != 0 {
			detail["code"] = apiErr.Code
		}
		if apiErr.RetryAfter > 0 {
			detail["retry_after"] = apiErr.RetryAfter
		}
		if apiErr.MigrateToChatID != 0 {
			detail["migrate_to_chat_id"] = apiErr.MigrateToChatID
		}
	}

	enc := json.NewEncoder(a.stderr)
	enc.SetIndent("", "  ")
	enc.Encode(map[string]any{"error": detail})
}

// outputJSON writes v to stdout as indented JSON.
func (a *App) outputJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitError wraps an error with an exit code. reported is set once the
// error has been written to stderr.
type exitError struct {
	code     int
	err      error
	reported bool
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func (e *exitError) ExitCode() int {
	return e.code
}

func exitWithCode(code int, err error) error {
	return &exitError{code: code, err: err}
}
