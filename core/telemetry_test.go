package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordingHook struct {
	starts []RequestStartEvent
	ends   []RequestEndEvent
}

func (h *recordingHook) OnRequestStart(e RequestStartEvent) { h.starts = append(h.starts, e) }
func (h *recordingHook) OnRequestEnd(e RequestEndEvent)     { h.ends = append(h.ends, e) }

func TestRequestEndEventDuration(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	e := RequestEndEvent{Method: "getMe", Start: start, End: start.Add(250 * time.Millisecond)}

	assert.Equal(t, 250*time.Millisecond, e.Duration())
}

func TestTelemetryHookRecordsEvents(t *testing.T) {
	var hook TelemetryHook = &recordingHook{}

	hook.OnRequestStart(RequestStartEvent{Method: "sendPhoto", CallID: "c1", Multipart: true, Parts: 1})
	hook.OnRequestEnd(RequestEndEvent{Method: "sendPhoto", CallID: "c1", Err: ErrNetwork})

	rec := hook.(*recordingHook)
	assert.Len(t, rec.starts, 1)
	assert.True(t, rec.starts[0].Multipart)
	assert.Len(t, rec.ends, 1)
	assert.ErrorIs(t, rec.ends[0].Err, ErrNetwork)
}

func TestNoopTelemetryHook(t *testing.T) {
	hook := NoopTelemetryHook{}

	assert.NotPanics(t, func() {
		hook.OnRequestStart(RequestStartEvent{})
		hook.OnRequestEnd(RequestEndEvent{})
	})
}
