package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/petal-labs/tgbot/core"
	"github.com/petal-labs/tgbot/internal/normalize"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/petal-labs/tgbot/telegram"

// Bot dispatches requests to the Bot API. Its configuration is fixed at
// construction, so a Bot is safe for concurrent use by multiple goroutines.
type Bot struct {
	config Config
	tracer trace.Tracer
}

// New creates a Bot for token against DefaultEndpoint.
func New(token string, opts ...Option) *Bot {
	cfg := newConfig(token, opts)
	return &Bot{
		config: cfg,
		tracer: cfg.TracerProvider.Tracer(tracerName),
	}
}

// NewWithEndpoint creates a Bot for token against endpoint, which must
// include the scheme and host. A missing trailing slash is added.
func NewWithEndpoint(token, endpoint string, opts ...Option) *Bot {
	return New(token, append([]Option{WithEndpoint(endpoint)}, opts...)...)
}

// Endpoint returns the API base URL the Bot sends requests to.
func (b *Bot) Endpoint() string {
	return b.config.Endpoint
}

// Do sends req and decodes the result declared by its type.
//
// Requests without files are sent as a JSON body. Requests with at least one
// by-bytes file are sent as a multipart form whose text fields carry every
// other parameter. Every failure is a *core.APIError.
func Do[R any](ctx context.Context, b *Bot, req Request[R]) (R, error) {
	method := req.Method()
	var result R
	err := b.dispatch(ctx, method, req, func(body []byte) error {
		var err error
		result, err = decodeEnvelope[R](method, body)
		return err
	})
	return result, err
}

// Call sends an untyped request for method and returns the raw result.
// params is rendered like a request value and may be nil.
func (b *Bot) Call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	var result json.RawMessage
	err := b.dispatch(ctx, method, params, func(body []byte) error {
		var err error
		result, err = decodeEnvelope[json.RawMessage](method, body)
		return err
	})
	return result, err
}

func (b *Bot) dispatch(ctx context.Context, method string, req any, decode func([]byte) error) (err error) {
	parts := Files(req)

	ctx, c := b.startCall(ctx, method, len(parts))
	defer func() { c.finish(ctx, err) }()

	httpReq, err := b.newRequest(ctx, method, req, parts)
	if err != nil {
		return err
	}

	resp, err := b.config.HTTPClient.Do(httpReq)
	if err != nil {
		return normalize.NetworkError(method, err, b.config.Token.Redact)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return normalize.NetworkError(method, err, b.config.Token.Redact)
	}
	c.span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if !isEnvelope(body) {
		return normalize.DecodeError(method, fmt.Errorf("unexpected response (HTTP %d): %s", resp.StatusCode, snippet(body)))
	}
	return decode(body)
}

// newRequest renders req into an HTTP request. Failures are encode errors
// and happen before any network activity.
func (b *Bot) newRequest(ctx context.Context, method string, req any, parts []FilePart) (*http.Request, error) {
	var values map[string]json.RawMessage
	if req != nil {
		var err error
		values, err = Values(req)
		if err != nil {
			return nil, normalize.EncodeError(method, err)
		}
	}

	var (
		body        io.Reader
		contentType string
	)
	if len(parts) == 0 {
		data, err := json.Marshal(values)
		if err != nil {
			return nil, normalize.EncodeError(method, err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	} else {
		buf, ct, err := encodeMultipart(values, parts)
		if err != nil {
			return nil, normalize.EncodeError(method, err)
		}
		body = buf
		contentType = ct
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.methodURL(method), body)
	if err != nil {
		return nil, normalize.EncodeError(method, errors.New(b.config.Token.Redact(err.Error())))
	}
	for key, vals := range b.config.Headers {
		for _, v := range vals {
			httpReq.Header.Add(key, v)
		}
	}
	httpReq.Header.Set("Content-Type", contentType)
	return httpReq, nil
}

func (b *Bot) methodURL(method string) string {
	return b.config.Endpoint + "bot" + b.config.Token.Expose() + "/" + method
}

func (b *Bot) fileURL(path string) string {
	return b.config.Endpoint + "file/bot" + b.config.Token.Expose() + "/" + strings.TrimPrefix(path, "/")
}

// encodeMultipart writes values as flat text fields followed by parts.
// A part built for a file parameter replaces that parameter's value; any
// other part whose field equals a parameter name fails the form. String
// values are written as their text, any other value as its compact JSON.
// A value that cannot be converted fails the whole form.
func encodeMultipart(values map[string]json.RawMessage, parts []FilePart) (*bytes.Buffer, string, error) {
	fields := make(map[string]struct{}, len(parts))
	replaced := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		if _, dup := fields[p.Field]; dup {
			return nil, "", fmt.Errorf("duplicate file field %q", p.Field)
		}
		fields[p.Field] = struct{}{}
		if _, ok := values[p.Field]; !ok {
			continue
		}
		if !p.param {
			return nil, "", fmt.Errorf("file field %q collides with a parameter", p.Field)
		}
		replaced[p.Field] = struct{}{}
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, name := range slices.Sorted(maps.Keys(values)) {
		if _, ok := replaced[name]; ok {
			continue
		}
		text, err := formText(values[name])
		if err != nil {
			return nil, "", fmt.Errorf("field %s: %w", name, err)
		}
		if err := w.WriteField(name, text); err != nil {
			return nil, "", fmt.Errorf("field %s: %w", name, err)
		}
	}

	for _, p := range parts {
		pw, err := createFormFile(w, p.Field, p.FileName, p.Data)
		if err != nil {
			return nil, "", fmt.Errorf("file %s: %w", p.Field, err)
		}
		if _, err := pw.Write(p.Data); err != nil {
			return nil, "", fmt.Errorf("file %s: %w", p.Field, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// formText returns the flat text form of an encoded value.
func formText(raw json.RawMessage) (string, error) {
	if !gjson.ValidBytes(raw) {
		return "", fmt.Errorf("invalid JSON value %q", snippet(raw))
	}
	if r := gjson.ParseBytes(raw); r.Type == gjson.String {
		return r.Str, nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// createFormFile creates a file part with a content type detected from the
// file name extension, falling back to the content itself.
func createFormFile(w *multipart.Writer, field, filename string, data []byte) (io.Writer, error) {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(field), quoteEscaper.Replace(filename)))
	h.Set("Content-Type", detectMIME(filename, data))
	return w.CreatePart(h)
}

func detectMIME(filename string, data []byte) string {
	if ext := filepath.Ext(filename); ext != "" {
		if t := mime.TypeByExtension(strings.ToLower(ext)); t != "" {
			return t
		}
	}
	return http.DetectContentType(data)
}

// call tracks the logging, tracing and telemetry of one dispatched call.
type call struct {
	method string
	id     string
	start  time.Time
	span   trace.Span
	log    *slog.Logger
	hook   core.TelemetryHook
}

func (b *Bot) startCall(ctx context.Context, method string, parts int) (context.Context, *call) {
	c := &call{
		method: method,
		id:     uuid.NewString(),
		start:  time.Now(),
		hook:   b.config.Telemetry,
	}
	c.log = b.config.Logger.With("method", method, "call_id", c.id)

	ctx, c.span = b.tracer.Start(ctx, "telegram."+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("telegram.method", method),
			attribute.String("telegram.call_id", c.id),
			attribute.Bool("telegram.multipart", parts > 0),
			attribute.Int("telegram.parts", parts),
		),
	)

	c.hook.OnRequestStart(core.RequestStartEvent{
		Method:    method,
		CallID:    c.id,
		Multipart: parts > 0,
		Parts:     parts,
		Start:     c.start,
	})
	c.log.DebugContext(ctx, "telegram request", "multipart", parts > 0, "parts", parts)
	return ctx, c
}

func (c *call) finish(ctx context.Context, err error) {
	end := time.Now()
	elapsed := end.Sub(c.start)

	if err != nil {
		c.span.RecordError(err)
		c.span.SetStatus(codes.Error, err.Error())
		if apiErr, ok := core.AsAPIError(err); ok && apiErr.Code != 0 {
			c.span.SetAttributes(attribute.Int("telegram.error_code", apiErr.Code))
		}
		c.log.WarnContext(ctx, "telegram request failed", "duration", elapsed, "error", err)
	} else {
		c.span.SetStatus(codes.Ok, "")
		c.log.DebugContext(ctx, "telegram response", "duration", elapsed)
	}
	c.span.End()

	c.hook.OnRequestEnd(core.RequestEndEvent{
		Method: c.method,
		CallID: c.id,
		Start:  c.start,
		End:    end,
		Err:    err,
	})
}
