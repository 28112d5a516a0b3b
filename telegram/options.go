package telegram

import (
	"log/slog"
	"net/http"

	"github.com/petal-labs/tgbot/core"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// DefaultEndpoint is the public Bot API server.
const DefaultEndpoint = "https://api.telegram.org/"

// Config holds the immutable context shared by every call of a Bot.
type Config struct {
	// Token is the bot token (required).
	Token core.Secret

	// Endpoint is the API base URL, with scheme, host and trailing slash.
	// Defaults to DefaultEndpoint.
	Endpoint string

	// HTTPClient is the HTTP client to use. Defaults to http.DefaultClient.
	HTTPClient *http.Client

	// Logger receives per-call debug and error records. Defaults to a
	// logger that discards everything.
	Logger *slog.Logger

	// Telemetry receives call lifecycle events.
	Telemetry core.TelemetryHook

	// TracerProvider creates the span recorded for each call. Defaults to
	// the global OpenTelemetry provider.
	TracerProvider trace.TracerProvider

	// Headers contains optional extra headers to include in requests.
	Headers http.Header
}

// Option configures a Bot.
type Option func(*Config)

// WithEndpoint sets the API base URL, e.g. a local Bot API server.
func WithEndpoint(endpoint string) Option {
	return func(c *Config) {
		c.Endpoint = endpoint
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithTelemetry sets the call lifecycle hook.
func WithTelemetry(hook core.TelemetryHook) Option {
	return func(c *Config) {
		c.Telemetry = hook
	}
}

// WithTracerProvider sets the OpenTelemetry tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Config) {
		c.TracerProvider = tp
	}
}

// WithHeader adds an extra header to include in requests.
func WithHeader(key, value string) Option {
	return func(c *Config) {
		if c.Headers == nil {
			c.Headers = make(http.Header)
		}
		c.Headers.Set(key, value)
	}
}

func newConfig(token string, opts []Option) Config {
	cfg := Config{
		Token:    core.NewSecret(token),
		Endpoint: DefaultEndpoint,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Endpoint[len(cfg.Endpoint)-1] != '/' {
		cfg.Endpoint += "/"
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Telemetry == nil {
		cfg.Telemetry = core.NoopTelemetryHook{}
	}
	if cfg.TracerProvider == nil {
		cfg.TracerProvider = otel.GetTracerProvider()
	}
	return cfg
}
