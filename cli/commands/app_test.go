package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/petal-labs/tgbot/cli/config"
	"github.com/petal-labs/tgbot/cli/keystore"
	"github.com/petal-labs/tgbot/telegram"
)

const testToken = "123456:ABC-DEF"

// memKeystore is an in-memory keystore.Keystore.
type memKeystore struct {
	mu   sync.Mutex
	data map[string]string
}

func (m *memKeystore) Set(name, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[name] = value
	return nil
}

func (m *memKeystore) Get(name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[name]
	if !ok {
		return "", &keystore.ErrKeyNotFound{Name: name}
	}
	return v, nil
}

func (m *memKeystore) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[name]; !ok {
		return &keystore.ErrKeyNotFound{Name: name}
	}
	delete(m.data, name)
	return nil
}

func (m *memKeystore) List() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.data))
	for name := range m.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

type harness struct {
	app    *App
	cfg    *config.Config
	ks     *memKeystore
	server *httptest.Server
	stdin  *strings.Reader
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newHarness builds an App isolated from the environment, the user's
// config file and keystore. When handler is non-nil, commands talk to it.
func newHarness(t *testing.T, handler http.HandlerFunc) *harness {
	t.Helper()
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("TELEGRAM_API_ENDPOINT", "")
	t.Setenv("TGBOT_CONFIG", "")
	t.Setenv("TGBOT_LOG_LEVEL", "")

	h := &harness{
		cfg:    &config.Config{},
		ks:     &memKeystore{data: map[string]string{config.DefaultTokenRef: testToken}},
		stdin:  strings.NewReader(""),
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}
	if handler != nil {
		h.server = httptest.NewServer(handler)
		t.Cleanup(h.server.Close)
	}

	h.app = NewApp(
		WithConfigLoader(func(string) (*config.Config, error) { return h.cfg, nil }),
		WithKeystoreFactory(func() (keystore.Keystore, error) { return h.ks, nil }),
		WithIO(h.stdin, h.stdout, h.stderr),
	)
	return h
}

func (h *harness) run(args ...string) error {
	if h.server != nil {
		args = append([]string{"--endpoint", h.server.URL}, args...)
	}
	h.app.root.SetArgs(args)
	return h.app.Execute()
}

func exitCodeOf(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return ExitSuccess
	}
	var exitErr *exitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error %v (%T) carries no exit code", err, err)
	}
	return exitErr.ExitCode()
}

func reply(w http.ResponseWriter, result string) {
	w.Header().Set("Content-Type", "application/json")
	io.WriteString(w, `{"ok":true,"result":`+result+`}`)
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		t.Errorf("request body is not JSON: %v", err)
	}
	return body
}

const meResult = `{"id":42,"is_bot":true,"first_name":"Test","username":"test_bot"}`

func TestMeCommand(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bot"+testToken+"/getMe" {
			t.Errorf("path = %s", r.URL.Path)
		}
		reply(w, meResult)
	})

	if err := h.run("me"); err != nil {
		t.Fatalf("me error = %v", err)
	}
	out := h.stdout.String()
	if !strings.Contains(out, "Test (@test_bot)") || !strings.Contains(out, "id:     42") {
		t.Errorf("stdout = %q", out)
	}
}

func TestMeCommandJSON(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		reply(w, meResult)
	})

	if err := h.run("--json", "me"); err != nil {
		t.Fatalf("me error = %v", err)
	}

	var user struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	}
	if err := json.Unmarshal(h.stdout.Bytes(), &user); err != nil {
		t.Fatalf("stdout is not JSON: %v", err)
	}
	if user.ID != 42 || user.Username != "test_bot" {
		t.Errorf("user = %+v", user)
	}
}

func TestTokenFromEnvironmentWins(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bot42:ENV/getMe" {
			t.Errorf("path = %s, want the environment token", r.URL.Path)
		}
		reply(w, meResult)
	})
	t.Setenv("TELEGRAM_BOT_TOKEN", "42:ENV")

	if err := h.run("me"); err != nil {
		t.Fatalf("me error = %v", err)
	}
}

func TestTokenRefFromConfig(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bot7:STAGING/getMe" {
			t.Errorf("path = %s, want the staging token", r.URL.Path)
		}
		reply(w, meResult)
	})
	h.cfg.TokenRef = "staging"
	h.ks.data["staging"] = "7:STAGING"

	if err := h.run("me"); err != nil {
		t.Fatalf("me error = %v", err)
	}
}

func TestEndpointFromConfig(t *testing.T) {
	var called bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		reply(w, meResult)
	}))
	defer server.Close()

	h := newHarness(t, nil)
	h.cfg.Endpoint = server.URL

	if err := h.run("me"); err != nil {
		t.Fatalf("me error = %v", err)
	}
	if !called {
		t.Error("config endpoint was not used")
	}
}

func TestMissingToken(t *testing.T) {
	requests := 0
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
	})
	delete(h.ks.data, config.DefaultTokenRef)

	err := h.run("me")
	if code := exitCodeOf(t, err); code != ExitValidation {
		t.Errorf("exit code = %d, want %d", code, ExitValidation)
	}
	if !strings.Contains(err.Error(), "tgbot token set default") {
		t.Errorf("error = %v", err)
	}
	if requests != 0 {
		t.Errorf("%d requests sent without a token", requests)
	}
}

func TestArgumentErrors(t *testing.T) {
	h := newHarness(t, nil)

	err := h.run("send", "only-chat")
	if code := exitCodeOf(t, err); code != ExitValidation {
		t.Errorf("exit code = %d, want %d", code, ExitValidation)
	}
	if !strings.HasPrefix(h.stderr.String(), "Error: ") {
		t.Errorf("stderr = %q", h.stderr.String())
	}
}

func TestVerboseLogsWithoutToken(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		reply(w, meResult)
	})

	if err := h.run("--verbose", "me"); err != nil {
		t.Fatalf("me error = %v", err)
	}
	logs := h.stderr.String()
	if !strings.Contains(logs, "telegram request") {
		t.Errorf("debug logs missing: %q", logs)
	}
	if strings.Contains(logs, "ABC-DEF") {
		t.Errorf("logs contain the token: %q", logs)
	}
}

func TestLogLevelFromEnvironment(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		reply(w, meResult)
	})
	t.Setenv("TGBOT_LOG_LEVEL", "debug")

	if err := h.run("me"); err != nil {
		t.Fatalf("me error = %v", err)
	}
	if !strings.Contains(h.stderr.String(), "telegram request") {
		t.Errorf("TGBOT_LOG_LEVEL=debug did not enable debug logs: %q", h.stderr.String())
	}
}

func TestBotFactoryReceivesResolvedEndpoint(t *testing.T) {
	h := newHarness(t, nil)
	var endpoint, token string
	h.app = NewApp(
		WithConfigLoader(func(string) (*config.Config, error) { return h.cfg, nil }),
		WithKeystoreFactory(func() (keystore.Keystore, error) { return h.ks, nil }),
		WithIO(h.stdin, h.stdout, h.stderr),
		WithBotFactory(func(tok string, opts ...telegram.Option) *telegram.Bot {
			token = tok
			bot := telegram.New(tok, opts...)
			endpoint = bot.Endpoint()
			return bot
		}),
	)

	err := h.run("--endpoint", "http://127.0.0.1:1", "me")
	if code := exitCodeOf(t, err); code != ExitNetwork {
		t.Errorf("exit code = %d, want %d", code, ExitNetwork)
	}
	if token != testToken {
		t.Errorf("token = %q", token)
	}
	if endpoint != "http://127.0.0.1:1/" {
		t.Errorf("endpoint = %q", endpoint)
	}
}
