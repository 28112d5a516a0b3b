package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/petal-labs/tgbot/cli/config"
	"github.com/petal-labs/tgbot/cli/keystore"
	"github.com/petal-labs/tgbot/telegram"
)

// ConfigLoader loads CLI config from a path.
type ConfigLoader func(path string) (*config.Config, error)

// KeystoreFactory creates a keystore instance.
type KeystoreFactory func() (keystore.Keystore, error)

// BotFactory creates a Bot for a token.
type BotFactory func(token string, opts ...telegram.Option) *telegram.Bot

// AppOption customizes App dependencies.
type AppOption func(*App)

// App holds CLI state and runtime dependencies.
type App struct {
	root *cobra.Command

	loadConfig  ConfigLoader
	newKeystore KeystoreFactory
	newBot      BotFactory
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	cfgFile     string
	endpoint    string
	jsonOutput  bool
	verbose     bool
	cfg         *config.Config
	logger      *slog.Logger

	sendParseMode  string
	sendSilent     bool
	photoCaption   string
	downloadOutput string
	updatesOffset  int
	updatesLimit   int
	updatesTimeout int
	webhookSecret  string
	webhookDrop    bool
}

// WithConfigLoader injects a config loader dependency.
func WithConfigLoader(loader ConfigLoader) AppOption {
	return func(a *App) {
		if loader != nil {
			a.loadConfig = loader
		}
	}
}

// WithKeystoreFactory injects a keystore factory dependency.
func WithKeystoreFactory(factory KeystoreFactory) AppOption {
	return func(a *App) {
		if factory != nil {
			a.newKeystore = factory
		}
	}
}

// WithBotFactory injects a bot factory dependency.
func WithBotFactory(factory BotFactory) AppOption {
	return func(a *App) {
		if factory != nil {
			a.newBot = factory
		}
	}
}

// WithIO injects process I/O streams.
func WithIO(stdin io.Reader, stdout, stderr io.Writer) AppOption {
	return func(a *App) {
		if stdin != nil {
			a.stdin = stdin
		}
		if stdout != nil {
			a.stdout = stdout
		}
		if stderr != nil {
			a.stderr = stderr
		}
	}
}

// NewApp creates a new CLI app with default dependencies.
func NewApp(opts ...AppOption) *App {
	a := &App{
		loadConfig:  config.LoadConfig,
		newKeystore: keystore.NewKeystore,
		newBot:      telegram.New,
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
	}

	for _, opt := range opts {
		opt(a)
	}

	a.root = a.newRootCommand()
	return a
}

func (a *App) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "tgbot",
		Short: "tgbot - Telegram Bot API from the command line",
		Long: `tgbot is a command-line interface for the Telegram Bot API.

Use tgbot to send messages and media, fetch updates, manage webhooks and
download files. The bot token is read from TELEGRAM_BOT_TOKEN or from the
encrypted keystore (see "tgbot token set").`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags available to all commands.
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ~/.tgbot/config.yaml)")
	root.PersistentFlags().StringVar(&a.endpoint, "endpoint", "", "Bot API base URL (default https://api.telegram.org/)")
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "emit JSON output")
	root.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "enable debug logging")

	root.AddCommand(a.newMeCommand())
	root.AddCommand(a.newSendCommand())
	root.AddCommand(a.newPhotoCommand())
	root.AddCommand(a.newAlbumCommand())
	root.AddCommand(a.newDownloadCommand())
	root.AddCommand(a.newUpdatesCommand())
	root.AddCommand(a.newWebhookCommand())
	root.AddCommand(a.newTokenCommand())
	root.AddCommand(a.newVersionCommand())

	return root
}

// Execute runs the root command.
func (a *App) Execute() error {
	return a.ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx, which every API call
// inherits. Errors that did not pass through a command's error handler,
// such as flag and argument errors, are reported as validation failures.
func (a *App) ExecuteContext(ctx context.Context) error {
	err := a.root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}

	var exitErr *exitError
	if !errors.As(err, &exitErr) {
		exitErr = &exitError{code: ExitValidation, err: err}
	}
	if !exitErr.reported {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
	}
	return exitErr
}

func (a *App) initConfig() error {
	env, err := config.LoadEnv()
	if err != nil {
		return exitWithCode(ExitValidation, err)
	}

	cfg, err := a.loadConfig(config.ResolvePath(a.cfgFile, env))
	if err != nil {
		return exitWithCode(ExitValidation, fmt.Errorf("failed to load config: %w", err))
	}
	cfg.ApplyEnv(env)
	a.cfg = cfg

	level := cfg.Level()
	if a.verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	if a.jsonOutput {
		a.logger = slog.New(slog.NewJSONHandler(a.stderr, handlerOpts))
	} else {
		a.logger = slog.New(slog.NewTextHandler(a.stderr, handlerOpts))
	}

	return nil
}

// bot builds a Bot from the resolved token and endpoint.
//
// Token: TELEGRAM_BOT_TOKEN, then the keystore entry named by token_ref.
// Endpoint: --endpoint, then the config file, then TELEGRAM_API_ENDPOINT.
func (a *App) bot() (*telegram.Bot, error) {
	var env telegram.Env
	if err := envconfig.Process("", &env); err != nil {
		return nil, exitWithCode(ExitValidation, err)
	}

	token := env.Token
	if token == "" {
		var err error
		token, err = a.storedToken()
		if err != nil {
			return nil, err
		}
	}

	endpoint := env.Endpoint
	switch {
	case a.endpoint != "":
		endpoint = a.endpoint
	case a.cfg.Endpoint != "":
		endpoint = a.cfg.Endpoint
	}

	return a.newBot(token,
		telegram.WithEndpoint(endpoint),
		telegram.WithLogger(a.logger),
	), nil
}

func (a *App) storedToken() (string, error) {
	ks, err := a.newKeystore()
	if err != nil {
		return "", exitWithCode(ExitValidation, fmt.Errorf("failed to open keystore: %w", err))
	}

	name := a.cfg.Token()
	token, err := ks.Get(name)
	if err != nil {
		var notFound *keystore.ErrKeyNotFound
		if errors.As(err, &notFound) {
			return "", exitWithCode(ExitValidation,
				fmt.Errorf("no bot token: set TELEGRAM_BOT_TOKEN or run 'tgbot token set %s'", name))
		}
		return "", exitWithCode(ExitValidation, fmt.Errorf("failed to read token: %w", err))
	}
	return token, nil
}

var defaultApp = NewApp()

// Execute runs the default app root command.
func Execute() error {
	return defaultApp.Execute()
}

// ExecuteContext runs the default app root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return defaultApp.ExecuteContext(ctx)
}
