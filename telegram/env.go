package telegram

import (
	"errors"
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// ErrTokenNotFound is returned by LoadEnv when no bot token is set.
var ErrTokenNotFound = errors.New("telegram: TELEGRAM_BOT_TOKEN is not set")

// Env is the environment configuration of a Bot.
type Env struct {
	Token    string `envconfig:"TELEGRAM_BOT_TOKEN"`
	Endpoint string `envconfig:"TELEGRAM_API_ENDPOINT" default:"https://api.telegram.org/"`
}

// LoadEnv reads the bot token and endpoint from the environment.
func LoadEnv() (Env, error) {
	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return Env{}, fmt.Errorf("telegram: load environment: %w", err)
	}
	if env.Token == "" {
		return Env{}, ErrTokenNotFound
	}
	return env, nil
}

// NewFromEnv creates a Bot from TELEGRAM_BOT_TOKEN and TELEGRAM_API_ENDPOINT.
// Options are applied after the environment, so they take precedence.
func NewFromEnv(opts ...Option) (*Bot, error) {
	env, err := LoadEnv()
	if err != nil {
		return nil, err
	}
	return New(env.Token, append([]Option{WithEndpoint(env.Endpoint)}, opts...)...), nil
}
