// tgbot is a command-line client for the Telegram Bot API.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/petal-labs/tgbot/cli/commands"
)

// ExitCoder is an interface for errors that have an exit code.
type ExitCoder interface {
	ExitCode() int
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := commands.ExecuteContext(ctx)
	stop()

	if err != nil {
		if ec, ok := err.(ExitCoder); ok {
			os.Exit(ec.ExitCode())
		}
		os.Exit(1)
	}
}
