package commands

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/petal-labs/tgbot/cli/keystore"
)

func (a *App) newTokenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage stored bot tokens",
		Long: `Manage bot tokens in the encrypted keystore (~/.tgbot/keys.enc).
Without a name, commands use the token_ref entry from the config file,
or "default".`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set [name]",
		Short: "Store a bot token",
		Long:  `Store a bot token. The token is prompted without echo.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := a.tokenName(args)

			fmt.Fprintf(a.stderr, "Enter bot token for %s: ", name)
			token, err := a.readSecret()
			if err != nil {
				return exitWithCode(ExitValidation, fmt.Errorf("failed to read token: %w", err))
			}
			if token == "" {
				return exitWithCode(ExitValidation, errors.New("token cannot be empty"))
			}

			ks, err := a.newKeystore()
			if err != nil {
				return exitWithCode(ExitValidation, fmt.Errorf("failed to open keystore: %w", err))
			}
			if err := ks.Set(name, token); err != nil {
				return exitWithCode(ExitValidation, fmt.Errorf("failed to store token: %w", err))
			}

			fmt.Fprintf(a.stdout, "Token %s stored successfully.\n", name)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored token names",
		Long:  `List stored token names. Token values are never shown.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ks, err := a.newKeystore()
			if err != nil {
				return exitWithCode(ExitValidation, fmt.Errorf("failed to open keystore: %w", err))
			}

			names, err := ks.List()
			if err != nil {
				return exitWithCode(ExitValidation, fmt.Errorf("failed to list tokens: %w", err))
			}

			if a.jsonOutput {
				return a.outputJSON(map[string][]string{"tokens": names})
			}
			if len(names) == 0 {
				fmt.Fprintln(a.stdout, "No tokens stored.")
				return nil
			}
			for _, name := range names {
				fmt.Fprintf(a.stdout, "  - %s\n", name)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a stored bot token",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := a.tokenName(args)

			ks, err := a.newKeystore()
			if err != nil {
				return exitWithCode(ExitValidation, fmt.Errorf("failed to open keystore: %w", err))
			}

			if err := ks.Delete(name); err != nil {
				var notFound *keystore.ErrKeyNotFound
				if errors.As(err, &notFound) {
					return exitWithCode(ExitValidation, fmt.Errorf("no token stored for %s", name))
				}
				return exitWithCode(ExitValidation, fmt.Errorf("failed to delete token: %w", err))
			}

			fmt.Fprintf(a.stdout, "Token %s deleted.\n", name)
			return nil
		},
	})

	return cmd
}

func (a *App) tokenName(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return a.cfg.Token()
}

// readSecret reads one line from stdin, without echo when stdin is a
// terminal.
func (a *App) readSecret() (string, error) {
	if f, ok := a.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.stderr)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(a.stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
