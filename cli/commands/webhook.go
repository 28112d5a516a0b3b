package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/petal-labs/tgbot/telegram"
)

func (a *App) newWebhookCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webhook",
		Short: "Manage the bot's webhook",
	}

	set := &cobra.Command{
		Use:   "set <url>",
		Short: "Deliver updates to an HTTPS URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bot, err := a.bot()
			if err != nil {
				return err
			}

			ok, err := telegram.Do(cmd.Context(), bot, telegram.SetWebhook{
				URL:         args[0],
				SecretToken: a.webhookSecret,
			})
			if err != nil {
				return a.handleError(err)
			}
			return a.printResult("webhook set", ok)
		},
	}
	set.Flags().StringVar(&a.webhookSecret, "secret", "", "value of the X-Telegram-Bot-Api-Secret-Token header")

	del := &cobra.Command{
		Use:   "delete",
		Short: "Remove the webhook and switch back to getUpdates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bot, err := a.bot()
			if err != nil {
				return err
			}

			ok, err := telegram.Do(cmd.Context(), bot, telegram.DeleteWebhook{
				DropPendingUpdates: a.webhookDrop,
			})
			if err != nil {
				return a.handleError(err)
			}
			return a.printResult("webhook deleted", ok)
		},
	}
	del.Flags().BoolVar(&a.webhookDrop, "drop-pending", false, "drop all pending updates")

	cmd.AddCommand(set, del)
	return cmd
}

func (a *App) printResult(done string, ok bool) error {
	if a.jsonOutput {
		return a.outputJSON(map[string]bool{"ok": ok})
	}
	if ok {
		fmt.Fprintln(a.stdout, done)
	} else {
		fmt.Fprintln(a.stdout, "request accepted, no change")
	}
	return nil
}
