package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/petal-labs/tgbot/telegram"
)

func (a *App) newUpdatesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "updates",
		Short: "Fetch pending updates once",
		Long: `Call getUpdates once and print the result. Pass --offset with the last
update_id + 1 to acknowledge earlier updates. Fails with a conflict error
while a webhook is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bot, err := a.bot()
			if err != nil {
				return err
			}

			updates, err := telegram.Do(cmd.Context(), bot, telegram.GetUpdates{
				Offset:  a.updatesOffset,
				Limit:   a.updatesLimit,
				Timeout: a.updatesTimeout,
			})
			if err != nil {
				return a.handleError(err)
			}

			if a.jsonOutput {
				return a.outputJSON(updates)
			}
			if len(updates) == 0 {
				fmt.Fprintln(a.stdout, "no pending updates")
				return nil
			}
			for _, u := range updates {
				fmt.Fprintf(a.stdout, "%d\t%s\n", u.UpdateID, describeUpdate(u))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&a.updatesOffset, "offset", 0, "identifier of the first update to return")
	cmd.Flags().IntVar(&a.updatesLimit, "limit", 0, "maximum number of updates (1-100)")
	cmd.Flags().IntVar(&a.updatesTimeout, "timeout", 0, "long polling timeout in seconds")
	return cmd
}

func describeUpdate(u telegram.Update) string {
	switch {
	case u.Message != nil:
		if cmd, ok := u.Message.Command(); ok {
			return fmt.Sprintf("command /%s from chat %d: %s", cmd.Name, u.Message.Chat.ID, cmd.Args)
		}
		return fmt.Sprintf("message from chat %d: %s", u.Message.Chat.ID, u.Message.Text)
	case u.EditedMessage != nil:
		return fmt.Sprintf("edited message in chat %d", u.EditedMessage.Chat.ID)
	case u.ChannelPost != nil:
		return fmt.Sprintf("channel post in chat %d", u.ChannelPost.Chat.ID)
	case u.InlineQuery != nil:
		return fmt.Sprintf("inline query %q", u.InlineQuery.Query)
	case u.CallbackQuery != nil:
		return fmt.Sprintf("callback query %q", u.CallbackQuery.Data)
	default:
		return "other update"
	}
}
