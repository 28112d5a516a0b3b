package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/petal-labs/tgbot/telegram"
)

func (a *App) newMeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the bot account",
		Long:  `Call getMe and print the bot's user account.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bot, err := a.bot()
			if err != nil {
				return err
			}

			me, err := telegram.Do(cmd.Context(), bot, telegram.GetMe{})
			if err != nil {
				return a.handleError(err)
			}

			if a.jsonOutput {
				return a.outputJSON(me)
			}
			fmt.Fprintf(a.stdout, "%s (@%s)\n", me.FirstName, me.Username)
			fmt.Fprintf(a.stdout, "  id:     %d\n", me.ID)
			fmt.Fprintf(a.stdout, "  is bot: %t\n", me.IsBot)
			return nil
		},
	}
}

func (a *App) newSendCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send <chat> <text>",
		Short: "Send a text message",
		Long: `Send a text message. <chat> is a numeric chat id or a channel
username such as @mychannel.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := parseMode(a.sendParseMode)
			if err != nil {
				return a.handleError(err)
			}

			bot, err := a.bot()
			if err != nil {
				return err
			}

			msg, err := telegram.Do(cmd.Context(), bot, telegram.SendMessage{
				ChatID:              telegram.ParseChatID(args[0]),
				Text:                args[1],
				ParseMode:           mode,
				DisableNotification: a.sendSilent,
			})
			if err != nil {
				return a.handleError(err)
			}
			return a.printMessage(msg)
		},
	}

	cmd.Flags().StringVar(&a.sendParseMode, "parse-mode", "", "text formatting: HTML, Markdown or MarkdownV2")
	cmd.Flags().BoolVar(&a.sendSilent, "silent", false, "send without a notification sound")
	return cmd
}

func (a *App) newPhotoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "photo <chat> <file|url|file_id>",
		Short: "Send a photo",
		Long: `Send a photo. A local file is uploaded, an http(s) URL is fetched by
Telegram, anything else is treated as the file_id of a photo Telegram
already stores.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			photo, err := fileRef(args[1])
			if err != nil {
				return a.handleError(err)
			}

			bot, err := a.bot()
			if err != nil {
				return err
			}

			msg, err := telegram.Do(cmd.Context(), bot, telegram.SendPhoto{
				ChatID:  telegram.ParseChatID(args[0]),
				Photo:   photo,
				Caption: a.photoCaption,
			})
			if err != nil {
				return a.handleError(err)
			}
			return a.printMessage(msg)
		},
	}

	cmd.Flags().StringVar(&a.photoCaption, "caption", "", "photo caption")
	return cmd
}

func (a *App) newAlbumCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "album <chat> <item>...",
		Short: "Send an album of photos, videos or documents",
		Long: `Send 2-10 items as one album. Each item is [type:]<file|url|file_id>
where type is photo (the default), video, audio or document. Local files
are uploaded; URLs and file ids are passed through.

  tgbot album @mychannel ./a.jpg video:https://example.com/b.mp4 photo:AgACAgIA`,
		Args: cobra.RangeArgs(3, 11),
		RunE: func(cmd *cobra.Command, args []string) error {
			media := make([]telegram.InputMedia, 0, len(args)-1)
			for _, arg := range args[1:] {
				item, err := albumItem(arg)
				if err != nil {
					return a.handleError(err)
				}
				media = append(media, item)
			}

			bot, err := a.bot()
			if err != nil {
				return err
			}

			msgs, err := telegram.Do(cmd.Context(), bot, telegram.SendMediaGroup{
				ChatID: telegram.ParseChatID(args[0]),
				Media:  media,
			})
			if err != nil {
				return a.handleError(err)
			}

			if a.jsonOutput {
				return a.outputJSON(msgs)
			}
			for _, msg := range msgs {
				fmt.Fprintf(a.stdout, "sent message %d to chat %d\n", msg.MessageID, msg.Chat.ID)
			}
			return nil
		},
	}
}

func (a *App) printMessage(msg telegram.Message) error {
	if a.jsonOutput {
		return a.outputJSON(msg)
	}
	fmt.Fprintf(a.stdout, "sent message %d to chat %d\n", msg.MessageID, msg.Chat.ID)
	return nil
}

func parseMode(s string) (telegram.ParseMode, error) {
	switch strings.ToLower(s) {
	case "":
		return "", nil
	case "html":
		return telegram.ParseModeHTML, nil
	case "markdown":
		return telegram.ParseModeMarkdown, nil
	case "markdownv2":
		return telegram.ParseModeMarkdownV2, nil
	default:
		return "", fmt.Errorf("unknown parse mode %q (use HTML, Markdown or MarkdownV2)", s)
	}
}

// fileRef turns a command-line argument into a file reference: a local
// file is uploaded by bytes, an http(s) URL is passed by URL and anything
// else is a file_id.
func fileRef(arg string) (telegram.FileRef, error) {
	if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
		return telegram.FileURL(arg), nil
	}

	info, err := os.Stat(arg)
	if err != nil || info.IsDir() {
		return telegram.FileID(arg), nil
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return telegram.FileRef{}, fmt.Errorf("failed to read %s: %w", arg, err)
	}
	return telegram.FileBytes(filepath.Base(arg), data), nil
}

func albumItem(arg string) (telegram.InputMedia, error) {
	kind, value := "photo", arg
	if k, v, ok := strings.Cut(arg, ":"); ok {
		switch k {
		case "photo", "video", "audio", "document":
			kind, value = k, v
		}
	}

	ref, err := fileRef(value)
	if err != nil {
		return telegram.InputMedia{}, err
	}

	switch kind {
	case "video":
		return telegram.VideoMedia(ref), nil
	case "audio":
		return telegram.AudioMedia(ref), nil
	case "document":
		return telegram.DocumentMedia(ref), nil
	default:
		return telegram.PhotoMedia(ref), nil
	}
}
