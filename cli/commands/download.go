package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/petal-labs/tgbot/telegram"
)

func (a *App) newDownloadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download <file_id>",
		Short: "Download a file stored by Telegram",
		Long: `Resolve <file_id> with getFile and download its contents. The file is
written to the path given with -o, or to the base name of the remote path
in the current directory. Use "-o -" to write to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bot, err := a.bot()
			if err != nil {
				return err
			}

			file, err := telegram.Do(cmd.Context(), bot, telegram.GetFile{FileID: args[0]})
			if err != nil {
				return a.handleError(err)
			}
			if file.FilePath == "" {
				return a.handleError(fmt.Errorf("file %s has no download path", args[0]))
			}

			if a.downloadOutput == "-" {
				_, err := bot.DownloadFileTo(cmd.Context(), file.FilePath, a.stdout)
				return a.handleError(err)
			}

			out := a.downloadOutput
			if out == "" {
				out = filepath.Base(file.FilePath)
			}
			f, err := os.Create(out)
			if err != nil {
				return a.handleError(err)
			}

			n, err := bot.DownloadFileTo(cmd.Context(), file.FilePath, f)
			if closeErr := f.Close(); err == nil {
				err = closeErr
			}
			if err != nil {
				os.Remove(out)
				return a.handleError(err)
			}

			if a.jsonOutput {
				return a.outputJSON(map[string]any{
					"file_id":   file.FileID,
					"file_path": file.FilePath,
					"output":    out,
					"bytes":     n,
				})
			}
			fmt.Fprintf(a.stdout, "wrote %d bytes to %s\n", n, out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&a.downloadOutput, "output", "o", "", "output path (- for stdout)")
	return cmd
}
