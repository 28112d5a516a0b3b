package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/petal-labs/tgbot/internal/normalize"
)

const downloadMethod = "download"

// maxErrorBody bounds how much of a failed download response is read.
const maxErrorBody = 4 << 10

// DownloadFile fetches the content of a file by its path from File.FilePath.
// The response body is returned as is, without envelope parsing.
func (b *Bot) DownloadFile(ctx context.Context, path string) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := b.DownloadFileTo(ctx, path, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DownloadFileTo streams the content of a file into w and returns the
// number of bytes written.
func (b *Bot) DownloadFileTo(ctx context.Context, path string, w io.Writer) (n int64, err error) {
	ctx, c := b.startCall(ctx, downloadMethod, 0)
	defer func() { c.finish(ctx, err) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.fileURL(path), nil)
	if err != nil {
		return 0, normalize.EncodeError(downloadMethod, errors.New(b.config.Token.Redact(err.Error())))
	}
	for key, vals := range b.config.Headers {
		for _, v := range vals {
			req.Header.Add(key, v)
		}
	}

	resp, err := b.config.HTTPClient.Do(req)
	if err != nil {
		return 0, normalize.NetworkError(downloadMethod, err, b.config.Token.Redact)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, downloadError(resp)
	}

	n, err = io.Copy(w, resp.Body)
	if err != nil {
		return n, normalize.NetworkError(downloadMethod, err, b.config.Token.Redact)
	}
	return n, nil
}

// downloadError builds the error for a failed download. The server may
// answer with an envelope carrying a description; otherwise only the
// status is known.
func downloadError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if isEnvelope(body) {
		var env Response[json.RawMessage]
		if json.Unmarshal(body, &env) == nil && !env.OK {
			if env.ErrorCode == 0 {
				env.ErrorCode = resp.StatusCode
			}
			_, err := env.Unwrap(downloadMethod)
			return err
		}
	}
	return normalize.StatusError(downloadMethod, resp.StatusCode)
}
