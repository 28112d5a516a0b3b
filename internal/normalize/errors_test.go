package normalize

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petal-labs/tgbot/core"
)

func TestSentinelForCode(t *testing.T) {
	tests := []struct {
		code int
		want error
	}{
		{400, core.ErrBadRequest},
		{401, core.ErrUnauthorized},
		{403, core.ErrForbidden},
		{404, core.ErrNotFound},
		{409, core.ErrConflict},
		{429, core.ErrRateLimited},
		{500, core.ErrServer},
		{502, core.ErrServer},
		{0, core.ErrRemote},
		{420, core.ErrRemote},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SentinelForCode(tt.code), "code %d", tt.code)
	}
}

func TestRemoteError(t *testing.T) {
	err := RemoteError("sendMessage", Envelope{
		ErrorCode:   429,
		Description: "Too Many Requests: retry after 5",
		RetryAfter:  5,
	})

	apiErr, ok := core.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "sendMessage", apiErr.Method)
	assert.Equal(t, 429, apiErr.Code)
	assert.Equal(t, 5, apiErr.RetryAfter)
	assert.ErrorIs(t, err, core.ErrRateLimited)
	assert.ErrorIs(t, err, core.ErrRemote)
}

func TestRemoteErrorDefaultsDescription(t *testing.T) {
	apiErr, _ := core.AsAPIError(RemoteError("getMe", Envelope{ErrorCode: 401}))
	assert.Equal(t, "Unauthorized", apiErr.Description)

	apiErr, _ = core.AsAPIError(RemoteError("getMe", Envelope{}))
	assert.Equal(t, "unknown error", apiErr.Description)
	assert.Equal(t, 0, apiErr.Code)
	assert.ErrorIs(t, apiErr, core.ErrRemote)
}

func TestNetworkErrorRedacts(t *testing.T) {
	secret := core.NewSecret("42:TOKEN")
	err := NetworkError("getMe", errors.New(`Post "http://x/bot42:TOKEN/getMe": EOF`), secret.Redact)

	assert.ErrorIs(t, err, core.ErrNetwork)
	assert.NotContains(t, err.Error(), "42:TOKEN")
}

func TestLocalErrorKinds(t *testing.T) {
	assert.ErrorIs(t, EncodeError("sendPhoto", errors.New("boom")), core.ErrEncode)
	assert.ErrorIs(t, DecodeError("sendPhoto", errors.New("boom")), core.ErrDecode)
	assert.False(t, core.IsRemote(DecodeError("sendPhoto", errors.New("boom"))))
}

func TestStatusError(t *testing.T) {
	err := StatusError("download", 404)

	assert.ErrorIs(t, err, core.ErrNotFound)
	apiErr, _ := core.AsAPIError(err)
	assert.Equal(t, "Not Found", apiErr.Description)
}
