package telegram

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
)

// ChatID identifies the target of a request: a numeric chat identifier or
// the @username of a public channel or supergroup.
//
// It marshals as a JSON number or a JSON string. Decoding tries the numeric
// shape first and the text shape second; a numeric string such as
// "-100123" is therefore a username, because only its shape is inspected.
//
// The zero ChatID is the numeric identifier 0.
type ChatID struct {
	id       int64
	username string
}

// NewChatID returns a ChatID for a numeric chat identifier.
func NewChatID(id int64) ChatID {
	return ChatID{id: id}
}

// ChannelUsername returns a ChatID for a channel handle such as "@channel".
func ChannelUsername(username string) ChatID {
	return ChatID{username: username}
}

// ID returns the numeric identifier and whether it is the active variant.
func (c ChatID) ID() (int64, bool) {
	return c.id, c.username == ""
}

// Username returns the handle and whether it is the active variant.
func (c ChatID) Username() (string, bool) {
	return c.username, c.username != ""
}

// IsZero reports whether c is the zero ChatID. Optional chat_id parameters
// use it with the omitzero tag.
func (c ChatID) IsZero() bool {
	return c.id == 0 && c.username == ""
}

// String formats the active variant.
func (c ChatID) String() string {
	if c.username != "" {
		return c.username
	}
	return strconv.FormatInt(c.id, 10)
}

// MarshalJSON implements json.Marshaler.
func (c ChatID) MarshalJSON() ([]byte, error) {
	if c.username != "" {
		return json.Marshal(c.username)
	}
	return []byte(strconv.FormatInt(c.id, 10)), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *ChatID) UnmarshalJSON(data []byte) error {
	r := gjson.ParseBytes(data)
	switch r.Type {
	case gjson.Number:
		id, err := strconv.ParseInt(r.Raw, 10, 64)
		if err != nil {
			return fmt.Errorf("telegram: chat id %s: %w", r.Raw, err)
		}
		*c = NewChatID(id)
	case gjson.String:
		*c = ChannelUsername(r.Str)
	default:
		return fmt.Errorf("telegram: chat id must be a number or a string, got %s", r.Type)
	}
	return nil
}

// ParseChatID interprets command-line style input: an integer becomes a
// numeric identifier, anything else a username.
func ParseChatID(s string) ChatID {
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return NewChatID(id)
	}
	return ChannelUsername(s)
}
