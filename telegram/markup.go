package telegram

import (
	"encoding/json"
	"errors"

	"github.com/tidwall/gjson"
)

// ReplyMarkup is the reply_markup parameter of send requests: one of an
// inline keyboard, a custom reply keyboard, a keyboard removal or a force
// reply. The wire shapes carry no type tag.
//
// Marshalling uses the first non-nil variant in field order. Decoding picks
// the variant by its required key, checked in the same order:
// inline_keyboard, keyboard, remove_keyboard, force_reply.
type ReplyMarkup struct {
	OfInlineKeyboard *InlineKeyboardMarkup
	OfReplyKeyboard  *ReplyKeyboardMarkup
	OfRemoveKeyboard *ReplyKeyboardRemove
	OfForceReply     *ForceReply
}

// InlineMarkup wraps an inline keyboard.
func InlineMarkup(rows ...[]InlineKeyboardButton) *ReplyMarkup {
	return &ReplyMarkup{OfInlineKeyboard: &InlineKeyboardMarkup{InlineKeyboard: rows}}
}

// KeyboardMarkup wraps a custom reply keyboard.
func KeyboardMarkup(kb ReplyKeyboardMarkup) *ReplyMarkup {
	return &ReplyMarkup{OfReplyKeyboard: &kb}
}

// RemoveKeyboardMarkup asks clients to hide the current custom keyboard.
func RemoveKeyboardMarkup(selective bool) *ReplyMarkup {
	return &ReplyMarkup{OfRemoveKeyboard: &ReplyKeyboardRemove{RemoveKeyboard: true, Selective: selective}}
}

// ForceReplyMarkup asks clients to show a reply interface.
func ForceReplyMarkup(selective bool) *ReplyMarkup {
	return &ReplyMarkup{OfForceReply: &ForceReply{ForceReply: true, Selective: selective}}
}

// IsZero reports whether no variant is set.
func (m ReplyMarkup) IsZero() bool {
	return m.OfInlineKeyboard == nil && m.OfReplyKeyboard == nil &&
		m.OfRemoveKeyboard == nil && m.OfForceReply == nil
}

var errEmptyUnion = errors.New("telegram: no variant set")

// MarshalJSON implements json.Marshaler.
func (m ReplyMarkup) MarshalJSON() ([]byte, error) {
	switch {
	case m.OfInlineKeyboard != nil:
		return json.Marshal(m.OfInlineKeyboard)
	case m.OfReplyKeyboard != nil:
		return json.Marshal(m.OfReplyKeyboard)
	case m.OfRemoveKeyboard != nil:
		return json.Marshal(m.OfRemoveKeyboard)
	case m.OfForceReply != nil:
		return json.Marshal(m.OfForceReply)
	}
	return nil, errEmptyUnion
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *ReplyMarkup) UnmarshalJSON(data []byte) error {
	*m = ReplyMarkup{}
	r := gjson.ParseBytes(data)
	if !r.IsObject() {
		return errors.New("telegram: reply markup must be an object")
	}

	switch {
	case r.Get("inline_keyboard").Exists():
		m.OfInlineKeyboard = new(InlineKeyboardMarkup)
		return json.Unmarshal(data, m.OfInlineKeyboard)
	case r.Get("keyboard").Exists():
		m.OfReplyKeyboard = new(ReplyKeyboardMarkup)
		return json.Unmarshal(data, m.OfReplyKeyboard)
	case r.Get("remove_keyboard").Exists():
		m.OfRemoveKeyboard = new(ReplyKeyboardRemove)
		return json.Unmarshal(data, m.OfRemoveKeyboard)
	case r.Get("force_reply").Exists():
		m.OfForceReply = new(ForceReply)
		return json.Unmarshal(data, m.OfForceReply)
	}
	return errors.New("telegram: unknown reply markup shape")
}

// ReplyKeyboardMarkup is a custom keyboard with reply options.
type ReplyKeyboardMarkup struct {
	Keyboard              [][]KeyboardButton `json:"keyboard"`
	ResizeKeyboard        bool               `json:"resize_keyboard,omitempty"`
	OneTimeKeyboard       bool               `json:"one_time_keyboard,omitempty"`
	InputFieldPlaceholder string             `json:"input_field_placeholder,omitempty"`
	Selective             bool               `json:"selective,omitempty"`
}

// KeyboardButton is one button of a reply keyboard.
type KeyboardButton struct {
	Text            string                  `json:"text"`
	RequestContact  bool                    `json:"request_contact,omitempty"`
	RequestLocation bool                    `json:"request_location,omitempty"`
	RequestPoll     *KeyboardButtonPollType `json:"request_poll,omitempty"`
}

// KeyboardButtonPollType restricts the poll a button lets the user create.
type KeyboardButtonPollType struct {
	Type PollType `json:"type,omitempty"`
}

// ReplyKeyboardRemove hides the current custom keyboard.
type ReplyKeyboardRemove struct {
	RemoveKeyboard bool `json:"remove_keyboard"`
	Selective      bool `json:"selective,omitempty"`
}

// ForceReply makes clients display a reply interface to the user.
type ForceReply struct {
	ForceReply            bool   `json:"force_reply"`
	InputFieldPlaceholder string `json:"input_field_placeholder,omitempty"`
	Selective             bool   `json:"selective,omitempty"`
}

// NewForceReply returns a ForceReply aimed at all users, or only at the
// users mentioned in the message and the sender of the replied-to message
// when selective is set.
func NewForceReply(selective bool) ForceReply {
	return ForceReply{ForceReply: true, Selective: selective}
}
