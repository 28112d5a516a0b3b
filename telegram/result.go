package telegram

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// MessageOrBool is the result of edit methods: the edited Message when the
// message was sent by the bot, or true when it was an inline message.
//
// The shapes are tried in a fixed order: a JSON object decodes as a
// Message, then a JSON boolean decodes as Bool. Anything else is an error.
type MessageOrBool struct {
	Message *Message
	Bool    bool
}

// MarshalJSON implements json.Marshaler.
func (r MessageOrBool) MarshalJSON() ([]byte, error) {
	if r.Message != nil {
		return json.Marshal(r.Message)
	}
	return json.Marshal(r.Bool)
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *MessageOrBool) UnmarshalJSON(data []byte) error {
	*r = MessageOrBool{}
	v := gjson.ParseBytes(data)
	switch {
	case v.IsObject():
		r.Message = new(Message)
		return json.Unmarshal(data, r.Message)
	case v.IsBool():
		r.Bool = v.Bool()
		return nil
	}
	return fmt.Errorf("telegram: expected message or boolean, got %s", v.Type)
}
