package telegram

import (
	"encoding/json"
)

// Request is the contract every dispatchable request type satisfies.
// R is the type of the result the method returns.
//
// Request types embed [Returns] to declare R, and are rendered to the wire by
// JSON-marshalling the request value itself, so optional fields must carry
// omitempty or omitzero tags. A request whose fields need binary upload also
// implements [Uploader]. A request that renders its body differently
// implements [Valuer].
type Request[R any] interface {
	// Method returns the Bot API method name, such as "sendMessage".
	Method() string

	result(R)
}

// Returns declares the result type of a request. It adds no fields to the
// encoded body.
type Returns[R any] struct{}

func (Returns[R]) result(R) {}

// Uploader is implemented by requests with file fields. Files returns the
// binary parts to upload, or nil when no field needs upload, in which case
// the request is sent as a JSON body.
type Uploader interface {
	Files() []FilePart
}

// Valuer is implemented by requests that render their structured body
// themselves instead of relying on [Values].
type Valuer interface {
	Values() (map[string]json.RawMessage, error)
}

// Values renders req as a flat map from parameter name to encoded value.
// It is the default rendering for requests that do not implement [Valuer].
// A request without any set field renders as nil.
func Values(req any) (map[string]json.RawMessage, error) {
	if v, ok := req.(Valuer); ok {
		return v.Values()
	}

	data, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	var values map[string]json.RawMessage
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, nil
	}
	return values, nil
}

// Files returns the binary parts of req, or nil when it has none.
func Files(req any) []FilePart {
	if u, ok := req.(Uploader); ok {
		return u.Files()
	}
	return nil
}
