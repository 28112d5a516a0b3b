package core

import "strings"

// Secret wraps a bot token with protection against accidental logging.
// The underlying value is never exposed through String(), GoString(), or JSON marshaling.
//
// Use Expose() to access the actual value when building request URLs.
//
//	token := NewSecret("123456:ABC-DEF")
//	fmt.Println(token)        // prints: [REDACTED]
//	fmt.Printf("%#v", token)  // prints: core.Secret{[REDACTED]}
//	token.Expose()            // returns: "123456:ABC-DEF"
type Secret struct {
	value string
}

const redacted = "[REDACTED]"

// NewSecret creates a new Secret from a string value.
func NewSecret(value string) Secret {
	return Secret{value: value}
}

// String returns a redacted placeholder.
// Implements fmt.Stringer.
func (s Secret) String() string {
	return redacted
}

// GoString returns a redacted placeholder for %#v formatting.
// Implements fmt.GoStringer.
func (s Secret) GoString() string {
	return "core.Secret{" + redacted + "}"
}

// MarshalJSON returns a redacted JSON string.
func (s Secret) MarshalJSON() ([]byte, error) {
	return []byte(`"` + redacted + `"`), nil
}

// MarshalText returns a redacted text representation.
// Implements encoding.TextMarshaler, which also covers YAML.
func (s Secret) MarshalText() ([]byte, error) {
	return []byte(redacted), nil
}

// Expose returns the actual secret value.
//
// Bot API URLs embed the token in their path, so any string derived from a
// request URL must go through Redact before it is logged or returned.
func (s Secret) Expose() string {
	return s.value
}

// IsEmpty returns true if the secret value is empty.
func (s Secret) IsEmpty() bool {
	return s.value == ""
}

// Redact replaces every occurrence of the secret in text with a placeholder.
// Transport errors from net/http quote the full request URL, which carries
// the token.
func (s Secret) Redact(text string) string {
	if s.value == "" {
		return text
	}
	return strings.ReplaceAll(text, s.value, redacted)
}
