package telegram

import (
	"strings"
	"unicode/utf16"
)

// Command is a bot command parsed from a message.
type Command struct {
	// Name is the command without the leading slash.
	Name string
	// Username is the bot the command is addressed to in "/cmd@bot"
	// form, or "".
	Username string
	// Args is the remaining text after the command, trimmed.
	Args string
}

// Command returns the bot command the message starts with, if any.
// Entity offsets are counted in UTF-16 code units.
func (m *Message) Command() (Command, bool) {
	for _, e := range m.Entities {
		if e.Type != EntityBotCommand || e.Offset != 0 {
			continue
		}

		units := utf16.Encode([]rune(m.Text))
		if e.Length <= 1 || e.Length > len(units) {
			return Command{}, false
		}
		text := string(utf16.Decode(units[1:e.Length]))
		rest := string(utf16.Decode(units[e.Length:]))

		name, username, _ := strings.Cut(text, "@")
		return Command{
			Name:     name,
			Username: username,
			Args:     strings.TrimSpace(rest),
		}, true
	}
	return Command{}, false
}
