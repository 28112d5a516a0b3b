package telegram

// GetChat returns up-to-date information about a chat.
type GetChat struct {
	Returns[Chat]

	ChatID ChatID `json:"chat_id"`
}

func (GetChat) Method() string { return "getChat" }

// GetChatAdministrators lists the administrators of a chat, bots excluded.
type GetChatAdministrators struct {
	Returns[[]ChatMember]

	ChatID ChatID `json:"chat_id"`
}

func (GetChatAdministrators) Method() string { return "getChatAdministrators" }

// GetChatMember returns information about one member of a chat.
type GetChatMember struct {
	Returns[ChatMember]

	ChatID ChatID `json:"chat_id"`
	UserID int64  `json:"user_id"`
}

func (GetChatMember) Method() string { return "getChatMember" }

// SetMyDefaultAdministratorRights changes the rights requested when the bot
// is added to groups, or to channels when ForChannels is set.
type SetMyDefaultAdministratorRights struct {
	Returns[bool]

	Rights      *ChatAdministratorRights `json:"rights,omitempty"`
	ForChannels bool                     `json:"for_channels,omitempty"`
}

func (SetMyDefaultAdministratorRights) Method() string { return "setMyDefaultAdministratorRights" }

// GetMyDefaultAdministratorRights returns the current default rights.
type GetMyDefaultAdministratorRights struct {
	Returns[ChatAdministratorRights]

	ForChannels bool `json:"for_channels,omitempty"`
}

func (GetMyDefaultAdministratorRights) Method() string { return "getMyDefaultAdministratorRights" }
