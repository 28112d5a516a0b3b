package telegram

// GetMe returns basic information about the bot.
type GetMe struct {
	Returns[User]
}

func (GetMe) Method() string { return "getMe" }

// UpdateType names a kind of update for AllowedUpdates filters.
type UpdateType = string

// GetUpdates receives incoming updates using long polling.
type GetUpdates struct {
	Returns[[]Update]

	// Offset is the identifier of the first update to return. Set it to one
	// more than the highest identifier seen to confirm earlier updates.
	Offset int `json:"offset,omitempty"`
	// Limit bounds the number of updates, 1-100. Defaults to 100.
	Limit int `json:"limit,omitempty"`
	// Timeout is the long polling timeout in seconds.
	Timeout        int          `json:"timeout,omitempty"`
	AllowedUpdates []UpdateType `json:"allowed_updates,omitempty"`
}

func (GetUpdates) Method() string { return "getUpdates" }

// SetWebhook registers a URL to receive updates.
type SetWebhook struct {
	Returns[bool]

	URL            string       `json:"url"`
	AllowedUpdates []UpdateType `json:"allowed_updates,omitempty"`
	SecretToken    string       `json:"secret_token,omitempty"`
}

func (SetWebhook) Method() string { return "setWebhook" }

// DeleteWebhook removes the webhook integration.
type DeleteWebhook struct {
	Returns[bool]

	DropPendingUpdates bool `json:"drop_pending_updates,omitempty"`
}

func (DeleteWebhook) Method() string { return "deleteWebhook" }

// SendMessage sends a text message.
type SendMessage struct {
	Returns[Message]

	ChatID                   ChatID          `json:"chat_id"`
	Text                     string          `json:"text"`
	ParseMode                ParseMode       `json:"parse_mode,omitempty"`
	Entities                 []MessageEntity `json:"entities,omitempty"`
	DisableWebPagePreview    bool            `json:"disable_web_page_preview,omitempty"`
	DisableNotification      bool            `json:"disable_notification,omitempty"`
	ReplyToMessageID         int             `json:"reply_to_message_id,omitempty"`
	AllowSendingWithoutReply bool            `json:"allow_sending_without_reply,omitempty"`
	ReplyMarkup              *ReplyMarkup    `json:"reply_markup,omitempty"`
}

func (SendMessage) Method() string { return "sendMessage" }

// SendChatAction shows a status in the chat for 5 seconds or until the
// next message from the bot.
type SendChatAction struct {
	Returns[bool]

	ChatID ChatID     `json:"chat_id"`
	Action ChatAction `json:"action"`
}

func (SendChatAction) Method() string { return "sendChatAction" }

// AnswerInlineQuery answers an inline query with up to 50 results.
type AnswerInlineQuery struct {
	Returns[bool]

	InlineQueryID     string              `json:"inline_query_id"`
	Results           []InlineQueryResult `json:"results"`
	CacheTime         int                 `json:"cache_time,omitempty"`
	IsPersonal        bool                `json:"is_personal,omitempty"`
	NextOffset        string              `json:"next_offset,omitempty"`
	SwitchPMText      string              `json:"switch_pm_text,omitempty"`
	SwitchPMParameter string              `json:"switch_pm_parameter,omitempty"`
}

func (AnswerInlineQuery) Method() string { return "answerInlineQuery" }

// AnswerCallbackQuery answers a callback query from an inline keyboard.
type AnswerCallbackQuery struct {
	Returns[bool]

	CallbackQueryID string `json:"callback_query_id"`
	Text            string `json:"text,omitempty"`
	ShowAlert       bool   `json:"show_alert,omitempty"`
	URL             string `json:"url,omitempty"`
	CacheTime       int    `json:"cache_time,omitempty"`
}

func (AnswerCallbackQuery) Method() string { return "answerCallbackQuery" }

// EditMessageText edits the text of a message. Set ChatID and MessageID
// for a message sent by the bot, or InlineMessageID for an inline message.
type EditMessageText struct {
	Returns[MessageOrBool]

	ChatID                ChatID                `json:"chat_id,omitzero"`
	MessageID             int                   `json:"message_id,omitempty"`
	InlineMessageID       string                `json:"inline_message_id,omitempty"`
	Text                  string                `json:"text"`
	ParseMode             ParseMode             `json:"parse_mode,omitempty"`
	Entities              []MessageEntity       `json:"entities,omitempty"`
	DisableWebPagePreview bool                  `json:"disable_web_page_preview,omitempty"`
	ReplyMarkup           *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

func (EditMessageText) Method() string { return "editMessageText" }

// EditMessageCaption edits the caption of a message.
type EditMessageCaption struct {
	Returns[MessageOrBool]

	ChatID          ChatID                `json:"chat_id,omitzero"`
	MessageID       int                   `json:"message_id,omitempty"`
	InlineMessageID string                `json:"inline_message_id,omitempty"`
	Caption         string                `json:"caption,omitempty"`
	ParseMode       ParseMode             `json:"parse_mode,omitempty"`
	CaptionEntities []MessageEntity       `json:"caption_entities,omitempty"`
	ReplyMarkup     *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

func (EditMessageCaption) Method() string { return "editMessageCaption" }

// EditMessageReplyMarkup edits only the inline keyboard of a message.
type EditMessageReplyMarkup struct {
	Returns[MessageOrBool]

	ChatID          ChatID                `json:"chat_id,omitzero"`
	MessageID       int                   `json:"message_id,omitempty"`
	InlineMessageID string                `json:"inline_message_id,omitempty"`
	ReplyMarkup     *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

func (EditMessageReplyMarkup) Method() string { return "editMessageReplyMarkup" }

// DeleteMessage deletes a message.
type DeleteMessage struct {
	Returns[bool]

	ChatID    ChatID `json:"chat_id"`
	MessageID int    `json:"message_id"`
}

func (DeleteMessage) Method() string { return "deleteMessage" }
