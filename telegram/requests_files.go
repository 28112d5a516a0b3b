package telegram

import "encoding/json"

// SendPhoto sends a photo.
type SendPhoto struct {
	Returns[Message]

	ChatID                   ChatID          `json:"chat_id"`
	Photo                    FileRef         `json:"photo"`
	Caption                  string          `json:"caption,omitempty"`
	ParseMode                ParseMode       `json:"parse_mode,omitempty"`
	CaptionEntities          []MessageEntity `json:"caption_entities,omitempty"`
	HasSpoiler               bool            `json:"has_spoiler,omitempty"`
	DisableNotification      bool            `json:"disable_notification,omitempty"`
	ReplyToMessageID         int             `json:"reply_to_message_id,omitempty"`
	AllowSendingWithoutReply bool            `json:"allow_sending_without_reply,omitempty"`
	ReplyMarkup              *ReplyMarkup    `json:"reply_markup,omitempty"`
}

func (SendPhoto) Method() string { return "sendPhoto" }

// Files implements Uploader.
func (r SendPhoto) Files() []FilePart {
	return CollectParts(Field("photo", r.Photo))
}

// SendDocument sends a general file.
type SendDocument struct {
	Returns[Message]

	ChatID              ChatID          `json:"chat_id"`
	Document            FileRef         `json:"document"`
	Thumbnail           *FileRef        `json:"thumbnail,omitempty"`
	Caption             string          `json:"caption,omitempty"`
	ParseMode           ParseMode       `json:"parse_mode,omitempty"`
	CaptionEntities     []MessageEntity `json:"caption_entities,omitempty"`
	DisableNotification bool            `json:"disable_notification,omitempty"`
	ReplyToMessageID    int             `json:"reply_to_message_id,omitempty"`
	ReplyMarkup         *ReplyMarkup    `json:"reply_markup,omitempty"`
}

func (SendDocument) Method() string { return "sendDocument" }

// Files implements Uploader.
func (r SendDocument) Files() []FilePart {
	return CollectParts(
		Field("document", r.Document),
		FileField{Name: "thumbnail", Ref: r.Thumbnail},
	)
}

// SendVideo sends an MPEG4 video.
type SendVideo struct {
	Returns[Message]

	ChatID              ChatID          `json:"chat_id"`
	Video               FileRef         `json:"video"`
	Thumbnail           *FileRef        `json:"thumbnail,omitempty"`
	Duration            int             `json:"duration,omitempty"`
	Width               int             `json:"width,omitempty"`
	Height              int             `json:"height,omitempty"`
	Caption             string          `json:"caption,omitempty"`
	ParseMode           ParseMode       `json:"parse_mode,omitempty"`
	CaptionEntities     []MessageEntity `json:"caption_entities,omitempty"`
	HasSpoiler          bool            `json:"has_spoiler,omitempty"`
	SupportsStreaming   bool            `json:"supports_streaming,omitempty"`
	DisableNotification bool            `json:"disable_notification,omitempty"`
	ReplyToMessageID    int             `json:"reply_to_message_id,omitempty"`
	ReplyMarkup         *ReplyMarkup    `json:"reply_markup,omitempty"`
}

func (SendVideo) Method() string { return "sendVideo" }

// Files implements Uploader.
func (r SendVideo) Files() []FilePart {
	return CollectParts(
		Field("video", r.Video),
		FileField{Name: "thumbnail", Ref: r.Thumbnail},
	)
}

// SendAnimation sends a GIF or an H.264/MPEG-4 AVC video without sound.
type SendAnimation struct {
	Returns[Message]

	ChatID              ChatID          `json:"chat_id"`
	Animation           FileRef         `json:"animation"`
	Thumbnail           *FileRef        `json:"thumbnail,omitempty"`
	Duration            int             `json:"duration,omitempty"`
	Width               int             `json:"width,omitempty"`
	Height              int             `json:"height,omitempty"`
	Caption             string          `json:"caption,omitempty"`
	ParseMode           ParseMode       `json:"parse_mode,omitempty"`
	CaptionEntities     []MessageEntity `json:"caption_entities,omitempty"`
	HasSpoiler          bool            `json:"has_spoiler,omitempty"`
	DisableNotification bool            `json:"disable_notification,omitempty"`
	ReplyToMessageID    int             `json:"reply_to_message_id,omitempty"`
	ReplyMarkup         *ReplyMarkup    `json:"reply_markup,omitempty"`
}

func (SendAnimation) Method() string { return "sendAnimation" }

// Files implements Uploader.
func (r SendAnimation) Files() []FilePart {
	return CollectParts(
		Field("animation", r.Animation),
		FileField{Name: "thumbnail", Ref: r.Thumbnail},
	)
}

// SendMediaGroup sends 2-10 photos, videos, documents or audios as an
// album. Items uploaded by bytes are attached as parts named "file0",
// "file1", ... in order and referenced from the media parameter as
// "attach://file<n>"; other items stay inline. The caller's file names are
// kept as the parts' file names.
type SendMediaGroup struct {
	Returns[[]Message]

	ChatID                   ChatID       `json:"chat_id"`
	Media                    []InputMedia `json:"media"`
	DisableNotification      bool         `json:"disable_notification,omitempty"`
	ReplyToMessageID         int          `json:"reply_to_message_id,omitempty"`
	AllowSendingWithoutReply bool         `json:"allow_sending_without_reply,omitempty"`
}

func (SendMediaGroup) Method() string { return "sendMediaGroup" }

// attached returns a copy of Media whose by-bytes files point at their
// parts, and those parts. Parts follow the order of Media, with an item's
// media before its thumbnail. r is not modified.
func (r SendMediaGroup) attached() ([]InputMedia, []FilePart) {
	if r.Media == nil {
		return nil, nil
	}
	media := make([]InputMedia, len(r.Media))
	var refs []*FileRef
	for i, item := range r.Media {
		media[i] = item.clone()
		refs = append(refs, media[i].refs()...)
	}
	return media, attachParts(refs...)
}

// Files implements Uploader.
func (r SendMediaGroup) Files() []FilePart {
	_, parts := r.attached()
	return parts
}

// Values implements Valuer.
func (r SendMediaGroup) Values() (map[string]json.RawMessage, error) {
	type plain SendMediaGroup
	body := plain(r)
	body.Media, _ = r.attached()
	return Values(body)
}

// GetFile prepares a file for download. The returned File.FilePath is
// valid for at least one hour and is passed to Bot.DownloadFile.
type GetFile struct {
	Returns[File]

	FileID string `json:"file_id"`
}

func (GetFile) Method() string { return "getFile" }
