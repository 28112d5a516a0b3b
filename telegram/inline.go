package telegram

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// InlineQueryResult is one result of an answer to an inline query. ID and
// ReplyMarkup are common to all variants; exactly one variant is set.
//
// On the wire the common fields and the "type" tag sit next to the
// variant's own fields in a single flat object.
type InlineQueryResult struct {
	ID          string
	ReplyMarkup *InlineKeyboardMarkup

	OfArticle *InlineQueryResultArticle
	OfPhoto   *InlineQueryResultPhoto
	OfGif     *InlineQueryResultGif
	OfVideo   *InlineQueryResultVideo
}

// ArticleResult returns an article that sends text when chosen.
func ArticleResult(id, title, text string) InlineQueryResult {
	return InlineQueryResult{
		ID: id,
		OfArticle: &InlineQueryResultArticle{
			Title:               title,
			InputMessageContent: InputTextMessageContent{MessageText: text},
		},
	}
}

// PhotoResult returns a link to a JPEG photo.
func PhotoResult(id, photoURL, thumbnailURL string) InlineQueryResult {
	return InlineQueryResult{
		ID:      id,
		OfPhoto: &InlineQueryResultPhoto{PhotoURL: photoURL, ThumbnailURL: thumbnailURL},
	}
}

// GifResult returns a link to an animated GIF.
func GifResult(id, gifURL, thumbnailURL string) InlineQueryResult {
	return InlineQueryResult{
		ID:    id,
		OfGif: &InlineQueryResultGif{GifURL: gifURL, ThumbnailURL: thumbnailURL},
	}
}

// VideoResult returns a link to a video player or file.
func VideoResult(id, videoURL, mimeType, thumbnailURL, title string) InlineQueryResult {
	return InlineQueryResult{
		ID: id,
		OfVideo: &InlineQueryResultVideo{
			VideoURL:     videoURL,
			MimeType:     mimeType,
			ThumbnailURL: thumbnailURL,
			Title:        title,
		},
	}
}

// Type returns the wire type of the active variant, or "" when none is set.
func (r InlineQueryResult) Type() string {
	switch {
	case r.OfArticle != nil:
		return "article"
	case r.OfPhoto != nil:
		return "photo"
	case r.OfGif != nil:
		return "gif"
	case r.OfVideo != nil:
		return "video"
	}
	return ""
}

// MarshalJSON implements json.Marshaler.
func (r InlineQueryResult) MarshalJSON() ([]byte, error) {
	var variant any
	switch {
	case r.OfArticle != nil:
		variant = r.OfArticle
	case r.OfPhoto != nil:
		variant = r.OfPhoto
	case r.OfGif != nil:
		variant = r.OfGif
	case r.OfVideo != nil:
		variant = r.OfVideo
	default:
		return nil, errEmptyUnion
	}

	data, err := json.Marshal(variant)
	if err != nil {
		return nil, err
	}
	if data, err = sjson.SetBytes(data, "type", r.Type()); err != nil {
		return nil, err
	}
	if data, err = sjson.SetBytes(data, "id", r.ID); err != nil {
		return nil, err
	}
	if r.ReplyMarkup != nil {
		markup, err := json.Marshal(r.ReplyMarkup)
		if err != nil {
			return nil, err
		}
		if data, err = sjson.SetRawBytes(data, "reply_markup", markup); err != nil {
			return nil, err
		}
	}
	return data, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *InlineQueryResult) UnmarshalJSON(data []byte) error {
	*r = InlineQueryResult{}
	obj := gjson.ParseBytes(data)
	if !obj.IsObject() {
		return errors.New("telegram: inline query result must be an object")
	}

	r.ID = obj.Get("id").String()
	if markup := obj.Get("reply_markup"); markup.Exists() {
		r.ReplyMarkup = new(InlineKeyboardMarkup)
		if err := json.Unmarshal([]byte(markup.Raw), r.ReplyMarkup); err != nil {
			return err
		}
	}

	switch typ := obj.Get("type").String(); typ {
	case "article":
		r.OfArticle = new(InlineQueryResultArticle)
		return json.Unmarshal(data, r.OfArticle)
	case "photo":
		r.OfPhoto = new(InlineQueryResultPhoto)
		return json.Unmarshal(data, r.OfPhoto)
	case "gif":
		r.OfGif = new(InlineQueryResultGif)
		return json.Unmarshal(data, r.OfGif)
	case "video":
		r.OfVideo = new(InlineQueryResultVideo)
		return json.Unmarshal(data, r.OfVideo)
	default:
		return fmt.Errorf("telegram: unknown inline query result type %q", typ)
	}
}

// InputTextMessageContent is the text message sent when a result is chosen.
type InputTextMessageContent struct {
	MessageText           string          `json:"message_text"`
	ParseMode             ParseMode       `json:"parse_mode,omitempty"`
	Entities              []MessageEntity `json:"entities,omitempty"`
	DisableWebPagePreview bool            `json:"disable_web_page_preview,omitempty"`
}

// InlineQueryResultArticle is a link to an article or web page.
type InlineQueryResultArticle struct {
	Title               string                  `json:"title"`
	InputMessageContent InputTextMessageContent `json:"input_message_content"`
	URL                 string                  `json:"url,omitempty"`
	HideURL             bool                    `json:"hide_url,omitempty"`
	Description         string                  `json:"description,omitempty"`
	ThumbnailURL        string                  `json:"thumbnail_url,omitempty"`
	ThumbnailWidth      int                     `json:"thumbnail_width,omitempty"`
	ThumbnailHeight     int                     `json:"thumbnail_height,omitempty"`
}

// InlineQueryResultPhoto is a link to a photo.
type InlineQueryResultPhoto struct {
	PhotoURL        string          `json:"photo_url"`
	ThumbnailURL    string          `json:"thumbnail_url"`
	PhotoWidth      int             `json:"photo_width,omitempty"`
	PhotoHeight     int             `json:"photo_height,omitempty"`
	Title           string          `json:"title,omitempty"`
	Description     string          `json:"description,omitempty"`
	Caption         string          `json:"caption,omitempty"`
	ParseMode       ParseMode       `json:"parse_mode,omitempty"`
	CaptionEntities []MessageEntity `json:"caption_entities,omitempty"`
}

// InlineQueryResultGif is a link to an animated GIF file.
type InlineQueryResultGif struct {
	GifURL          string          `json:"gif_url"`
	GifWidth        int             `json:"gif_width,omitempty"`
	GifHeight       int             `json:"gif_height,omitempty"`
	GifDuration     int             `json:"gif_duration,omitempty"`
	ThumbnailURL    string          `json:"thumbnail_url"`
	Title           string          `json:"title,omitempty"`
	Caption         string          `json:"caption,omitempty"`
	ParseMode       ParseMode       `json:"parse_mode,omitempty"`
	CaptionEntities []MessageEntity `json:"caption_entities,omitempty"`
}

// InlineQueryResultVideo is a link to a page with an embedded video player
// or to a video file.
type InlineQueryResultVideo struct {
	VideoURL        string          `json:"video_url"`
	MimeType        string          `json:"mime_type"`
	ThumbnailURL    string          `json:"thumbnail_url"`
	Title           string          `json:"title"`
	Caption         string          `json:"caption,omitempty"`
	ParseMode       ParseMode       `json:"parse_mode,omitempty"`
	CaptionEntities []MessageEntity `json:"caption_entities,omitempty"`
	VideoWidth      int             `json:"video_width,omitempty"`
	VideoHeight     int             `json:"video_height,omitempty"`
	VideoDuration   int             `json:"video_duration,omitempty"`
	Description     string          `json:"description,omitempty"`
}
