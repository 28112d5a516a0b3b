package telegram

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// InputMedia is one item of a media group. Exactly one variant is set.
//
// Unlike ReplyMarkup the variants are tagged: each marshals with a "type"
// field and decoding dispatches on it.
type InputMedia struct {
	OfPhoto     *InputMediaPhoto
	OfVideo     *InputMediaVideo
	OfAnimation *InputMediaAnimation
	OfAudio     *InputMediaAudio
	OfDocument  *InputMediaDocument
}

// PhotoMedia returns a photo item for media.
func PhotoMedia(media FileRef) InputMedia {
	return InputMedia{OfPhoto: &InputMediaPhoto{Media: media}}
}

// VideoMedia returns a video item for media.
func VideoMedia(media FileRef) InputMedia {
	return InputMedia{OfVideo: &InputMediaVideo{Media: media}}
}

// AnimationMedia returns an animation item for media.
func AnimationMedia(media FileRef) InputMedia {
	return InputMedia{OfAnimation: &InputMediaAnimation{Media: media}}
}

// AudioMedia returns an audio item for media.
func AudioMedia(media FileRef) InputMedia {
	return InputMedia{OfAudio: &InputMediaAudio{Media: media}}
}

// DocumentMedia returns a document item for media.
func DocumentMedia(media FileRef) InputMedia {
	return InputMedia{OfDocument: &InputMediaDocument{Media: media}}
}

// Type returns the wire type of the active variant, or "" when none is set.
func (m InputMedia) Type() string {
	switch {
	case m.OfPhoto != nil:
		return "photo"
	case m.OfVideo != nil:
		return "video"
	case m.OfAnimation != nil:
		return "animation"
	case m.OfAudio != nil:
		return "audio"
	case m.OfDocument != nil:
		return "document"
	}
	return ""
}

// Media returns the file of the active variant.
func (m InputMedia) Media() FileRef {
	switch {
	case m.OfPhoto != nil:
		return m.OfPhoto.Media
	case m.OfVideo != nil:
		return m.OfVideo.Media
	case m.OfAnimation != nil:
		return m.OfAnimation.Media
	case m.OfAudio != nil:
		return m.OfAudio.Media
	case m.OfDocument != nil:
		return m.OfDocument.Media
	}
	return FileRef{}
}

// WithMedia returns a copy of m whose file is replaced by media. m itself
// is not modified.
func (m InputMedia) WithMedia(media FileRef) InputMedia {
	switch {
	case m.OfPhoto != nil:
		v := *m.OfPhoto
		v.Media = media
		return InputMedia{OfPhoto: &v}
	case m.OfVideo != nil:
		v := *m.OfVideo
		v.Media = media
		return InputMedia{OfVideo: &v}
	case m.OfAnimation != nil:
		v := *m.OfAnimation
		v.Media = media
		return InputMedia{OfAnimation: &v}
	case m.OfAudio != nil:
		v := *m.OfAudio
		v.Media = media
		return InputMedia{OfAudio: &v}
	case m.OfDocument != nil:
		v := *m.OfDocument
		v.Media = media
		return InputMedia{OfDocument: &v}
	}
	return m
}

// Thumbnail returns the thumbnail of the active variant, or nil.
func (m InputMedia) Thumbnail() *FileRef {
	switch {
	case m.OfVideo != nil:
		return m.OfVideo.Thumbnail
	case m.OfAnimation != nil:
		return m.OfAnimation.Thumbnail
	case m.OfAudio != nil:
		return m.OfAudio.Thumbnail
	case m.OfDocument != nil:
		return m.OfDocument.Thumbnail
	}
	return nil
}

// clone returns a copy of m that shares no file references with it.
func (m InputMedia) clone() InputMedia {
	thumb := func(t *FileRef) *FileRef {
		if t == nil {
			return nil
		}
		c := *t
		return &c
	}
	switch {
	case m.OfPhoto != nil:
		v := *m.OfPhoto
		return InputMedia{OfPhoto: &v}
	case m.OfVideo != nil:
		v := *m.OfVideo
		v.Thumbnail = thumb(v.Thumbnail)
		return InputMedia{OfVideo: &v}
	case m.OfAnimation != nil:
		v := *m.OfAnimation
		v.Thumbnail = thumb(v.Thumbnail)
		return InputMedia{OfAnimation: &v}
	case m.OfAudio != nil:
		v := *m.OfAudio
		v.Thumbnail = thumb(v.Thumbnail)
		return InputMedia{OfAudio: &v}
	case m.OfDocument != nil:
		v := *m.OfDocument
		v.Thumbnail = thumb(v.Thumbnail)
		return InputMedia{OfDocument: &v}
	}
	return m
}

// refs returns pointers to the file references of m, media first. Writing
// through them modifies m's variant.
func (m InputMedia) refs() []*FileRef {
	switch {
	case m.OfPhoto != nil:
		return []*FileRef{&m.OfPhoto.Media}
	case m.OfVideo != nil:
		return []*FileRef{&m.OfVideo.Media, m.OfVideo.Thumbnail}
	case m.OfAnimation != nil:
		return []*FileRef{&m.OfAnimation.Media, m.OfAnimation.Thumbnail}
	case m.OfAudio != nil:
		return []*FileRef{&m.OfAudio.Media, m.OfAudio.Thumbnail}
	case m.OfDocument != nil:
		return []*FileRef{&m.OfDocument.Media, m.OfDocument.Thumbnail}
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (m InputMedia) MarshalJSON() ([]byte, error) {
	switch {
	case m.OfPhoto != nil:
		return json.Marshal(m.OfPhoto)
	case m.OfVideo != nil:
		return json.Marshal(m.OfVideo)
	case m.OfAnimation != nil:
		return json.Marshal(m.OfAnimation)
	case m.OfAudio != nil:
		return json.Marshal(m.OfAudio)
	case m.OfDocument != nil:
		return json.Marshal(m.OfDocument)
	}
	return nil, errEmptyUnion
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *InputMedia) UnmarshalJSON(data []byte) error {
	*m = InputMedia{}
	typ := gjson.GetBytes(data, "type")
	if !typ.Exists() {
		return errors.New("telegram: input media without type")
	}

	switch typ.String() {
	case "photo":
		m.OfPhoto = new(InputMediaPhoto)
		return json.Unmarshal(data, m.OfPhoto)
	case "video":
		m.OfVideo = new(InputMediaVideo)
		return json.Unmarshal(data, m.OfVideo)
	case "animation":
		m.OfAnimation = new(InputMediaAnimation)
		return json.Unmarshal(data, m.OfAnimation)
	case "audio":
		m.OfAudio = new(InputMediaAudio)
		return json.Unmarshal(data, m.OfAudio)
	case "document":
		m.OfDocument = new(InputMediaDocument)
		return json.Unmarshal(data, m.OfDocument)
	}
	return fmt.Errorf("telegram: unknown input media type %q", typ.String())
}

// InputMediaPhoto is a photo to be sent.
type InputMediaPhoto struct {
	Media           FileRef         `json:"media"`
	Caption         string          `json:"caption,omitempty"`
	ParseMode       ParseMode       `json:"parse_mode,omitempty"`
	CaptionEntities []MessageEntity `json:"caption_entities,omitempty"`
	HasSpoiler      bool            `json:"has_spoiler,omitempty"`
}

// MarshalJSON adds the "photo" type tag.
func (m InputMediaPhoto) MarshalJSON() ([]byte, error) {
	type shadow InputMediaPhoto
	return json.Marshal(struct {
		Type string `json:"type"`
		shadow
	}{"photo", shadow(m)})
}

// InputMediaVideo is a video to be sent. Its thumbnail may be uploaded in
// the same request.
type InputMediaVideo struct {
	Media             FileRef         `json:"media"`
	Thumbnail         *FileRef        `json:"thumbnail,omitempty"`
	Caption           string          `json:"caption,omitempty"`
	ParseMode         ParseMode       `json:"parse_mode,omitempty"`
	CaptionEntities   []MessageEntity `json:"caption_entities,omitempty"`
	Width             int             `json:"width,omitempty"`
	Height            int             `json:"height,omitempty"`
	Duration          int             `json:"duration,omitempty"`
	SupportsStreaming bool            `json:"supports_streaming,omitempty"`
	HasSpoiler        bool            `json:"has_spoiler,omitempty"`
}

// MarshalJSON adds the "video" type tag.
func (m InputMediaVideo) MarshalJSON() ([]byte, error) {
	type shadow InputMediaVideo
	return json.Marshal(struct {
		Type string `json:"type"`
		shadow
	}{"video", shadow(m)})
}

// InputMediaAnimation is an animation to be sent.
type InputMediaAnimation struct {
	Media           FileRef         `json:"media"`
	Thumbnail       *FileRef        `json:"thumbnail,omitempty"`
	Caption         string          `json:"caption,omitempty"`
	ParseMode       ParseMode       `json:"parse_mode,omitempty"`
	CaptionEntities []MessageEntity `json:"caption_entities,omitempty"`
	Width           int             `json:"width,omitempty"`
	Height          int             `json:"height,omitempty"`
	Duration        int             `json:"duration,omitempty"`
	HasSpoiler      bool            `json:"has_spoiler,omitempty"`
}

// MarshalJSON adds the "animation" type tag.
func (m InputMediaAnimation) MarshalJSON() ([]byte, error) {
	type shadow InputMediaAnimation
	return json.Marshal(struct {
		Type string `json:"type"`
		shadow
	}{"animation", shadow(m)})
}

// InputMediaAudio is an audio file to be sent.
type InputMediaAudio struct {
	Media           FileRef         `json:"media"`
	Thumbnail       *FileRef        `json:"thumbnail,omitempty"`
	Caption         string          `json:"caption,omitempty"`
	ParseMode       ParseMode       `json:"parse_mode,omitempty"`
	CaptionEntities []MessageEntity `json:"caption_entities,omitempty"`
	Duration        int             `json:"duration,omitempty"`
	Performer       string          `json:"performer,omitempty"`
	Title           string          `json:"title,omitempty"`
}

// MarshalJSON adds the "audio" type tag.
func (m InputMediaAudio) MarshalJSON() ([]byte, error) {
	type shadow InputMediaAudio
	return json.Marshal(struct {
		Type string `json:"type"`
		shadow
	}{"audio", shadow(m)})
}

// InputMediaDocument is a general file to be sent.
type InputMediaDocument struct {
	Media                       FileRef         `json:"media"`
	Thumbnail                   *FileRef        `json:"thumbnail,omitempty"`
	Caption                     string          `json:"caption,omitempty"`
	ParseMode                   ParseMode       `json:"parse_mode,omitempty"`
	CaptionEntities             []MessageEntity `json:"caption_entities,omitempty"`
	DisableContentTypeDetection bool            `json:"disable_content_type_detection,omitempty"`
}

// MarshalJSON adds the "document" type tag.
func (m InputMediaDocument) MarshalJSON() ([]byte, error) {
	type shadow InputMediaDocument
	return json.Marshal(struct {
		Type string `json:"type"`
		shadow
	}{"document", shadow(m)})
}
