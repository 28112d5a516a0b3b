package telegram

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// attachPrefix marks a string file field as a reference to a multipart part
// sent with the same request.
const attachPrefix = "attach://"

type fileKind uint8

const (
	fileNone fileKind = iota
	fileByID
	fileByURL
	fileByAttach
	fileByBytes
)

// FileRef is the value of a file-bearing request field. Exactly one of four
// variants is active:
//
//   - by-identifier: a file_id the API already knows ([FileID])
//   - by-url: a URL the API fetches itself ([FileURL])
//   - by-local-name: a reference to a part attached elsewhere in the same
//     request ([FileAttach])
//   - by-bytes: a name and a buffer uploaded with this call ([FileBytes])
//
// Only the by-bytes variant needs a multipart upload. The zero FileRef has no
// active variant.
type FileRef struct {
	kind  fileKind
	value string
	data  []byte
}

// FileID references a file already stored by the API.
func FileID(id string) FileRef {
	return FileRef{kind: fileByID, value: id}
}

// FileURL references a file the API downloads from url.
func FileURL(url string) FileRef {
	return FileRef{kind: fileByURL, value: url}
}

// FileAttach references a multipart part named name in the same request.
func FileAttach(name string) FileRef {
	return FileRef{kind: fileByAttach, value: name}
}

// FileBytes uploads data under name, which is sent as the part's file name.
// data is not copied and must not be modified while a call using it is in
// flight.
func FileBytes(name string, data []byte) FileRef {
	return FileRef{kind: fileByBytes, value: name, data: data}
}

// IsZero reports whether no variant is active.
func (f FileRef) IsZero() bool {
	return f.kind == fileNone
}

// NeedsUpload reports whether the file must be sent as a binary part.
// It is true only for the by-bytes variant.
func (f FileRef) NeedsUpload() bool {
	return f.kind == fileByBytes
}

// Name returns the file id, URL or local name of the active variant.
func (f FileRef) Name() string {
	return f.value
}

// Data returns the buffer of a by-bytes reference, or nil.
func (f FileRef) Data() []byte {
	if f.kind != fileByBytes {
		return nil
	}
	return f.data
}

// Part returns the binary part for a by-bytes reference under the multipart
// field name field. It returns false for every other variant, which travel
// inside the structured body.
func (f FileRef) Part(field string) (FilePart, bool) {
	if f.kind != fileByBytes {
		return FilePart{}, false
	}
	return FilePart{Field: field, FileName: f.value, Data: f.data}, true
}

// String describes the reference without its payload.
func (f FileRef) String() string {
	switch f.kind {
	case fileByID:
		return "file_id:" + f.value
	case fileByURL:
		return "url:" + f.value
	case fileByAttach:
		return attachPrefix + f.value
	case fileByBytes:
		return fmt.Sprintf("bytes:%s (%d bytes)", f.value, len(f.data))
	default:
		return "<none>"
	}
}

// MarshalJSON renders the active variant as the string the API expects.
// By-bytes references render as an attach reference to their own part.
func (f FileRef) MarshalJSON() ([]byte, error) {
	switch f.kind {
	case fileByID, fileByURL:
		return json.Marshal(f.value)
	case fileByAttach, fileByBytes:
		return json.Marshal(attachPrefix + f.value)
	default:
		return []byte(`""`), nil
	}
}

// UnmarshalJSON parses a file field. The wire shape is a single string, so
// the variant is chosen by the first matching rule, in order:
//
//  1. "attach://<name>" is by-local-name
//  2. "http://..." or "https://..." is by-url
//  3. any other non-empty string is by-identifier
//
// By-bytes is never produced by decoding.
func (f *FileRef) UnmarshalJSON(data []byte) error {
	r := gjson.ParseBytes(data)
	switch r.Type {
	case gjson.Null:
		*f = FileRef{}
		return nil
	case gjson.String:
	default:
		return fmt.Errorf("telegram: file reference must be a string, got %s", r.Type)
	}

	s := r.Str
	switch {
	case s == "":
		*f = FileRef{}
	case strings.HasPrefix(s, attachPrefix):
		*f = FileAttach(strings.TrimPrefix(s, attachPrefix))
	case strings.HasPrefix(s, "http://"), strings.HasPrefix(s, "https://"):
		*f = FileURL(s)
	default:
		*f = FileID(s)
	}
	return nil
}

// FilePart is a named binary part of a multipart request.
type FilePart struct {
	// Field is the multipart field name. It must not equal the name of a
	// text parameter, except for parts built by [CollectParts], which carry
	// a file parameter and replace its text value.
	Field string
	// FileName is sent as the part's filename.
	FileName string
	// Data is the file content.
	Data []byte

	param bool
}

// FileField pairs a request parameter name with its (possibly absent) file.
type FileField struct {
	Name string
	Ref  *FileRef
}

// Field is shorthand for a FileField over a required file parameter.
func Field(name string, ref FileRef) FileField {
	return FileField{Name: name, Ref: &ref}
}

// CollectParts resolves file parameters in order and returns the parts of
// those that need upload, or nil when none do. Request types use it to
// implement [Uploader].
func CollectParts(fields ...FileField) []FilePart {
	var parts []FilePart
	for _, fld := range fields {
		if fld.Ref == nil {
			continue
		}
		if part, ok := fld.Ref.Part(fld.Name); ok {
			part.param = true
			parts = append(parts, part)
		}
	}
	return parts
}

// attachParts uploads the by-bytes references among refs under local part
// names "file0", "file1", ... in order, and points each of them at its part
// with a by-local-name reference. The original names are kept as file
// names. Nested references (media group items) use it so that caller file
// names never clash with request parameters or with each other.
func attachParts(refs ...*FileRef) []FilePart {
	var parts []FilePart
	for _, ref := range refs {
		if ref == nil {
			continue
		}
		name := "file" + strconv.Itoa(len(parts))
		if part, ok := ref.Part(name); ok {
			parts = append(parts, part)
			*ref = FileAttach(name)
		}
	}
	return parts
}
