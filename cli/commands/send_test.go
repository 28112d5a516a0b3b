package commands

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/petal-labs/tgbot/telegram"
)

const messageResult = `{"message_id":7,"date":1700000000,"chat":{"id":42,"type":"private"}}`

func TestSendCommand(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bot"+testToken+"/sendMessage" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		body := decodeBody(t, r)
		if body["chat_id"] != float64(42) {
			t.Errorf("chat_id = %v", body["chat_id"])
		}
		if body["text"] != "*hello*" {
			t.Errorf("text = %v", body["text"])
		}
		if body["parse_mode"] != "MarkdownV2" {
			t.Errorf("parse_mode = %v", body["parse_mode"])
		}
		if body["disable_notification"] != true {
			t.Errorf("disable_notification = %v", body["disable_notification"])
		}
		reply(w, messageResult)
	})

	if err := h.run("send", "--parse-mode", "markdownv2", "--silent", "42", "*hello*"); err != nil {
		t.Fatalf("send error = %v", err)
	}
	if got := h.stdout.String(); got != "sent message 7 to chat 42\n" {
		t.Errorf("stdout = %q", got)
	}
}

func TestSendChannelUsername(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		if body["chat_id"] != "@mychannel" {
			t.Errorf("chat_id = %v", body["chat_id"])
		}
		if _, ok := body["parse_mode"]; ok {
			t.Error("parse_mode should be omitted")
		}
		reply(w, messageResult)
	})

	if err := h.run("send", "@mychannel", "news"); err != nil {
		t.Fatalf("send error = %v", err)
	}
}

func TestSendInvalidParseMode(t *testing.T) {
	requests := 0
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
	})

	err := h.run("send", "--parse-mode", "bbcode", "42", "hi")
	if code := exitCodeOf(t, err); code != ExitValidation {
		t.Errorf("exit code = %d, want %d", code, ExitValidation)
	}
	if requests != 0 {
		t.Errorf("%d requests sent", requests)
	}
}

func TestPhotoLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cat.jpg")
	if err := os.WriteFile(path, []byte("\xff\xd8\xffjpeg"), 0600); err != nil {
		t.Fatal(err)
	}

	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bot"+testToken+"/sendPhoto" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm() error = %v", err)
			return
		}
		if got := r.FormValue("chat_id"); got != "42" {
			t.Errorf("chat_id = %q", got)
		}
		if got := r.FormValue("caption"); got != "meow" {
			t.Errorf("caption = %q", got)
		}
		if _, ok := r.MultipartForm.Value["photo"]; ok {
			t.Error("photo sent as text field as well as file")
		}

		files := r.MultipartForm.File["photo"]
		if len(files) != 1 {
			t.Errorf("photo parts = %d", len(files))
			return
		}
		if files[0].Filename != "cat.jpg" {
			t.Errorf("filename = %q", files[0].Filename)
		}
		f, _ := files[0].Open()
		data, _ := io.ReadAll(f)
		if string(data) != "\xff\xd8\xffjpeg" {
			t.Errorf("content = %q", data)
		}
		reply(w, messageResult)
	})

	if err := h.run("photo", "--caption", "meow", "42", path); err != nil {
		t.Fatalf("photo error = %v", err)
	}
}

func TestPhotoRemoteReferences(t *testing.T) {
	tests := []struct {
		name string
		arg  string
	}{
		{"url", "https://example.com/cat.jpg"},
		{"file id", "AgACAgIAAxkBAAIBZ2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
				if ct := r.Header.Get("Content-Type"); ct != "application/json" {
					t.Errorf("Content-Type = %q, want a JSON body", ct)
				}
				body := decodeBody(t, r)
				if body["photo"] != tt.arg {
					t.Errorf("photo = %v", body["photo"])
				}
				reply(w, messageResult)
			})

			if err := h.run("photo", "42", tt.arg); err != nil {
				t.Fatalf("photo error = %v", err)
			}
		})
	}
}

func TestAlbumCommand(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.jpg", "b.mp4"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0600); err != nil {
			t.Fatal(err)
		}
	}

	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bot"+testToken+"/sendMediaGroup" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm() error = %v", err)
			return
		}

		media := r.FormValue("media")
		for _, want := range []string{
			`{"type":"photo","media":"attach://file0"}`,
			`{"type":"video","media":"attach://file1"}`,
			`{"type":"document","media":"https://example.com/c.pdf"}`,
		} {
			if !strings.Contains(media, want) {
				t.Errorf("media = %s, missing %s", media, want)
			}
		}
		for field, filename := range map[string]string{"file0": "a.jpg", "file1": "b.mp4"} {
			files := r.MultipartForm.File[field]
			if len(files) != 1 {
				t.Errorf("part %s missing", field)
				continue
			}
			if files[0].Filename != filename {
				t.Errorf("part %s filename = %q, want %q", field, files[0].Filename, filename)
			}
		}
		reply(w, `[`+messageResult+`,{"message_id":8,"date":1700000000,"chat":{"id":42,"type":"private"}}]`)
	})

	err := h.run("album", "42",
		filepath.Join(dir, "a.jpg"),
		"video:"+filepath.Join(dir, "b.mp4"),
		"document:https://example.com/c.pdf",
	)
	if err != nil {
		t.Fatalf("album error = %v", err)
	}
	if got := h.stdout.String(); got != "sent message 7 to chat 42\nsent message 8 to chat 42\n" {
		t.Errorf("stdout = %q", got)
	}
}

func TestAlbumSameFileNames(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, sub := range []string{"a", "b"} {
		path := filepath.Join(dir, sub, "x.jpg")
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(sub), 0600); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, path)
	}

	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm() error = %v", err)
			return
		}
		for field, content := range map[string]string{"file0": "a", "file1": "b"} {
			files := r.MultipartForm.File[field]
			if len(files) != 1 {
				t.Errorf("part %s missing", field)
				continue
			}
			f, _ := files[0].Open()
			data, _ := io.ReadAll(f)
			if string(data) != content || files[0].Filename != "x.jpg" {
				t.Errorf("part %s = %s %q", field, files[0].Filename, data)
			}
		}
		reply(w, `[`+messageResult+`,`+messageResult+`]`)
	})

	if err := h.run("album", "42", paths[0], paths[1]); err != nil {
		t.Fatalf("album error = %v", err)
	}
}

func TestAlbumItem(t *testing.T) {
	tests := []struct {
		arg      string
		wantType string
		wantRef  string
	}{
		{"AgACAgIA", "photo", "file_id:AgACAgIA"},
		{"video:BAACAgIA", "video", "file_id:BAACAgIA"},
		{"https://example.com/a.jpg", "photo", "url:https://example.com/a.jpg"},
		{"audio:https://example.com/a.mp3", "audio", "url:https://example.com/a.mp3"},
		{"document:report", "document", "file_id:report"},
		{"sticker:CAAC", "photo", "file_id:sticker:CAAC"},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			item, err := albumItem(tt.arg)
			if err != nil {
				t.Fatalf("albumItem() error = %v", err)
			}
			if item.Type() != tt.wantType {
				t.Errorf("Type() = %q, want %q", item.Type(), tt.wantType)
			}
			if got := item.Media().String(); got != tt.wantRef {
				t.Errorf("Media() = %q, want %q", got, tt.wantRef)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want telegram.ParseMode
	}{
		{"", ""},
		{"HTML", telegram.ParseModeHTML},
		{"markdown", telegram.ParseModeMarkdown},
		{"MarkdownV2", telegram.ParseModeMarkdownV2},
	}
	for _, tt := range tests {
		got, err := parseMode(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("parseMode(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
	if _, err := parseMode("rtf"); err == nil {
		t.Error("parseMode(rtf) should fail")
	}
}
