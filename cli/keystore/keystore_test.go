package keystore

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

type staticKey string

func (s staticKey) GetMasterKey() ([]byte, error) { return []byte(s), nil }

func newTestKeystore(t *testing.T) (*FileKeystore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keys.enc")
	ks, err := NewFileKeystore(path, staticKey("test-master-key"))
	if err != nil {
		t.Fatalf("NewFileKeystore() error = %v", err)
	}
	return ks, path
}

func TestFileKeystoreSetAndGet(t *testing.T) {
	ks, _ := newTestKeystore(t)

	if err := ks.Set("default", "123456:ABC-DEF"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	value, err := ks.Get("default")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if value != "123456:ABC-DEF" {
		t.Errorf("Get() = %q, want 123456:ABC-DEF", value)
	}
}

func TestFileKeystoreGetNotFound(t *testing.T) {
	ks, _ := newTestKeystore(t)

	_, err := ks.Get("nonexistent")
	var notFound *ErrKeyNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("Get() error = %v, want *ErrKeyNotFound", err)
	}
	if notFound.Name != "nonexistent" {
		t.Errorf("ErrKeyNotFound.Name = %q", notFound.Name)
	}
}

func TestFileKeystoreDelete(t *testing.T) {
	ks, _ := newTestKeystore(t)

	if err := ks.Set("staging", "1:a"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := ks.Delete("staging"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := ks.Get("staging"); err == nil {
		t.Error("Get() after Delete() should fail")
	}

	var notFound *ErrKeyNotFound
	if err := ks.Delete("staging"); !errors.As(err, &notFound) {
		t.Errorf("Delete() of missing entry error = %v, want *ErrKeyNotFound", err)
	}
}

func TestFileKeystoreList(t *testing.T) {
	ks, _ := newTestKeystore(t)

	names, err := ks.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(names) != 0 {
		t.Errorf("List() on empty keystore = %v", names)
	}

	for _, name := range []string{"prod", "default", "staging"} {
		if err := ks.Set(name, name+"-token"); err != nil {
			t.Fatalf("Set(%q) error = %v", name, err)
		}
	}

	names, err = ks.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []string{"default", "prod", "staging"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("List() = %v, want %v", names, want)
	}
}

func TestFileKeystoreEncryptedOnDisk(t *testing.T) {
	ks, path := newTestKeystore(t)

	if err := ks.Set("default", "123456:SECRET-TOKEN"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.HasPrefix(string(raw), magicHeader) {
		t.Error("keystore file is missing the magic header")
	}
	if strings.Contains(string(raw), "SECRET-TOKEN") {
		t.Error("keystore file contains the plaintext token")
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("Stat() error = %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("keystore file permissions = %o, want 600", perm)
		}
	}
}

func TestFileKeystoreWrongMasterKey(t *testing.T) {
	ks, path := newTestKeystore(t)
	if err := ks.Set("default", "1:a"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	other, err := NewFileKeystore(path, staticKey("another-key"))
	if err != nil {
		t.Fatalf("NewFileKeystore() error = %v", err)
	}
	if _, err := other.Get("default"); err == nil {
		t.Error("Get() with the wrong master key should fail")
	}
}

func TestFileKeystoreCorruptFile(t *testing.T) {
	ks, path := newTestKeystore(t)

	if err := os.WriteFile(path, []byte("XXXX"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := ks.Get("default"); !errors.Is(err, errTooShort) {
		t.Errorf("Get() error = %v, want errTooShort", err)
	}

	if err := os.WriteFile(path, []byte(strings.Repeat("Z", 64)), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := ks.Get("default"); !errors.Is(err, errBadFormat) {
		t.Errorf("Get() error = %v, want errBadFormat", err)
	}
}

func TestEnvMasterKey(t *testing.T) {
	t.Setenv(MasterKeyEnv, "")
	if _, err := (EnvMasterKey{Var: MasterKeyEnv}).GetMasterKey(); err == nil {
		t.Error("GetMasterKey() with empty variable should fail")
	}
	if _, ok := DefaultMasterKeySource().(MachineMasterKey); !ok {
		t.Error("DefaultMasterKeySource() should fall back to MachineMasterKey")
	}

	t.Setenv(MasterKeyEnv, "hunter2")
	key, err := (EnvMasterKey{Var: MasterKeyEnv}).GetMasterKey()
	if err != nil {
		t.Fatalf("GetMasterKey() error = %v", err)
	}
	if string(key) != "hunter2" {
		t.Errorf("GetMasterKey() = %q", key)
	}
	if _, ok := DefaultMasterKeySource().(EnvMasterKey); !ok {
		t.Error("DefaultMasterKeySource() should prefer the environment")
	}
}

func TestDefaultKeystorePath(t *testing.T) {
	path := DefaultKeystorePath()
	if filepath.Base(path) != "keys.enc" {
		t.Errorf("DefaultKeystorePath() = %q, should end with keys.enc", path)
	}
	if home := os.Getenv("HOME"); home != "" && runtime.GOOS != "windows" {
		if filepath.Base(filepath.Dir(path)) != ".tgbot" {
			t.Errorf("DefaultKeystorePath() = %q, should be in .tgbot directory", path)
		}
	}
}
