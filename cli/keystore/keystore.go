// Package keystore provides encrypted storage for bot tokens.
package keystore

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

// Keystore defines the interface for secure token storage.
type Keystore interface {
	// Set stores a token under name.
	Set(name, value string) error
	// Get retrieves a token by name. Returns *ErrKeyNotFound if missing.
	Get(name string) (string, error)
	// Delete removes a token by name.
	Delete(name string) error
	// List returns all stored names, sorted.
	List() ([]string, error)
}

// ErrKeyNotFound is returned when a requested entry does not exist.
type ErrKeyNotFound struct {
	Name string
}

func (e *ErrKeyNotFound) Error() string {
	return "token not found: " + e.Name
}

// MasterKeySource supplies the secret the file encryption key is derived from.
type MasterKeySource interface {
	GetMasterKey() ([]byte, error)
}

// MasterKeyEnv is the environment variable read by EnvMasterKey.
const MasterKeyEnv = "TGBOT_MASTER_KEY"

// EnvMasterKey reads the master key from an environment variable.
type EnvMasterKey struct {
	Var string
}

// GetMasterKey implements MasterKeySource.
func (e EnvMasterKey) GetMasterKey() ([]byte, error) {
	v := os.Getenv(e.Var)
	if v == "" {
		return nil, errors.New("keystore: " + e.Var + " is not set")
	}
	return []byte(v), nil
}

// MachineMasterKey derives the master key from the host and user names.
// It is predictable and only protects against casual reading of the file.
type MachineMasterKey struct{}

// GetMasterKey implements MasterKeySource.
func (MachineMasterKey) GetMasterKey() ([]byte, error) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	username := os.Getenv("USER")
	if username == "" {
		username = os.Getenv("USERNAME")
	}
	return []byte(hostname + ":" + username + ":tgbot-keystore"), nil
}

// DefaultMasterKeySource uses TGBOT_MASTER_KEY when set and falls back to
// MachineMasterKey.
func DefaultMasterKeySource() MasterKeySource {
	if os.Getenv(MasterKeyEnv) != "" {
		return EnvMasterKey{Var: MasterKeyEnv}
	}
	return MachineMasterKey{}
}

// DefaultKeystorePath returns the default keystore file path.
// - macOS/Linux: ~/.tgbot/keys.enc
// - Windows: %USERPROFILE%\.tgbot\keys.enc
func DefaultKeystorePath() string {
	var homeDir string

	if runtime.GOOS == "windows" {
		homeDir = os.Getenv("USERPROFILE")
	} else {
		homeDir = os.Getenv("HOME")
	}

	if homeDir == "" {
		return "keys.enc"
	}

	return filepath.Join(homeDir, ".tgbot", "keys.enc")
}

// NewKeystore opens the default file keystore with the default master key.
func NewKeystore() (Keystore, error) {
	return NewFileKeystore(DefaultKeystorePath(), DefaultMasterKeySource())
}
