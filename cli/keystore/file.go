package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/crypto/argon2"
)

// File format constants
const (
	// magicHeader identifies keystore files
	magicHeader = "TGBK"
	// formatVersion is the current file format version
	formatVersion = byte(0x01)
	// saltLength is the length of the Argon2id salt
	saltLength = 16
	// nonceLength is the AES-GCM nonce length
	nonceLength = 12
	headerLength = len(magicHeader) + 1 + saltLength + nonceLength
)

// Argon2id parameters (OWASP recommended)
const (
	argon2Time    = 3
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4
	argon2KeyLen  = 32
)

var (
	errBadFormat = errors.New("keystore: unrecognized file format")
	errTooShort  = errors.New("keystore: file too short")
)

// FileKeystore implements Keystore as a JSON map encrypted with AES-256-GCM.
// The file key is derived from the master key with Argon2id and a fresh salt
// on every write.
//
// Format: [magic (4)] [version (1)] [salt (16)] [nonce (12)] [ciphertext]
type FileKeystore struct {
	path      string
	masterKey []byte
	mu        sync.RWMutex
}

// NewFileKeystore opens a keystore at path. The file is created on the
// first write.
func NewFileKeystore(path string, source MasterKeySource) (*FileKeystore, error) {
	masterKey, err := source.GetMasterKey()
	if err != nil {
		return nil, err
	}

	return &FileKeystore{
		path:      path,
		masterKey: masterKey,
	}, nil
}

// Set stores a token under name.
func (f *FileKeystore) Set(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.load()
	if err != nil {
		return err
	}

	data[name] = value
	return f.save(data)
}

// Get retrieves a token by name.
func (f *FileKeystore) Get(name string) (string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	data, err := f.load()
	if err != nil {
		return "", err
	}

	value, ok := data[name]
	if !ok {
		return "", &ErrKeyNotFound{Name: name}
	}
	return value, nil
}

// Delete removes a token by name.
func (f *FileKeystore) Delete(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.load()
	if err != nil {
		return err
	}

	if _, ok := data[name]; !ok {
		return &ErrKeyNotFound{Name: name}
	}

	delete(data, name)
	return f.save(data)
}

// List returns all stored names.
func (f *FileKeystore) List() ([]string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	data, err := f.load()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(data))
	for name := range data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// load reads and decrypts the keystore file. A missing or empty file is an
// empty keystore.
func (f *FileKeystore) load() (map[string]string, error) {
	data := make(map[string]string)

	raw, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return data, nil
		}
		return nil, err
	}
	if len(raw) == 0 {
		return data, nil
	}

	plaintext, err := f.decrypt(raw)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(plaintext, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// save encrypts and writes the keystore file with user-only permissions.
func (f *FileKeystore) save(data map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return err
	}

	plaintext, err := json.Marshal(data)
	if err != nil {
		return err
	}

	ciphertext, err := f.encrypt(plaintext)
	if err != nil {
		return err
	}

	return os.WriteFile(f.path, ciphertext, 0600)
}

func (f *FileKeystore) gcm(salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey(f.masterKey, salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func (f *FileKeystore) encrypt(plaintext []byte) ([]byte, error) {
	salt := make([]byte, saltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}

	aead, err := f.gcm(salt)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, nonceLength)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	header := make([]byte, 0, headerLength)
	header = append(header, magicHeader...)
	header = append(header, formatVersion)
	header = append(header, salt...)
	header = append(header, nonce...)

	// The header is authenticated as additional data.
	return aead.Seal(header, nonce, plaintext, header), nil
}

func (f *FileKeystore) decrypt(raw []byte) ([]byte, error) {
	if len(raw) < headerLength {
		return nil, errTooShort
	}
	if string(raw[:len(magicHeader)]) != magicHeader || raw[len(magicHeader)] != formatVersion {
		return nil, errBadFormat
	}

	offset := len(magicHeader) + 1
	salt := raw[offset : offset+saltLength]
	offset += saltLength
	nonce := raw[offset : offset+nonceLength]
	offset += nonceLength

	aead, err := f.gcm(salt)
	if err != nil {
		return nil, err
	}
	return aead.Open(nil, nonce, raw[offset:], raw[:offset])
}

// Ensure FileKeystore implements Keystore
var _ Keystore = (*FileKeystore)(nil)
