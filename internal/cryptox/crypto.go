// Package cryptox seals small JSON documents at rest.
//
// Values are serialized to JSON and encrypted with XChaCha20-Poly1305. The
// random 24-byte nonce is prepended to the ciphertext, so a sealed value is a
// single opaque byte slice that can be stored under one key.
package cryptox

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/transellia/admin-console/internal/common"
	"golang.org/x/crypto/chacha20poly1305"
)

// KeySize is the length of keys accepted by SealJSON and OpenJSON.
const KeySize = chacha20poly1305.KeySize

var (
	ErrInvalidKey = errors.New("invalid key size")
	ErrShortData  = errors.New("sealed data too short")
)

// SealJSON marshals v and encrypts it with key.
//
// Example:
//
//	sealed, err := cryptox.SealJSON(snapshot, key)
//	...
//	var restored Snapshot
//	err = cryptox.OpenJSON(sealed, key, &restored)
func SealJSON(v any, key []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKey
	}

	plaintext, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(plaintext)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}

	nonce, err := common.GenerateRandByteArray(aead.NonceSize())
	if err != nil {
		return nil, err
	}

	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// OpenJSON decrypts data produced by SealJSON and unmarshals it into v.
// Tampered data or a wrong key yields an authentication error.
func OpenJSON(data, key []byte, v any) error {
	if len(key) != KeySize {
		return ErrInvalidKey
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return err
	}
	if len(data) < aead.NonceSize()+aead.Overhead() {
		return ErrShortData
	}

	nonce, ciphertext := data[:aead.NonceSize()], data[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(plaintext)

	return json.Unmarshal(plaintext, v)
}

// LoadOrCreateKey reads a key from path, creating the file with a fresh
// random key (mode 0600) when it does not exist yet.
func LoadOrCreateKey(path string) ([]byte, error) {
	key, err := os.ReadFile(path)
	if err == nil {
		if len(key) != KeySize {
			return nil, fmt.Errorf("key file %s: %w", path, ErrInvalidKey)
		}
		return key, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read key file: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	key, err = common.GenerateRandByteArray(KeySize)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, key, 0o600); err != nil {
		return nil, fmt.Errorf("write key file: %w", err)
	}
	return key, nil
}
