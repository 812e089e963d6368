// Package crypto provides passphrase-based sealing for export archives.
// Uses AES-256-GCM for authenticated encryption.
package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"
)

// sealed archives start with this prefix so they can be told apart from
// plain tar.gz output without attempting a decrypt
var magic = []byte("MLSEAL1\x00")

var (
	// ErrInvalidCiphertext is returned when decryption fails, either
	// because the passphrase is wrong or the data was altered.
	ErrInvalidCiphertext = errors.New("invalid ciphertext")
	// ErrInvalidPassphrase is returned when the passphrase is empty.
	ErrInvalidPassphrase = errors.New("invalid passphrase")
	// ErrNotSealed is returned when Open is given data without the
	// sealed-archive prefix.
	ErrNotSealed = errors.New("data is not a sealed archive")
)

// Seal encrypts data with a key derived from the passphrase. The output
// carries a recognizable prefix followed by the nonce and ciphertext.
func Seal(data []byte, passphrase string) ([]byte, error) {
	if passphrase == "" {
		return nil, ErrInvalidPassphrase
	}
	key := sha256.Sum256([]byte(passphrase))

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(magic)+len(nonce)+len(data)+gcm.Overhead())
	out = append(out, magic...)
	out = append(out, nonce...)
	return gcm.Seal(out, nonce, data, nil), nil
}

// Open decrypts data produced by Seal.
func Open(sealed []byte, passphrase string) ([]byte, error) {
	if passphrase == "" {
		return nil, ErrInvalidPassphrase
	}
	if !IsSealed(sealed) {
		return nil, ErrNotSealed
	}
	key := sha256.Sum256([]byte(passphrase))

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	body := sealed[len(magic):]
	nonceSize := gcm.NonceSize()
	if len(body) < nonceSize {
		return nil, ErrInvalidCiphertext
	}
	nonce, ciphertext := body[:nonceSize], body[nonceSize:]

	data, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrInvalidCiphertext
	}
	return data, nil
}

// IsSealed reports whether data carries the sealed-archive prefix.
func IsSealed(data []byte) bool {
	return bytes.HasPrefix(data, magic)
}
