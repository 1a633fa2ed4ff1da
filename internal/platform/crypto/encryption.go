// Package crypto seals documents at rest with AES-256-GCM.
package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

// sealedPrefix marks sealed payloads so that documents written before a key
// was configured still open as plain bytes.
var sealedPrefix = []byte("HRDS1")

var ErrSealedTooShort = errors.New("sealed document too short")

// Box seals and opens documents. A Box without a key passes data through.
type Box struct {
	aead cipher.AEAD
}

func New(key string) (*Box, error) {
	if key == "" {
		return &Box{}, nil
	}
	decoded := decodeKey(key)
	if len(decoded) != 32 {
		return nil, fmt.Errorf("DATA_ENCRYPTION_KEY must be 32 bytes after decoding, got %d", len(decoded))
	}
	block, err := aes.NewCipher(decoded)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Box{aead: aead}, nil
}

func (b *Box) Enabled() bool {
	return b != nil && b.aead != nil
}

func (b *Box) Seal(plain []byte) ([]byte, error) {
	if !b.Enabled() {
		return plain, nil
	}
	nonce := make([]byte, b.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(sealedPrefix)+len(nonce)+len(plain)+b.aead.Overhead())
	out = append(out, sealedPrefix...)
	out = append(out, nonce...)
	return b.aead.Seal(out, nonce, plain, nil), nil
}

func (b *Box) Open(data []byte) ([]byte, error) {
	if !bytes.HasPrefix(data, sealedPrefix) {
		return data, nil
	}
	if !b.Enabled() {
		return nil, errors.New("document is sealed but no DATA_ENCRYPTION_KEY is configured")
	}
	body := data[len(sealedPrefix):]
	if len(body) < b.aead.NonceSize() {
		return nil, ErrSealedTooShort
	}
	nonce, ciphertext := body[:b.aead.NonceSize()], body[b.aead.NonceSize():]
	return b.aead.Open(nil, nonce, ciphertext, nil)
}

// decodeKey accepts hex, the raw 32 bytes, or padded or raw base64.
func decodeKey(raw string) []byte {
	if len(raw) == 64 {
		if decoded, err := hex.DecodeString(raw); err == nil {
			return decoded
		}
	}
	if len(raw) == 32 {
		return []byte(raw)
	}
	if decoded, err := base64.StdEncoding.DecodeString(raw); err == nil {
		return decoded
	}
	if decoded, err := base64.RawStdEncoding.DecodeString(raw); err == nil {
		return decoded
	}
	return []byte(raw)
}
