// Package secrets encrypts customer-supplied provider credentials at rest.
// Ciphertexts are AES-256-GCM with a random nonce, base64-encoded for storage
// in text columns.
package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/Egham-7/llm-router/internal/models"
)

// Codec encrypts and decrypts stored credentials.
type Codec interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

type aesCodec struct {
	aead cipher.AEAD
}

// NewAESCodec builds a codec from the master key material. The key is hashed
// to 32 bytes so any non-empty passphrase works.
func NewAESCodec(masterKey string) (Codec, error) {
	if masterKey == "" {
		return nil, models.NewValidationError("secrets master key must not be empty", nil)
	}

	key := sha256.Sum256([]byte(masterKey))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &aesCodec{aead: aead}, nil
}

func (c *aesCodec) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (c *aesCodec) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", models.NewKeyDecryptionError(err)
	}

	if len(raw) < c.aead.NonceSize() {
		return "", models.NewKeyDecryptionError(fmt.Errorf("ciphertext shorter than nonce"))
	}

	nonce, sealed := raw[:c.aead.NonceSize()], raw[c.aead.NonceSize():]
	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", models.NewKeyDecryptionError(err)
	}

	return string(plaintext), nil
}
