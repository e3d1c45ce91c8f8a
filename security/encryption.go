package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"golang.org/x/crypto/hkdf"
)

var (
	ErrNoKey              = errors.New("encryption key not initialized")
	ErrCiphertextTooShort = errors.New("ciphertext too short")
)

// Cipher encrypts integration secrets with AES-256-GCM
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher derives a 32-byte AES key from the configured passphrase
func NewCipher(passphrase string) (*Cipher, error) {
	if passphrase == "" {
		return nil, ErrNoKey
	}

	key := make([]byte, 32)
	kdf := hkdf.New(sha256.New, []byte(passphrase), nil, []byte("costconsole integration secrets"))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Cipher{aead: gcm}, nil
}

// Encrypt returns base64(nonce || ciphertext)
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt reverses Encrypt
func (c *Cipher) Decrypt(encrypted string) (string, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		return "", err
	}

	if len(ciphertext) < c.aead.NonceSize() {
		return "", ErrCiphertextTooShort
	}

	nonce := ciphertext[:c.aead.NonceSize()]
	ciphertext = ciphertext[c.aead.NonceSize():]

	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

var defaultCipher atomic.Pointer[Cipher]

// InitializeEncryption sets up the process-wide cipher from the configured key
func InitializeEncryption(key string) error {
	c, err := NewCipher(key)
	if err != nil {
		return err
	}
	defaultCipher.Store(c)
	return nil
}

// Encrypt encrypts with the process-wide cipher
func Encrypt(plaintext string) (string, error) {
	c := defaultCipher.Load()
	if c == nil {
		return "", ErrNoKey
	}
	return c.Encrypt(plaintext)
}

// Decrypt decrypts with the process-wide cipher
func Decrypt(encrypted string) (string, error) {
	c := defaultCipher.Load()
	if c == nil {
		return "", ErrNoKey
	}
	return c.Decrypt(encrypted)
}
