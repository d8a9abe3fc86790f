// Package secret encrypts small secrets, such as the Torn API key, before they are stored.
package secret

import (
	"errors"
	"fmt"

	"github.com/fernet/fernet-go"
)

// ErrInvalidToken is returned when a token cannot be verified with the configured key.
var ErrInvalidToken = errors.New("invalid or tampered token")

// Cipher encrypts and decrypts values with a Fernet key.
type Cipher struct {
	key *fernet.Key
}

// NewCipher creates a Cipher from a base64 encoded 32 byte Fernet key.
func NewCipher(encodedKey string) (*Cipher, error) {
	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode encryption key: %w", err)
	}
	return &Cipher{key: key}, nil
}

// GenerateKey returns a new random key in the encoding NewCipher accepts.
func GenerateKey() (string, error) {
	var key fernet.Key
	if err := key.Generate(); err != nil {
		return "", fmt.Errorf("failed to generate encryption key: %w", err)
	}
	return key.Encode(), nil
}

// Encrypt returns the Fernet token of plaintext.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	token, err := fernet.EncryptAndSign([]byte(plaintext), c.key)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt value: %w", err)
	}
	return string(token), nil
}

// Decrypt verifies token and returns its plaintext. Tokens never expire.
func (c *Cipher) Decrypt(token string) (string, error) {
	msg := fernet.VerifyAndDecrypt([]byte(token), 0, []*fernet.Key{c.key})
	if msg == nil {
		return "", ErrInvalidToken
	}
	return string(msg), nil
}
