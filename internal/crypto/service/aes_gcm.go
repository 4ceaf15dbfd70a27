package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/allisson/fieldcrypt/internal/crypto/domain"
)

// AESGCMFieldCipher implements the FieldCipher interface using AES-256-GCM.
//
// Each encryption generates a fresh random 12-byte nonce, so encrypting the
// same plaintext twice for the same dataset produces different ciphertexts
// that both decrypt back to the identical value. The persisted form is
// base64(nonce || ciphertext || 16-byte tag), one opaque string per field.
//
// Empty input is a convention, not an error: "" encrypts to "" without
// touching key material, and "" decrypts to "", so optional columns stay
// empty instead of carrying a ciphertext of nothing.
//
// Thread safety: the cipher is stateless and safe for concurrent use from
// multiple goroutines; the dataset key is passed per call.
type AESGCMFieldCipher struct{}

// NewAESGCMFieldCipher creates a new AESGCMFieldCipher instance.
func NewAESGCMFieldCipher() *AESGCMFieldCipher {
	return &AESGCMFieldCipher{}
}

// EncryptField encrypts a single field value with the dataset's encryption key.
//
// The key must be exactly 32 bytes. Empty plaintext returns "" without using
// the key.
func (c *AESGCMFieldCipher) EncryptField(plaintext string, key []byte) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	aead, err := newAEAD(key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, domain.NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	// Seal appends ciphertext||tag to the nonce, yielding nonce||ciphertext||tag.
	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// DecryptField decrypts a value previously produced by EncryptField.
//
// Malformed base64, input shorter than nonce+tag, and authentication failure
// all return the single uniform ErrDecryptionFailed; no partially decrypted
// or unverified bytes are ever returned.
func (c *AESGCMFieldCipher) DecryptField(encrypted string, key []byte) (string, error) {
	if encrypted == "" {
		return "", nil
	}

	aead, err := newAEAD(key)
	if err != nil {
		return "", err
	}

	data, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		return "", domain.ErrDecryptionFailed
	}
	if len(data) < domain.NonceSize+domain.TagSize {
		return "", domain.ErrDecryptionFailed
	}

	plaintext, err := aead.Open(nil, data[:domain.NonceSize], data[domain.NonceSize:], nil)
	if err != nil {
		return "", domain.ErrDecryptionFailed
	}

	return string(plaintext), nil
}

// newAEAD builds an AES-256-GCM AEAD for the given 32-byte key.
func newAEAD(key []byte) (cipher.AEAD, error) {
	if len(key) != domain.KeySize {
		return nil, fmt.Errorf(
			"%w: encryption key must be %d bytes, got %d",
			domain.ErrInvalidKeySize,
			domain.KeySize,
			len(key),
		)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return aead, nil
}
