// Package service provides the cryptographic services for field-level encryption:
// master key loading, dataset key derivation, process-wide key caching,
// AES-256-GCM field encryption, and deterministic search hashing.
package service

import (
	"context"

	"github.com/allisson/fieldcrypt/internal/crypto/domain"
)

// SaltProvider resolves the 32-byte salt registered for a dataset.
type SaltProvider interface {
	// Salt returns the decoded salt for the dataset, or a configuration error
	// naming the dataset when no salt slot is registered.
	Salt(dataset string) ([]byte, error)
}

// KeyDeriver derives the dataset-scoped key pair from the master key.
type KeyDeriver interface {
	// DeriveDatasetKey derives the 32-byte encryption key for a dataset using
	// PBKDF2-HMAC-SHA256 over the master key and the dataset's salt.
	DeriveDatasetKey(masterKey *domain.MasterKey, dataset string) ([]byte, error)

	// DeriveHashKey derives the separate 32-byte hashing key from a dataset key.
	// Deterministic key-separation step, not a second random derivation.
	DeriveHashKey(datasetKey []byte) []byte
}

// KeyCache memoizes derived key pairs per dataset for the process lifetime.
// It is the only component permitted to invoke the KeyDeriver.
type KeyCache interface {
	// Keys returns the cached key pair for the dataset, deriving and storing
	// it on first use. A failed derivation stores nothing.
	Keys(dataset string) (domain.KeyPair, error)
}

// FieldCipher performs authenticated encryption of a single field value.
type FieldCipher interface {
	// EncryptField encrypts plaintext with a fresh random nonce and returns
	// base64(nonce || ciphertext || tag). Empty plaintext encrypts to "".
	EncryptField(plaintext string, key []byte) (string, error)

	// DecryptField reverses EncryptField with tag verification. Empty input
	// decrypts to "". Any malformed or tampered input yields ErrDecryptionFailed.
	DecryptField(encrypted string, key []byte) (string, error)
}

// SearchHasher computes the deterministic one-way fingerprint used for
// exact-match lookups over encrypted columns.
type SearchHasher interface {
	// SearchHash returns the lowercase hex HMAC-SHA256 of plaintext under the
	// dataset's hash key, or "" for empty plaintext.
	SearchHash(plaintext string, hashKey []byte) string
}

// KMSService opens gocloud.dev secrets keepers for wrapping and unwrapping
// the master key with an external KMS.
type KMSService interface {
	// OpenKeeper opens a keeper for the given key URI.
	// Returns an error if the URI is invalid or the connection fails.
	OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error)
}

// KMSKeeper is the subset of *secrets.Keeper the engine relies on.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}
