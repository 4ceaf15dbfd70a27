package service

import (
	"crypto/hmac"
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"

	"github.com/allisson/fieldcrypt/internal/crypto/domain"
)

// PBKDF2KeyDeriver derives dataset-scoped keys from the master key.
//
// The dataset key is PBKDF2-HMAC-SHA256(master_key, salt=dataset_salt,
// iterations=100,000, 32-byte output): deterministic, so the same master key
// and salt always reproduce the same key. The iteration count makes each
// derivation expensive, so results are cached by the KeyCache. The hash key is a
// key-separation HMAC of the dataset key under a fixed context label, keeping
// the search-hash key cryptographically distinct from the encryption key.
type PBKDF2KeyDeriver struct {
	saltProvider SaltProvider
}

// NewPBKDF2KeyDeriver creates a new PBKDF2KeyDeriver with the provided salt provider.
func NewPBKDF2KeyDeriver(saltProvider SaltProvider) *PBKDF2KeyDeriver {
	return &PBKDF2KeyDeriver{saltProvider: saltProvider}
}

// DeriveDatasetKey derives the 32-byte encryption key for a dataset.
//
// The dataset's salt is looked up through the salt provider; a missing or
// malformed salt surfaces as a configuration error naming the dataset.
func (d *PBKDF2KeyDeriver) DeriveDatasetKey(masterKey *domain.MasterKey, dataset string) ([]byte, error) {
	salt, err := d.saltProvider.Salt(dataset)
	if err != nil {
		return nil, err
	}

	return pbkdf2.Key(masterKey.Key, salt, domain.PBKDF2Iterations, domain.KeySize, sha256.New), nil
}

// DeriveHashKey derives the 32-byte hashing key from a dataset key using
// HMAC-SHA256 with the fixed context label as the message.
func (d *PBKDF2KeyDeriver) DeriveHashKey(datasetKey []byte) []byte {
	mac := hmac.New(sha256.New, datasetKey)
	mac.Write([]byte(domain.HashKeyContext))
	return mac.Sum(nil)
}
