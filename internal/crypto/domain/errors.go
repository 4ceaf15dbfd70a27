package domain

import (
	"github.com/allisson/fieldcrypt/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors so
// callers can distinguish configuration problems (fatal, fix the deployment)
// from decryption problems (tampering or corruption of stored data) with
// errors.Is. Error messages never carry plaintext, key bytes, or ciphertext.
var (
	// ErrMasterKeyNotSet indicates the MASTER_KEY environment variable is not configured.
	//
	// The master key is the root of the key hierarchy and must be provisioned
	// before the process starts. This error aborts startup.
	ErrMasterKeyNotSet = errors.Wrap(errors.ErrConfiguration, "master key not set")

	// ErrInvalidMasterKeyBase64 indicates the master key is not valid standard base64.
	ErrInvalidMasterKeyBase64 = errors.Wrap(errors.ErrConfiguration, "master key is not valid base64")

	// ErrInvalidKeySize indicates decoded key material is not exactly 32 bytes.
	//
	// Master keys, dataset salts, and all derived keys must be 256 bits.
	ErrInvalidKeySize = errors.Wrap(errors.ErrConfiguration, "invalid key size")

	// ErrSaltNotRegistered indicates no salt slot exists for the requested dataset.
	//
	// Datasets are registered incrementally by provisioning a SALT_<DATASET>
	// slot, so this is checked at first use per dataset rather than at startup.
	// The error message names the dataset so operators can provision the slot.
	ErrSaltNotRegistered = errors.Wrap(errors.ErrConfiguration, "no salt registered for dataset")

	// ErrInvalidSalt indicates a registered dataset salt is malformed
	// (bad base64 or wrong decoded length).
	ErrInvalidSalt = errors.Wrap(errors.ErrConfiguration, "invalid dataset salt")

	// ErrDecryptionFailed indicates a decryption operation failed.
	//
	// This single error covers malformed base64, truncated input, and
	// authentication-tag mismatch. The specific cause is never disclosed
	// to callers; any of them means the stored value was tampered with or
	// corrupted.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")
)
