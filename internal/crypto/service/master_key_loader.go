package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/allisson/fieldcrypt/internal/crypto/domain"
	apperrors "github.com/allisson/fieldcrypt/internal/errors"
)

// MasterKeyLoader loads the process-wide master key from a trusted
// configuration source.
//
// The source is always the environment (surfaced through config), never the
// database the engine protects. Loading happens once per process lifetime;
// validation failures are configuration errors that must abort startup rather
// than be silently defaulted.
//
// Two modes are supported:
//   - Plain: the configured value is the base64 encoding of the 32-byte key.
//   - KMS: when a key URI is given, the configured value is the base64 encoding
//     of a KMS-wrapped ciphertext, unwrapped through a gocloud.dev keeper
//     before the length check.
type MasterKeyLoader struct {
	kms KMSService
}

// NewMasterKeyLoader creates a new MasterKeyLoader with the provided KMS service.
func NewMasterKeyLoader(kms KMSService) *MasterKeyLoader {
	return &MasterKeyLoader{kms: kms}
}

// Load decodes, optionally unwraps, and validates the master key.
//
// Returns:
//   - ErrMasterKeyNotSet when encoded is empty
//   - ErrInvalidMasterKeyBase64 when encoded is not valid standard base64
//   - ErrInvalidKeySize when the (unwrapped) key is not exactly 32 bytes
//   - a configuration error when KMS unwrapping fails
func (l *MasterKeyLoader) Load(ctx context.Context, encoded, kmsKeyURI string) (*domain.MasterKey, error) {
	if encoded == "" {
		return nil, domain.ErrMasterKeyNotSet
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidMasterKeyBase64, err)
	}

	if kmsKeyURI != "" {
		unwrapped, err := l.unwrap(ctx, raw, kmsKeyURI)
		domain.Zero(raw)
		if err != nil {
			return nil, err
		}
		raw = unwrapped
	}

	if len(raw) != domain.KeySize {
		domain.Zero(raw)
		return nil, fmt.Errorf(
			"%w: master key must be %d bytes, got %d",
			domain.ErrInvalidKeySize,
			domain.KeySize,
			len(raw),
		)
	}

	return &domain.MasterKey{Key: raw}, nil
}

// unwrap decrypts a KMS-wrapped master key through a gocloud.dev keeper.
func (l *MasterKeyLoader) unwrap(ctx context.Context, wrapped []byte, keyURI string) ([]byte, error) {
	keeper, err := l.kms.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrConfiguration, err.Error())
	}
	defer func() {
		_ = keeper.Close()
	}()

	raw, err := keeper.Decrypt(ctx, wrapped)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrConfiguration, "failed to unwrap master key with KMS")
	}
	return raw, nil
}
