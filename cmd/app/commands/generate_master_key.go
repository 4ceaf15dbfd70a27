package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	cryptoDomain "github.com/allisson/fieldcrypt/internal/crypto/domain"
	cryptoService "github.com/allisson/fieldcrypt/internal/crypto/service"
)

// RunGenerateMasterKey generates a cryptographically secure 256-bit master key.
//
// The key is the root of the dataset key hierarchy: provision it once in the
// trusted configuration source and never in the database the engine protects.
// With a KMS key URI the raw key is wrapped by the keeper before encoding, so
// the environment only ever holds ciphertext. Raw key bytes are zeroed from
// memory after encoding.
//
// Output is a ready-to-copy env block:
//   - MASTER_KEY="<base64 key or base64 KMS ciphertext>"
//   - KMS_KEY_URI="<uri>" (KMS mode only)
func RunGenerateMasterKey(ctx context.Context, kmsKeyURI string, w io.Writer) error {
	masterKey := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(masterKey); err != nil {
		return fmt.Errorf("failed to generate master key: %w", err)
	}
	defer cryptoDomain.Zero(masterKey)

	output := masterKey
	if kmsKeyURI != "" {
		wrapped, err := wrapWithKMS(ctx, masterKey, kmsKeyURI)
		if err != nil {
			return err
		}
		output = wrapped
	}

	encoded := base64.StdEncoding.EncodeToString(output)

	fmt.Fprintln(w, "# Master Key Configuration")
	fmt.Fprintln(w, "# Copy these environment variables to your .env file or secrets manager.")
	fmt.Fprintln(w, "# The master key must never be stored in the database it protects.")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "MASTER_KEY=%q\n", encoded)
	if kmsKeyURI != "" {
		fmt.Fprintf(w, "KMS_KEY_URI=%q\n", kmsKeyURI)
	}

	return nil
}

// wrapWithKMS encrypts the raw master key through a gocloud.dev keeper.
func wrapWithKMS(ctx context.Context, masterKey []byte, kmsKeyURI string) ([]byte, error) {
	kmsService := cryptoService.NewKMSService()
	keeper, err := kmsService.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() {
		_ = keeper.Close()
	}()

	wrapped, err := keeper.Encrypt(ctx, masterKey)
	if err != nil {
		return nil, fmt.Errorf("failed to wrap master key with KMS: %w", err)
	}
	return wrapped, nil
}
