package usecase

import (
	"context"

	"github.com/allisson/fieldcrypt/internal/crypto/domain"
	"github.com/allisson/fieldcrypt/internal/crypto/service"
)

// fieldUseCase implements FieldUseCase on top of the key cache, the field
// cipher, and the search hasher. Keys are obtained exclusively through the
// cache, which derives them lazily on first use per dataset.
type fieldUseCase struct {
	keyCache service.KeyCache
	cipher   service.FieldCipher
	hasher   service.SearchHasher
}

// NewFieldUseCase creates a new FieldUseCase with the provided dependencies.
func NewFieldUseCase(
	keyCache service.KeyCache,
	cipher service.FieldCipher,
	hasher service.SearchHasher,
) FieldUseCase {
	return &fieldUseCase{
		keyCache: keyCache,
		cipher:   cipher,
		hasher:   hasher,
	}
}

// Protect encrypts a field value for the named dataset.
func (f *fieldUseCase) Protect(ctx context.Context, dataset, plaintext string) (string, error) {
	keys, err := f.keyCache.Keys(dataset)
	if err != nil {
		return "", err
	}
	return f.cipher.EncryptField(plaintext, keys.EncryptionKey)
}

// Reveal decrypts a value previously produced by Protect for the same dataset.
func (f *fieldUseCase) Reveal(ctx context.Context, dataset, encrypted string) (string, error) {
	keys, err := f.keyCache.Keys(dataset)
	if err != nil {
		return "", err
	}
	return f.cipher.DecryptField(encrypted, keys.EncryptionKey)
}

// SearchHash computes the deterministic lookup hash of a value for the dataset.
func (f *fieldUseCase) SearchHash(ctx context.Context, dataset, plaintext string) (string, error) {
	keys, err := f.keyCache.Keys(dataset)
	if err != nil {
		return "", err
	}
	return f.hasher.SearchHash(plaintext, keys.HashKey), nil
}

// ProtectWithHash encrypts and hashes a value with a single key-pair lookup.
func (f *fieldUseCase) ProtectWithHash(
	ctx context.Context,
	dataset, plaintext string,
) (domain.ProtectedField, error) {
	keys, err := f.keyCache.Keys(dataset)
	if err != nil {
		return domain.ProtectedField{}, err
	}

	encrypted, err := f.cipher.EncryptField(plaintext, keys.EncryptionKey)
	if err != nil {
		return domain.ProtectedField{}, err
	}

	return domain.ProtectedField{
		EncryptedValue: encrypted,
		SearchHash:     f.hasher.SearchHash(plaintext, keys.HashKey),
	}, nil
}

// TryProtect returns fallback instead of propagating any error.
func (f *fieldUseCase) TryProtect(ctx context.Context, dataset, plaintext, fallback string) string {
	encrypted, err := f.Protect(ctx, dataset, plaintext)
	if err != nil {
		return fallback
	}
	return encrypted
}

// TryReveal returns fallback instead of propagating any error.
func (f *fieldUseCase) TryReveal(ctx context.Context, dataset, encrypted, fallback string) string {
	plaintext, err := f.Reveal(ctx, dataset, encrypted)
	if err != nil {
		return fallback
	}
	return plaintext
}
