package usecase

import (
	"context"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/fieldcrypt/internal/crypto/domain"
	"github.com/allisson/fieldcrypt/internal/crypto/service"
)

func randomKey(t *testing.T) []byte {
	t.Helper()

	key := make([]byte, domain.KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

// newTestEngine builds an isolated facade over an in-memory salt registry.
func newTestEngine(t *testing.T, datasets ...string) (FieldUseCase, *service.DerivedKeyCache) {
	t.Helper()

	salts := make(map[string][]byte, len(datasets))
	for _, dataset := range datasets {
		salts[dataset] = randomKey(t)
	}

	masterKey := &domain.MasterKey{Key: randomKey(t)}
	deriver := service.NewPBKDF2KeyDeriver(service.NewMapSaltProvider(salts))
	keyCache := service.NewDerivedKeyCache(masterKey, deriver)

	useCase := NewFieldUseCase(
		keyCache,
		service.NewAESGCMFieldCipher(),
		service.NewHMACSearchHasher(),
	)
	return useCase, keyCache
}

func TestFieldUseCase_ProtectWithHash(t *testing.T) {
	ctx := context.Background()

	t.Run("repeated protection: fresh ciphertext, stable hash, same plaintext", func(t *testing.T) {
		useCase, _ := newTestEngine(t, "users")

		first, err := useCase.ProtectWithHash(ctx, "users", "alice@example")
		require.NoError(t, err)

		second, err := useCase.ProtectWithHash(ctx, "users", "alice@example")
		require.NoError(t, err)

		assert.NotEqual(t, first.EncryptedValue, second.EncryptedValue)
		assert.Equal(t, first.SearchHash, second.SearchHash)
		assert.Len(t, first.SearchHash, 64)

		revealed1, err := useCase.Reveal(ctx, "users", first.EncryptedValue)
		require.NoError(t, err)
		revealed2, err := useCase.Reveal(ctx, "users", second.EncryptedValue)
		require.NoError(t, err)
		assert.Equal(t, "alice@example", revealed1)
		assert.Equal(t, "alice@example", revealed2)
	})

	t.Run("empty plaintext produces empty field and hash", func(t *testing.T) {
		useCase, _ := newTestEngine(t, "users")

		field, err := useCase.ProtectWithHash(ctx, "users", "")
		require.NoError(t, err)
		assert.Equal(t, domain.ProtectedField{}, field)
	})

	t.Run("unregistered dataset", func(t *testing.T) {
		useCase, _ := newTestEngine(t, "users")

		field, err := useCase.ProtectWithHash(ctx, "unregistered_dataset", "alice@example")
		assert.ErrorIs(t, err, domain.ErrSaltNotRegistered)
		assert.Equal(t, domain.ProtectedField{}, field)
	})
}

func TestFieldUseCase_ProtectReveal(t *testing.T) {
	ctx := context.Background()

	t.Run("round-trip", func(t *testing.T) {
		useCase, _ := newTestEngine(t, "users")

		encrypted, err := useCase.Protect(ctx, "users", "4111111111111111")
		require.NoError(t, err)
		assert.NotEqual(t, "4111111111111111", encrypted)

		plaintext, err := useCase.Reveal(ctx, "users", encrypted)
		require.NoError(t, err)
		assert.Equal(t, "4111111111111111", plaintext)
	})

	t.Run("empty-input identity", func(t *testing.T) {
		useCase, _ := newTestEngine(t, "users")

		encrypted, err := useCase.Protect(ctx, "users", "")
		require.NoError(t, err)
		assert.Equal(t, "", encrypted)

		plaintext, err := useCase.Reveal(ctx, "users", "")
		require.NoError(t, err)
		assert.Equal(t, "", plaintext)
	})

	t.Run("dataset isolation", func(t *testing.T) {
		useCase, _ := newTestEngine(t, "users", "cards")

		usersEncrypted, err := useCase.Protect(ctx, "users", "alice@example")
		require.NoError(t, err)
		cardsEncrypted, err := useCase.Protect(ctx, "cards", "alice@example")
		require.NoError(t, err)
		assert.NotEqual(t, usersEncrypted, cardsEncrypted)

		// Ciphertext from one dataset must not decrypt under another.
		plaintext, err := useCase.Reveal(ctx, "cards", usersEncrypted)
		assert.ErrorIs(t, err, domain.ErrDecryptionFailed)
		assert.Equal(t, "", plaintext)

		usersHash, err := useCase.SearchHash(ctx, "users", "alice@example")
		require.NoError(t, err)
		cardsHash, err := useCase.SearchHash(ctx, "cards", "alice@example")
		require.NoError(t, err)
		assert.NotEqual(t, usersHash, cardsHash)
	})

	t.Run("missing salt touches no cache entry", func(t *testing.T) {
		useCase, keyCache := newTestEngine(t, "users")

		_, err := useCase.Protect(ctx, "unregistered_dataset", "alice@example")
		assert.ErrorIs(t, err, domain.ErrSaltNotRegistered)
		assert.Equal(t, 0, keyCache.Len())
	})
}

func TestFieldUseCase_SearchHash(t *testing.T) {
	ctx := context.Background()

	t.Run("deterministic across calls", func(t *testing.T) {
		useCase, _ := newTestEngine(t, "users")

		first, err := useCase.SearchHash(ctx, "users", "alice@example")
		require.NoError(t, err)

		second, err := useCase.SearchHash(ctx, "users", "alice@example")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("empty plaintext produces empty hash", func(t *testing.T) {
		useCase, _ := newTestEngine(t, "users")

		hash, err := useCase.SearchHash(ctx, "users", "")
		require.NoError(t, err)
		assert.Equal(t, "", hash)
	})
}

func TestFieldUseCase_TryVariants(t *testing.T) {
	ctx := context.Background()

	t.Run("TryReveal returns plaintext on success", func(t *testing.T) {
		useCase, _ := newTestEngine(t, "users")

		encrypted, err := useCase.Protect(ctx, "users", "alice@example")
		require.NoError(t, err)

		assert.Equal(t, "alice@example", useCase.TryReveal(ctx, "users", encrypted, "<fallback>"))
	})

	t.Run("TryReveal returns fallback on corrupt input", func(t *testing.T) {
		useCase, _ := newTestEngine(t, "users")

		assert.Equal(t, "<fallback>", useCase.TryReveal(ctx, "users", "corrupt!!!", "<fallback>"))
	})

	t.Run("TryProtect returns fallback on unregistered dataset", func(t *testing.T) {
		useCase, _ := newTestEngine(t, "users")

		assert.Equal(t, "", useCase.TryProtect(ctx, "unregistered_dataset", "alice@example", ""))
	})
}
