// Package testutil provides testing utilities for provisioning key material
// through the environment.
//
// Key Material Setup:
//
//	masterKey := testutil.SetMasterKey(t)
//	usersSalt := testutil.SetSalt(t, "users")
//
// Both helpers use t.Setenv, so the variables are scoped to the test and
// restored automatically.
package testutil

import (
	"crypto/rand"
	"encoding/base64"
	"testing"

	cryptoService "github.com/allisson/fieldcrypt/internal/crypto/service"
)

// SetMasterKey provisions a fresh random 32-byte master key in MASTER_KEY
// and returns the raw key bytes.
func SetMasterKey(t *testing.T) []byte {
	t.Helper()

	key := RandomKey(t)
	t.Setenv("MASTER_KEY", base64.StdEncoding.EncodeToString(key))
	return key
}

// SetSalt provisions a fresh random 32-byte salt in the dataset's SALT_<NAME>
// slot and returns the raw salt bytes.
func SetSalt(t *testing.T, dataset string) []byte {
	t.Helper()

	salt := RandomKey(t)
	t.Setenv(cryptoService.SaltEnvName(dataset), base64.StdEncoding.EncodeToString(salt))
	return salt
}

// RandomKey returns 32 cryptographically random bytes.
func RandomKey(t *testing.T) []byte {
	t.Helper()

	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		t.Fatalf("failed to generate random key: %v", err)
	}
	return key
}
