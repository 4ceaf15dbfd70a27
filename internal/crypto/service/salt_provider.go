package service

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/allisson/fieldcrypt/internal/crypto/domain"
)

// saltEnvPrefix is the naming convention for per-dataset salt slots.
const saltEnvPrefix = "SALT_"

// EnvSaltProvider resolves dataset salts from SALT_<DATASET> environment
// variables, the same trusted configuration source that holds the master key.
//
// Dataset names are mapped to slot names by uppercasing and replacing every
// non-alphanumeric character with an underscore, so the dataset "users"
// resolves to SALT_USERS. Datasets are registered incrementally by
// provisioning new slots; a missing slot is reported at first use, not at
// startup.
type EnvSaltProvider struct{}

// NewEnvSaltProvider creates a new EnvSaltProvider.
func NewEnvSaltProvider() *EnvSaltProvider {
	return &EnvSaltProvider{}
}

// Salt returns the decoded 32-byte salt for the dataset.
//
// Returns ErrSaltNotRegistered naming the dataset when the slot is missing or
// empty, and ErrInvalidSalt when the slot holds malformed base64 or a value
// that does not decode to exactly 32 bytes.
func (p *EnvSaltProvider) Salt(dataset string) ([]byte, error) {
	slot := SaltEnvName(dataset)

	encoded := os.Getenv(slot)
	if encoded == "" {
		return nil, fmt.Errorf("%w: %q (expected %s)", domain.ErrSaltNotRegistered, dataset, slot)
	}

	salt, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not valid base64", domain.ErrInvalidSalt, slot)
	}
	if len(salt) != domain.KeySize {
		domain.Zero(salt)
		return nil, fmt.Errorf(
			"%w: %s must decode to %d bytes, got %d",
			domain.ErrInvalidSalt,
			slot,
			domain.KeySize,
			len(salt),
		)
	}

	return salt, nil
}

// SaltEnvName returns the environment slot name for a dataset.
func SaltEnvName(dataset string) string {
	var b strings.Builder
	b.WriteString(saltEnvPrefix)
	for _, r := range strings.ToUpper(dataset) {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// MapSaltProvider resolves salts from an in-memory map. Used by tests and by
// embedders that source salts from somewhere other than the environment.
type MapSaltProvider struct {
	salts map[string][]byte
}

// NewMapSaltProvider creates a MapSaltProvider over the given dataset->salt map.
func NewMapSaltProvider(salts map[string][]byte) *MapSaltProvider {
	return &MapSaltProvider{salts: salts}
}

// Salt returns the registered salt for the dataset.
func (p *MapSaltProvider) Salt(dataset string) ([]byte, error) {
	salt, ok := p.salts[dataset]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrSaltNotRegistered, dataset)
	}
	if len(salt) != domain.KeySize {
		return nil, fmt.Errorf(
			"%w: salt for %q must be %d bytes, got %d",
			domain.ErrInvalidSalt,
			dataset,
			domain.KeySize,
			len(salt),
		)
	}
	return salt, nil
}
