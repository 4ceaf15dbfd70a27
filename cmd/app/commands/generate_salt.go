package commands

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	cryptoDomain "github.com/allisson/fieldcrypt/internal/crypto/domain"
	cryptoService "github.com/allisson/fieldcrypt/internal/crypto/service"
)

// RunGenerateSalt generates a fresh 256-bit salt for a new dataset and prints
// the SALT_<DATASET> env line the salt provider expects.
//
// A dataset's salt is provisioned once: replacing it changes the derived
// dataset key and invalidates every value previously encrypted for that
// dataset.
func RunGenerateSalt(dataset string, w io.Writer) error {
	if dataset == "" {
		return fmt.Errorf("dataset name is required")
	}

	salt := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(salt); err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}
	defer cryptoDomain.Zero(salt)

	slot := cryptoService.SaltEnvName(dataset)

	fmt.Fprintf(w, "# Salt for dataset %q\n", dataset)
	fmt.Fprintln(w, "# Provision once; replacing it invalidates previously encrypted values.")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s=%q\n", slot, base64.StdEncoding.EncodeToString(salt))

	return nil
}
