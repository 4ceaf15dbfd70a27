// Package usecase provides the convenience facade that collaborators
// (storage layer, API layer) call to protect and reveal field values.
package usecase

import (
	"context"

	"github.com/allisson/fieldcrypt/internal/crypto/domain"
)

// FieldUseCase is the call surface exposed to collaborators.
//
// All methods are synchronous and CPU-bound; the context carries request
// metadata for instrumentation, not cancellation. Configuration errors
// (missing master key or salt) and decryption errors propagate by default;
// the Try variants exist only for display/logging call sites that must never
// fail on corrupt historical data and must not feed business logic.
type FieldUseCase interface {
	// Protect encrypts a field value for the named dataset.
	Protect(ctx context.Context, dataset, plaintext string) (string, error)

	// Reveal decrypts a value previously produced by Protect for the same dataset.
	Reveal(ctx context.Context, dataset, encrypted string) (string, error)

	// SearchHash computes the deterministic lookup hash of a value for the dataset.
	SearchHash(ctx context.Context, dataset, plaintext string) (string, error)

	// ProtectWithHash encrypts and hashes a value in one call, for a single
	// atomic persistence write of both columns.
	ProtectWithHash(ctx context.Context, dataset, plaintext string) (domain.ProtectedField, error)

	// TryProtect is the failure-tolerant Protect: on any error it returns
	// fallback instead of propagating.
	TryProtect(ctx context.Context, dataset, plaintext, fallback string) string

	// TryReveal is the failure-tolerant Reveal: on any error it returns
	// fallback instead of propagating.
	TryReveal(ctx context.Context, dataset, encrypted, fallback string) string
}
