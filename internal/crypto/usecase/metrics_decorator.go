package usecase

import (
	"context"
	"time"

	"github.com/allisson/fieldcrypt/internal/crypto/domain"
	"github.com/allisson/fieldcrypt/internal/metrics"
)

// fieldUseCaseWithMetrics decorates FieldUseCase with metrics instrumentation.
// Only operation kind, dataset-independent status, and duration are recorded;
// metrics never carry plaintext, key material, or ciphertext.
type fieldUseCaseWithMetrics struct {
	next    FieldUseCase
	metrics metrics.BusinessMetrics
}

// NewFieldUseCaseWithMetrics wraps a FieldUseCase with metrics recording.
func NewFieldUseCaseWithMetrics(useCase FieldUseCase, m metrics.BusinessMetrics) FieldUseCase {
	return &fieldUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Protect records metrics for field encryption operations.
func (f *fieldUseCaseWithMetrics) Protect(ctx context.Context, dataset, plaintext string) (string, error) {
	start := time.Now()
	encrypted, err := f.next.Protect(ctx, dataset, plaintext)
	f.record(ctx, "protect", start, err)
	return encrypted, err
}

// Reveal records metrics for field decryption operations.
func (f *fieldUseCaseWithMetrics) Reveal(ctx context.Context, dataset, encrypted string) (string, error) {
	start := time.Now()
	plaintext, err := f.next.Reveal(ctx, dataset, encrypted)
	f.record(ctx, "reveal", start, err)
	return plaintext, err
}

// SearchHash records metrics for search hash operations.
func (f *fieldUseCaseWithMetrics) SearchHash(ctx context.Context, dataset, plaintext string) (string, error) {
	start := time.Now()
	hash, err := f.next.SearchHash(ctx, dataset, plaintext)
	f.record(ctx, "search_hash", start, err)
	return hash, err
}

// ProtectWithHash records metrics for combined protect+hash operations.
func (f *fieldUseCaseWithMetrics) ProtectWithHash(
	ctx context.Context,
	dataset, plaintext string,
) (domain.ProtectedField, error) {
	start := time.Now()
	field, err := f.next.ProtectWithHash(ctx, dataset, plaintext)
	f.record(ctx, "protect_with_hash", start, err)
	return field, err
}

// TryProtect delegates to the decorated Protect, which records the metrics.
func (f *fieldUseCaseWithMetrics) TryProtect(ctx context.Context, dataset, plaintext, fallback string) string {
	encrypted, err := f.Protect(ctx, dataset, plaintext)
	if err != nil {
		return fallback
	}
	return encrypted
}

// TryReveal delegates to the decorated Reveal, which records the metrics.
func (f *fieldUseCaseWithMetrics) TryReveal(ctx context.Context, dataset, encrypted, fallback string) string {
	plaintext, err := f.Reveal(ctx, dataset, encrypted)
	if err != nil {
		return fallback
	}
	return plaintext
}

func (f *fieldUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	f.metrics.RecordOperation(ctx, "fieldcrypt", operation, status)
	f.metrics.RecordDuration(ctx, "fieldcrypt", operation, time.Since(start), status)
}
