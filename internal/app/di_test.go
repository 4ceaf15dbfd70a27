package app

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/allisson/fieldcrypt/internal/config"
	cryptoDomain "github.com/allisson/fieldcrypt/internal/crypto/domain"
	"github.com/allisson/fieldcrypt/internal/metrics"
	"github.com/allisson/fieldcrypt/internal/testutil"
)

// TestNewContainer verifies that a new container can be created with a valid configuration.
func TestNewContainer(t *testing.T) {
	cfg := &config.Config{
		LogLevel:         "info",
		MetricsEnabled:   true,
		MetricsNamespace: "fieldcrypt",
		MetricsHost:      "localhost",
		MetricsPort:      8081,
	}

	container := NewContainer(cfg)

	if container == nil {
		t.Fatal("expected non-nil container")
	}

	if container.Config() != cfg {
		t.Error("container config does not match provided config")
	}
}

// TestContainerLogger verifies that the logger can be retrieved from the container.
func TestContainerLogger(t *testing.T) {
	cfg := &config.Config{
		LogLevel: "debug",
	}

	container := NewContainer(cfg)
	logger := container.Logger()

	if logger == nil {
		t.Fatal("expected non-nil logger")
	}

	// Calling Logger() again should return the same instance (singleton)
	logger2 := container.Logger()
	if logger != logger2 {
		t.Error("expected same logger instance on multiple calls")
	}
}

// TestContainerLoggerDefaultLevel verifies that logger defaults to info level.
func TestContainerLoggerDefaultLevel(t *testing.T) {
	cfg := &config.Config{
		LogLevel: "invalid",
	}

	container := NewContainer(cfg)
	logger := container.Logger()

	if logger == nil {
		t.Fatal("expected non-nil logger")
	}
}

// TestContainerInitializationErrors verifies that initialization errors are properly handled.
func TestContainerInitializationErrors(t *testing.T) {
	ctx := context.Background()

	// Create a container with an invalid master key
	cfg := &config.Config{
		MasterKey: "not-base64!!!",
	}

	container := NewContainer(cfg)

	// Attempting to get the master key should return an error
	_, err := container.MasterKey(ctx)
	if err == nil {
		t.Error("expected error when loading an invalid master key")
	}

	// Attempting to get the master key again should return the same error
	_, err2 := container.MasterKey(ctx)
	if err2 == nil {
		t.Error("expected error on second call to MasterKey()")
	}

	// Dependent components should propagate the error
	if _, err := container.KeyCache(ctx); err == nil {
		t.Error("expected key cache initialization to fail")
	}
	if _, err := container.FieldUseCase(ctx); err == nil {
		t.Error("expected field use case initialization to fail")
	}
}

// TestContainerLazyInitialization verifies that components are only initialized when accessed.
func TestContainerLazyInitialization(t *testing.T) {
	cfg := &config.Config{
		LogLevel: "info",
	}

	container := NewContainer(cfg)

	// At this point, no components should be initialized
	if container.logger != nil {
		t.Error("expected logger to be nil before first access")
	}

	// Access logger
	logger := container.Logger()
	if logger == nil {
		t.Fatal("expected non-nil logger")
	}

	// Now logger should be initialized
	if container.logger == nil {
		t.Error("expected logger to be initialized after access")
	}
}

// TestContainerMetricsDisabled verifies the metrics wiring when metrics are off.
func TestContainerMetricsDisabled(t *testing.T) {
	cfg := &config.Config{
		MetricsEnabled: false,
	}

	container := NewContainer(cfg)

	provider, err := container.MetricsProvider()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider != nil {
		t.Error("expected nil metrics provider when metrics are disabled")
	}

	server, err := container.MetricsServer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if server != nil {
		t.Error("expected nil metrics server when metrics are disabled")
	}

	businessMetrics, err := container.BusinessMetrics()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := businessMetrics.(*metrics.NoOpBusinessMetrics); !ok {
		t.Errorf("expected no-op business metrics, got %T", businessMetrics)
	}
}

// TestContainerFieldUseCase verifies the full wiring from configuration to the facade.
func TestContainerFieldUseCase(t *testing.T) {
	ctx := context.Background()

	masterKey := testutil.RandomKey(t)
	testutil.SetSalt(t, "users")

	cfg := &config.Config{
		LogLevel:         "info",
		MasterKey:        base64.StdEncoding.EncodeToString(masterKey),
		MetricsEnabled:   true,
		MetricsNamespace: "fieldcrypt_test",
	}

	container := NewContainer(cfg)
	defer func() {
		if err := container.Shutdown(ctx); err != nil {
			t.Errorf("unexpected shutdown error: %v", err)
		}
	}()

	useCase, err := container.FieldUseCase(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	encrypted, err := useCase.Protect(ctx, "users", "alice@example")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	plaintext, err := useCase.Reveal(ctx, "users", encrypted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plaintext != "alice@example" {
		t.Errorf("expected round-trip plaintext, got %q", plaintext)
	}

	// Calling FieldUseCase() again should return the same instance (singleton)
	useCase2, err := container.FieldUseCase(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if useCase != useCase2 {
		t.Error("expected same field use case instance on multiple calls")
	}
}

// TestContainerShutdownZeroesMasterKey verifies key material is wiped on shutdown.
func TestContainerShutdownZeroesMasterKey(t *testing.T) {
	ctx := context.Background()

	cfg := &config.Config{
		MasterKey: base64.StdEncoding.EncodeToString(testutil.RandomKey(t)),
	}

	container := NewContainer(cfg)

	masterKey, err := container.MasterKey(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Close() nils the field, so capture the backing slice before shutdown.
	key := masterKey.Key
	if len(key) != cryptoDomain.KeySize {
		t.Fatalf("expected %d-byte master key, got %d", cryptoDomain.KeySize, len(key))
	}

	if err := container.Shutdown(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if masterKey.Key != nil {
		t.Error("expected master key field to be nil after shutdown")
	}
	for _, b := range key {
		if b != 0 {
			t.Fatal("expected master key bytes to be zeroed after shutdown")
		}
	}
}
