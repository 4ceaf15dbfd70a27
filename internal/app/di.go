// Package app provides a dependency injection container for assembling the
// field encryption engine and its observability components.
package app

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/allisson/fieldcrypt/internal/config"
	cryptoDomain "github.com/allisson/fieldcrypt/internal/crypto/domain"
	cryptoService "github.com/allisson/fieldcrypt/internal/crypto/service"
	cryptoUseCase "github.com/allisson/fieldcrypt/internal/crypto/usecase"
	apphttp "github.com/allisson/fieldcrypt/internal/http"
	"github.com/allisson/fieldcrypt/internal/metrics"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
//
// Each container owns its own key cache, so tests can build isolated engines
// without sharing process-global key state.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics
	metricsServer   *apphttp.MetricsServer

	// Crypto components
	kmsService   cryptoService.KMSService
	masterKey    *cryptoDomain.MasterKey
	saltProvider cryptoService.SaltProvider
	keyCache     cryptoService.KeyCache
	fieldUseCase cryptoUseCase.FieldUseCase

	// Initialization flags
	loggerInit          sync.Once
	metricsProviderInit sync.Once
	businessMetricsInit sync.Once
	metricsServerInit   sync.Once
	kmsServiceInit      sync.Once
	masterKeyInit       sync.Once
	saltProviderInit    sync.Once
	keyCacheInit        sync.Once
	fieldUseCaseInit    sync.Once
	initErrors          map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the structured logger, creating it on first access.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		c.metricsProvider, err = metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. When metrics are
// disabled it returns the no-op implementation.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		var provider *metrics.Provider
		provider, err = c.MetricsProvider()
		if err != nil {
			c.initErrors["businessMetrics"] = err
			return
		}
		if provider == nil {
			c.businessMetrics = metrics.NewNoOpBusinessMetrics()
			return
		}
		c.businessMetrics, err = metrics.NewBusinessMetrics(
			provider.MeterProvider(),
			c.config.MetricsNamespace,
		)
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// MetricsServer returns the metrics HTTP server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*apphttp.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		var provider *metrics.Provider
		provider, err = c.MetricsProvider()
		if err != nil {
			c.initErrors["metricsServer"] = err
			return
		}
		if provider == nil {
			return
		}
		c.metricsServer = apphttp.NewMetricsServer(
			c.config.MetricsHost,
			c.config.MetricsPort,
			c.Logger(),
			provider,
		)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// KMSService returns the KMS service.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// MasterKey returns the master key loaded from the trusted configuration
// source, unwrapping it through the KMS when a key URI is configured.
// Loading happens once per process; a configuration error here must abort startup.
func (c *Container) MasterKey(ctx context.Context) (*cryptoDomain.MasterKey, error) {
	var err error
	c.masterKeyInit.Do(func() {
		loader := cryptoService.NewMasterKeyLoader(c.KMSService())
		c.masterKey, err = loader.Load(ctx, c.config.MasterKey, c.config.KMSKeyURI)
		if err != nil {
			c.initErrors["masterKey"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["masterKey"]; exists {
		return nil, storedErr
	}
	return c.masterKey, nil
}

// SaltProvider returns the dataset salt provider.
func (c *Container) SaltProvider() cryptoService.SaltProvider {
	c.saltProviderInit.Do(func() {
		c.saltProvider = cryptoService.NewEnvSaltProvider()
	})
	return c.saltProvider
}

// KeyCache returns the process-wide derived key cache.
func (c *Container) KeyCache(ctx context.Context) (cryptoService.KeyCache, error) {
	var err error
	c.keyCacheInit.Do(func() {
		var masterKey *cryptoDomain.MasterKey
		masterKey, err = c.MasterKey(ctx)
		if err != nil {
			c.initErrors["keyCache"] = err
			return
		}
		deriver := cryptoService.NewPBKDF2KeyDeriver(c.SaltProvider())
		c.keyCache = cryptoService.NewDerivedKeyCache(masterKey, deriver)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyCache"]; exists {
		return nil, storedErr
	}
	return c.keyCache, nil
}

// FieldUseCase returns the field protection facade, instrumented with metrics.
func (c *Container) FieldUseCase(ctx context.Context) (cryptoUseCase.FieldUseCase, error) {
	var err error
	c.fieldUseCaseInit.Do(func() {
		var keyCache cryptoService.KeyCache
		keyCache, err = c.KeyCache(ctx)
		if err != nil {
			c.initErrors["fieldUseCase"] = err
			return
		}

		var businessMetrics metrics.BusinessMetrics
		businessMetrics, err = c.BusinessMetrics()
		if err != nil {
			c.initErrors["fieldUseCase"] = err
			return
		}

		useCase := cryptoUseCase.NewFieldUseCase(
			keyCache,
			cryptoService.NewAESGCMFieldCipher(),
			cryptoService.NewHMACSearchHasher(),
		)
		c.fieldUseCase = cryptoUseCase.NewFieldUseCaseWithMetrics(useCase, businessMetrics)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["fieldUseCase"]; exists {
		return nil, storedErr
	}
	return c.fieldUseCase, nil
}

// Shutdown flushes metrics and zeroes key material.
func (c *Container) Shutdown(ctx context.Context) error {
	var firstErr error

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if c.masterKey != nil {
		c.masterKey.Close()
	}

	return firstErr
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}
