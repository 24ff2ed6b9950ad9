// cmd/aes-vault-rest-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/MGTheTrain/aes-vault/internal/api/rest/v1"
	"github.com/MGTheTrain/aes-vault/internal/app"
	"github.com/MGTheTrain/aes-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/aes-vault/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/aes-vault/internal/pkg/config"
	"github.com/MGTheTrain/aes-vault/internal/pkg/logger"
	"github.com/gin-contrib/cors"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration from the environment and an optional .env file
	var restConfig config.RestConfig
	if err := config.Load(&restConfig, envFiles()...); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	log, err := logger.NewLogger(&restConfig.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if closer, ok := log.(io.Closer); ok {
		defer func() {
			_ = closer.Close()
		}()
	}

	services, defaultKeyLength, err := initializeBufferEngines(&restConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize AES engines: %w", err)
	}

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(&restConfig, services, defaultKeyLength, log)
}

// envFiles returns the file named by ENV_FILE, if set
func envFiles() []string {
	if path := os.Getenv("ENV_FILE"); path != "" {
		return []string{path}
	}
	return nil
}

// initializeBufferEngines builds one CBC buffer engine per key length. The key length of the
// configured default selects the engine used when a request carries no key.
func initializeBufferEngines(cfg *config.RestConfig, log logger.Logger) (v1.AesServices, cryptoalg.KeyLength, error) {
	defaultConfiguration, err := cfg.Aes.ResolveConfiguration()
	if err != nil {
		return nil, 0, err
	}

	transforms, err := cryptography.NewAESTransformFactory(log)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create AES transform factory: %w", err)
	}

	engines, err := app.NewEngineFactory(log, cryptography.NewSecureByteSource(), transforms)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create engine factory: %w", err)
	}

	services := v1.AesServices{}
	for _, configuration := range cryptoalg.Configurations() {
		if configuration.Validate() != nil {
			continue
		}

		var engine *app.AesBufferEngine
		if cfg.Aes.SecureIV {
			engine, err = engines.NewBufferEngine(configuration)
		} else {
			engine, err = engines.NewNonSecureBufferEngine(configuration)
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to create buffer engine for %s: %w", configuration.Name, err)
		}
		services[configuration.KeyLength] = engine
	}

	log.Info(fmt.Sprintf("AES buffer engines initialized, default configuration %s", defaultConfiguration.Name))
	return services, defaultConfiguration.KeyLength, nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.RestConfig, services v1.AesServices, defaultKeyLength cryptoalg.KeyLength, log logger.Logger) error {
	// Setup router
	r := gin.Default()

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.AllowedOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        12 * time.Hour,
	}))

	// Setup API routes
	v1.SetupRoutes(r, services, defaultKeyLength, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting server on port ", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info(fmt.Sprintf("Received signal %v, initiating graceful shutdown", sig))
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
