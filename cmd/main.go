package main

//
//  @title           dipulse API
//  @version         1.0
//  @description     DI1 futures curve normalization & variation service.
//  @termsOfService  https://github.com/dipulse/dipulse
//  @contact.name    API Support
//  @contact.url     https://github.com/dipulse/dipulse
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        curve
//  @tag.description Endpoints for querying DI1 curve panels and snapshots
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dipulse/dipulse/config"
	_ "github.com/dipulse/dipulse/docs" // swagger docs
	"github.com/dipulse/dipulse/internal/app"
	"github.com/dipulse/dipulse/internal/logger"
	"github.com/dipulse/dipulse/internal/provider/b3"
	"github.com/dipulse/dipulse/internal/snapshot"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., DB connections).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// main is the entry point of the dipulse application.
//
// Modes (selected via --mode flag):
//   - snapshot: Fetches and persists settled DI1 snapshots for the last N
//     business days before today.
//   - api:      Starts the REST API that serves curve panels and snapshots.
//
// Flags:
//   - --mode:     Execution mode ("snapshot" or "api"). Default: "api".
//   - --days:     Number of past business days to snapshot (1-7). Default: 1.
//   - --parallel: How many days to fetch concurrently (0=auto up to CPU, max 7).
//   - --force:    Refetch days even if already stored (deletes the stored day first).
//   - --port:     Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "api", "Mode: snapshot or api")
	days := flag.Int("days", 1, "Number of past business days to snapshot (1-7)")
	parallel := flag.Int("parallel", 0, "How many days to fetch concurrently (0=auto up to CPU, max 7)")
	force := flag.Bool("force", false, "Refetch days even if already stored (deletes existing snapshot for that day)")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "snapshot":
		// Snapshot mode: fetch settled curves and persist them
		logger.L().Info().Msg("running snapshot batch")

		// Direct DB connection for the batch
		db, err := app.InitPostgres(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = db.Close() }()

		futures := b3.NewClient(
			config.AppConfig.Providers.B3BaseURL,
			time.Duration(config.AppConfig.Providers.TimeoutSeconds)*time.Second,
		)

		if err := snapshot.FetchLastDays(ctx, futures, db, config.AppConfig.Providers.ContractCode, *days, *parallel, *force); err != nil {
			logger.L().Fatal().Err(err).Msg("snapshot batch failed")
		}
		logger.L().Info().Msg("snapshot batch completed successfully")

	case "api":
		// API mode: start the HTTP server
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
