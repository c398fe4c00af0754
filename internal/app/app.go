package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dipulse/dipulse/config"
	"github.com/dipulse/dipulse/internal/api"
	"github.com/dipulse/dipulse/internal/bday"
	"github.com/dipulse/dipulse/internal/provider/anbima"
	"github.com/dipulse/dipulse/internal/provider/b3"
	"github.com/dipulse/dipulse/internal/service"
	"github.com/dipulse/dipulse/internal/storage"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Connects to PostgreSQL using InitPostgres().
//   - Initializes the repository layer (SnapshotRepository).
//   - Builds the upstream provider clients (B3 futures, Anbima maturities).
//   - Creates the service and HTTP handler layers.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources (e.g., DB connection).
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	// Load global configuration
	cfg := config.AppConfig

	// Connect to PostgreSQL
	// indirection for unit testing
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	// Initialize repository layer (responsible for DB access)
	repo := storage.NewSnapshotRepository(db)

	// Upstream market-data clients
	timeout := time.Duration(cfg.Providers.TimeoutSeconds) * time.Second
	futures := b3.NewClient(cfg.Providers.B3BaseURL, timeout)
	maturities := anbima.NewClient(cfg.Providers.AnbimaBaseURL, timeout)

	// Trading-session window (exchange-local time)
	session, err := bday.NewSession(cfg.Curve.SessionOpen, cfg.Curve.SessionClose, nil)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to build trading session: %w", err)
	}

	// Initialize service layer (business logic)
	svc := service.NewCurveService(futures, maturities, repo, service.Options{
		ContractCode: cfg.Providers.ContractCode,
		GroupByMonth: cfg.Curve.GroupByMonth,
		RateScale:    cfg.Curve.RateScale,
		Session:      session,
	})

	// Initialize HTTP handler layer (business logic to HTTP mapping)
	handler := api.NewHandler(svc, cfg.Curve.RefreshSeconds)

	// Setup Gin router with routes
	router := api.NewRouter(handler)

	// Register health and readiness probes
	healthHandler := api.NewHealthHandler(db.Ping)
	healthHandler.Register(router)

	// Cleanup resources on shutdown
	cleanup := func() {
		_ = db.Close()
	}

	return router, cleanup, nil
}
