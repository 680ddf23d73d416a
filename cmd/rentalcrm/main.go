package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/renteq/rentalcrm/internal/core/services"
	"github.com/renteq/rentalcrm/internal/handlers"
	"github.com/renteq/rentalcrm/internal/middleware"
	"github.com/renteq/rentalcrm/internal/platform/config"
	"github.com/renteq/rentalcrm/internal/repositories/database/pgsql"
	"github.com/renteq/rentalcrm/pkg/database"

	portssvc "github.com/renteq/rentalcrm/internal/core/ports/services"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS, metrics, rate limiting)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
	}))
	r.Use(middleware.Metrics())

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit format", slog.String("rate_limit", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter.New(memory.NewStore(), rate)))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handlers.RegisterRoutes(r, cfg, buildServices(dbPool, cfg, logger))

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildServices wires the repositories, collaborators and service facades.
func buildServices(dbPool *pgxpool.Pool, cfg *config.Config, logger *slog.Logger) *portssvc.ServiceContainer {
	inventoryRepo := pgsql.NewPgxInventoryRepository(dbPool)
	dealRepo := pgsql.NewPgxDealRepository(dbPool, inventoryRepo)
	assetRepo := pgsql.NewPgxAssetRepository(dbPool)
	accessoryRepo := pgsql.NewPgxAccessoryRepository(dbPool)
	clientRepo := pgsql.NewPgxClientRepository(dbPool)
	auditRepo := pgsql.NewPgxAuditRepository(dbPool)

	payments := services.NewLogPaymentNotifier(logger)
	documents := services.NewLogDocumentRequester(logger)
	delivery := services.NewLogDeliveryScheduler(logger)

	return &portssvc.ServiceContainer{
		Deal: services.NewDealService(
			dealRepo,
			assetRepo,
			clientRepo,
			accessoryRepo,
			payments,
			auditRepo,
			documents,
			delivery,
			cfg.DefaultLocation,
		),
		Inventory: services.NewInventoryService(inventoryRepo, accessoryRepo, auditRepo),
		Asset:     services.NewAssetService(assetRepo),
		Accessory: services.NewAccessoryService(accessoryRepo),
		Client:    services.NewClientService(clientRepo),
	}
}

// runMigrations applies the SQL migrations in ./migrations before the server
// accepts traffic. A dirty or failed migration aborts startup.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	// Migrations use a standard sql.DB connection via the pgx stdlib driver,
	// separate from the application pool.
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	sourceErr, dbErr := m.Close()
	if upErr != nil && upErr != migrate.ErrNoChange {
		return upErr
	}
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
