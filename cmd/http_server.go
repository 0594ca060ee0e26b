package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/assetdesk/asset-management/internal"
	"github.com/assetdesk/asset-management/internal/asset"
	assetPostgres "github.com/assetdesk/asset-management/internal/asset/postgres"
	"github.com/assetdesk/asset-management/internal/auth"
	authPostgres "github.com/assetdesk/asset-management/internal/auth/postgres"
	"github.com/assetdesk/asset-management/internal/category"
	categoryPostgres "github.com/assetdesk/asset-management/internal/category/postgres"
	"github.com/assetdesk/asset-management/internal/core/events"
	"github.com/assetdesk/asset-management/internal/request"
	requestPostgres "github.com/assetdesk/asset-management/internal/request/postgres"
	"github.com/assetdesk/asset-management/internal/transport"
	"github.com/assetdesk/asset-management/internal/transport/rest"
	"github.com/assetdesk/asset-management/internal/user"
	userPostgres "github.com/assetdesk/asset-management/internal/user/postgres"
	"github.com/assetdesk/asset-management/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	GormDB *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger

	Policy          *auth.Policy
	AuthHandler     *auth.Handler
	UserHandler     *user.Handler
	AssetHandler    *asset.Handler
	RequestHandler  *request.Handler
	CategoryHandler *category.Handler
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.DB, deps.Policy,
		deps.AuthHandler, deps.UserHandler, deps.AssetHandler, deps.RequestHandler, deps.CategoryHandler,
		deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	lg := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	eventBus := events.NewEventBus(lg)
	policy := &auth.Policy{}

	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authRepo := authPostgres.NewRepository(gormDB)
	authService := auth.NewService(authRepo, tokenGen, config.Security.BCryptCost)
	authHandler := auth.NewHandler(authService)

	userRepo := userPostgres.NewUserRepository(gormDB)
	userService := user.NewService(userRepo, authService, policy, lg)
	userHandler := user.NewHandler(userService, authService)

	categoryRepo := categoryPostgres.NewCategoryRepository(gormDB)
	categoryService := category.NewService(categoryRepo, lg)
	categoryHandler := category.NewHandler(transport.NewBaseHandler(lg), categoryService)

	assetRepo := assetPostgres.NewAssetRepository(gormDB)
	assetService := asset.NewService(assetRepo, policy, categoryService, eventBus, lg)
	assetHandler := asset.NewHandler(assetService)

	requestRepo := requestPostgres.NewRequestRepository(gormDB)
	requestService := request.NewService(requestRepo, policy, eventBus, lg)
	requestHandler := request.NewHandler(requestService)

	return &Dependencies{
		Config: config,
		Logger: lg,
		DB:     db,
		GormDB: gormDB,
		Router: chi.NewRouter(),

		Policy:          policy,
		AuthHandler:     authHandler,
		UserHandler:     userHandler,
		AssetHandler:    assetHandler,
		RequestHandler:  requestHandler,
		CategoryHandler: categoryHandler,
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm layers GORM over the existing pgx connection pool
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormPostgres.New(gormPostgres.Config{
		Conn: db.DB,
	}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Warn),
	})
}
