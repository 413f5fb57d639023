package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/kkpa/jbh/internal"
	"github.com/kkpa/jbh/internal/accounts"
	accountsPostgres "github.com/kkpa/jbh/internal/accounts/postgres"
	"github.com/kkpa/jbh/internal/category"
	categoryPostgres "github.com/kkpa/jbh/internal/category/postgres"
	"github.com/kkpa/jbh/internal/core/events"
	"github.com/kkpa/jbh/internal/transport"
	"github.com/kkpa/jbh/internal/transport/rest"
	"github.com/kkpa/jbh/internal/transport/swagger"
	"github.com/kkpa/jbh/pkg/logger"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
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
	Config   *internal.Config
	DB       *sqlx.DB
	Gorm     *gorm.DB
	EventBus *events.EventBus
	Router   *chi.Mux
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}
	defer deps.DB.Close()

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		deps.Logger.Info("Starting HTTP server", "address", addr, "app", deps.Config.Application.Name)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		deps.Logger.Info("Shutdown signal received")
		shutdownCtx, cancel := internal.WithTimeout(context.Background(), deps.Config.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			deps.Logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) {
	base := transport.NewBaseHandler(deps.Logger, deps.Config.Application.Name)

	categoryService := category.NewService(categoryPostgres.NewCategoryRepository(deps.Gorm), deps.EventBus, deps.Logger)
	accountsService := accounts.NewService(accountsPostgres.NewAccountsRepository(deps.Gorm), deps.EventBus, deps.Logger)

	rest.RegisterAllRoutes(deps.Router, rest.Handlers{
		Base:       base,
		Health:     rest.NewHealthHandler(base, deps.DB),
		Categories: category.NewHandler(base, categoryService),
		Accounts:   accounts.NewHandler(base, accountsService),
	})
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	lg := logger.LoggerWrapper()

	if _, err := swagger.Load(context.Background()); err != nil {
		return nil, err
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db, config.Database)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	bus := events.NewEventBus(lg)
	bus.SubscribeEntity(events.AuditLogHandler(lg), category.EntityName, accounts.EntityName)

	return &Dependencies{
		Config:   config,
		DB:       db,
		Gorm:     gormDB,
		EventBus: bus,
		Router:   chi.NewRouter(),
		Logger:   lg,
	}, nil
}

// initDB opens the shared pgx connection pool.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return dbConn, nil
}

// initGorm runs gorm on top of the pool opened by initDB so both share
// connections and limits.
func initGorm(db *sqlx.DB, cfg internal.DatabaseConfig) (*gorm.DB, error) {
	level := gormLogger.Warn
	if cfg.LogQueries {
		level = gormLogger.Info
	}
	return gorm.Open(postgres.New(postgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(level),
	})
}
