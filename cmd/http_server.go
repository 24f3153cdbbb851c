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

	"github.com/frahmantamala/enterprise-access/internal"
	"github.com/frahmantamala/enterprise-access/internal/auth"
	"github.com/frahmantamala/enterprise-access/internal/core/events"
	"github.com/frahmantamala/enterprise-access/internal/enterprise"
	enterprisePostgres "github.com/frahmantamala/enterprise-access/internal/enterprise/postgres"
	"github.com/frahmantamala/enterprise-access/internal/permission"
	permissionPostgres "github.com/frahmantamala/enterprise-access/internal/permission/postgres"
	"github.com/frahmantamala/enterprise-access/internal/role"
	rolePostgres "github.com/frahmantamala/enterprise-access/internal/role/postgres"
	"github.com/frahmantamala/enterprise-access/internal/session"
	sessionPostgres "github.com/frahmantamala/enterprise-access/internal/session/postgres"
	"github.com/frahmantamala/enterprise-access/internal/transport"
	"github.com/frahmantamala/enterprise-access/internal/transport/rest"
	"github.com/frahmantamala/enterprise-access/internal/transport/swagger"
	"github.com/frahmantamala/enterprise-access/internal/user"
	userPostgres "github.com/frahmantamala/enterprise-access/internal/user/postgres"
	"github.com/frahmantamala/enterprise-access/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
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
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	log := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// gorm shares the pgx connection pool instead of opening its own.
	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	if err := swagger.ValidateSpec("./api/openapi.yml"); err != nil {
		log.Warn("openapi spec validation failed", "error", err)
	}

	baseHandler := transport.NewBaseHandler(log)
	eventBus := events.NewEventBus(log)
	auth.NewEventHandler(log).RegisterEventHandlers(eventBus)

	permissionRepo := permissionPostgres.NewPermissionRepository(gormDB)
	roleRepo := rolePostgres.NewRoleRepository(gormDB)
	sessionRepo := sessionPostgres.NewSessionRepository(gormDB)
	userRepo := userPostgres.NewUserRepository(gormDB)
	enterpriseRepo := enterprisePostgres.NewEnterpriseRepository(gormDB)

	permissionService := permission.NewService(permissionRepo, log)
	roleService := role.NewService(roleRepo, permissionService, log)
	sessionService := session.NewService(sessionRepo, log)
	userService := user.NewService(userRepo, sessionService, roleService, eventBus, config.Security.BCryptCost, log)
	enterpriseService := enterprise.NewService(enterpriseRepo, userService, roleService, permissionService, log)

	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(userService, sessionService, permissionService, tokenGen, eventBus, log)

	authHandler := auth.NewHandler(baseHandler, authService)
	enterpriseHandler := enterprise.NewHandler(baseHandler, enterpriseService)
	userHandler := user.NewHandler(baseHandler, userService)
	roleHandler := role.NewHandler(baseHandler, roleService)
	permissionHandler := permission.NewHandler(baseHandler, permissionService)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, db.DB, authHandler, enterpriseHandler, userHandler, roleHandler, permissionHandler, log)

	return &Dependencies{
		Config: config,
		Logger: log,
		DB:     db,
		Router: router,
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
