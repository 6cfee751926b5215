package app

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/orgflow/internal/orgflow/http"
	"github.com/aussiebroadwan/orgflow/internal/orgflow/live"
	"github.com/aussiebroadwan/orgflow/internal/orgflow/metrics"
	"github.com/aussiebroadwan/orgflow/internal/orgflow/service"
	"github.com/aussiebroadwan/orgflow/internal/orgflow/store"
	"github.com/aussiebroadwan/orgflow/internal/orgflow/store/drivers/postgres"
	"github.com/aussiebroadwan/orgflow/internal/orgflow/store/drivers/sqlite"
	"github.com/aussiebroadwan/orgflow/pkg/cryptox"
	"github.com/aussiebroadwan/orgflow/pkg/jwtx"
	"github.com/aussiebroadwan/orgflow/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the orgflow service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	signer   jwtx.Signer
	verifier jwtx.Verifier
	hasher   *cryptox.PasswordHasher
	metrics  *metrics.Metrics

	// Live delivery
	registry    *live.Registry
	dispatcher  *live.Dispatcher
	heartbeater *live.Heartbeater

	// Services
	authorizer          *service.Authorizer
	userService         *service.UserService
	organizationService *service.OrganizationService
	inviteService       *service.InviteService
	teamService         *service.TeamService
	taskService         *service.TaskService
	commentService      *service.CommentService
	notificationService *service.NotificationService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "orgflow",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		metrics: metrics.New(),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initCrypto(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initLive()
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app.heartbeater.Start(ctx)

	app.logger.Info("orgflow starting", "port", app.cfg.Port, "version", BuildVersion, "driver", app.cfg.DatabaseDriver)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.heartbeater.Stop()
			app.registry.Close()
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		// Perform graceful shutdown
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application. Live streams never finish
// on their own, so the registry is closed before the server drains.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down orgflow...")

	app.heartbeater.Stop()
	app.registry.Close()

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("orgflow stopped")
	return nil
}

// Handler exposes the router, used by tests that serve the application
// without binding a port.
func (app *Application) Handler() http.Handler {
	return app.router
}

// initDatabase opens the configured store and applies migrations
func (app *Application) initDatabase() error {
	var (
		db      store.Store
		migrate func() error
	)

	switch app.cfg.DatabaseDriver {
	case "postgres":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		pg, err := postgres.NewStore(ctx, app.cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		db, migrate = pg, pg.ApplyMigrations
	default:
		dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
		if app.cfg.DatabaseFile == ":memory:" {
			dsn = ":memory:"
		}
		lite, err := sqlite.NewStore(dsn)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		db, migrate = lite, lite.ApplyMigrations
	}
	app.db = db

	if err := migrate(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

// initCrypto loads the password pepper and the token signing secret
func (app *Application) initCrypto() error {
	pepper, err := cryptox.LoadOrCreatePepper(app.cfg.PepperFile)
	if err != nil {
		return fmt.Errorf("failed to load pepper: %w", err)
	}
	app.hasher = cryptox.NewPasswordHasher(pepper)

	secret := []byte(app.cfg.JWTSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return fmt.Errorf("failed to generate jwt secret: %w", err)
		}
		app.logger.Warn("JWT_SECRET not set, using a random secret; tokens will not survive a restart")
	}

	signer, err := jwtx.NewSignerHS256(secret)
	if err != nil {
		return fmt.Errorf("failed to create token signer: %w", err)
	}
	app.signer = signer
	app.verifier = jwtx.NewVerifierHS256(secret, app.cfg.Issuer, 30*time.Second)
	return nil
}

// initLive creates the connection registry and its background heartbeat
func (app *Application) initLive() {
	app.registry = live.NewRegistry(app.logger, app.metrics)
	app.dispatcher = live.NewDispatcher(app.registry, app.metrics)
	app.heartbeater = live.NewHeartbeater(app.dispatcher, app.logger, app.cfg.HeartbeatInterval)
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.authorizer = &service.Authorizer{Store: app.db, Metrics: app.metrics}

	app.notificationService = &service.NotificationService{
		Store:     app.db,
		Authz:     app.authorizer,
		Publisher: app.dispatcher,
		Metrics:   app.metrics,
	}

	app.userService = &service.UserService{
		Store:     app.db,
		Hasher:    app.hasher,
		Signer:    app.signer,
		Issuer:    app.cfg.Issuer,
		AccessTTL: app.cfg.AccessTokenTTL,
	}
	app.organizationService = &service.OrganizationService{Store: app.db, Authz: app.authorizer}
	app.inviteService = &service.InviteService{
		Store:         app.db,
		Authz:         app.authorizer,
		Notifications: app.notificationService,
		TTL:           app.cfg.InviteTTL,
	}
	app.teamService = &service.TeamService{Store: app.db, Authz: app.authorizer}
	app.taskService = &service.TaskService{
		Store:         app.db,
		Authz:         app.authorizer,
		Notifications: app.notificationService,
	}
	app.commentService = &service.CommentService{Store: app.db, Authz: app.authorizer}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.verifier,
		BuildVersion,
		app.db,
		app.registry,
		app.metrics,
		app.logger,
	)

	if app.cfg.FrontendURL != "" {
		router.AllowedOrigins = []string{app.cfg.FrontendURL}
	}
	router.StreamBuffer = app.cfg.StreamBuffer

	// Wire services to router
	router.UserService = app.userService
	router.OrganizationService = app.organizationService
	router.InviteService = app.inviteService
	router.TeamService = app.teamService
	router.TaskService = app.taskService
	router.CommentService = app.commentService
	router.NotificationService = app.notificationService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
