package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/nhattaihuynh/badmintonSocialNetwork/internal/identity/http"
	"github.com/nhattaihuynh/badmintonSocialNetwork/internal/identity/service"
	"github.com/nhattaihuynh/badmintonSocialNetwork/internal/identity/store"
	"github.com/nhattaihuynh/badmintonSocialNetwork/internal/identity/store/drivers/sqlite"
	"github.com/nhattaihuynh/badmintonSocialNetwork/pkg/cryptox"
	"github.com/nhattaihuynh/badmintonSocialNetwork/pkg/jwtx"
	"github.com/nhattaihuynh/badmintonSocialNetwork/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application wires the identity service together: store, signing keys,
// services, and the HTTP server.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db    store.Store
	codec *jwtx.Codec
	keys  *jwtx.KeySet

	authService *service.AuthService
	userService *service.UserService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "identity-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	codec, keys, err := InitSigningKeys(app.cfg, app.logger)
	if err != nil {
		return nil, err
	}
	app.codec = codec
	app.keys = keys

	app.initServices()
	app.initHTTP()

	return app, nil
}

func (app *Application) initDatabase() error {
	dsn := "file:" + app.cfg.DatabaseFile +
		"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"

	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	app.db = db
	app.logger.Info("database ready", "file", app.cfg.DatabaseFile)
	return nil
}

func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Codec: app.codec,
		Store: app.db,
	}
	app.userService = service.NewUserService(app.db)
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keys,
		app.codec,
		BuildVersion,
		app.db,
		app.logger,
		app.cfg.CORSOrigins,
	)
	router.AuthService = app.authService
	router.UserService = app.userService
	router.ApplyRoutes()

	app.router = router
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("identity service starting",
		"port", app.cfg.Port,
		"issuer", app.cfg.Issuer,
		"version", BuildVersion,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down identity service...")

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

	app.logger.Info("identity service stopped")
	return nil
}
