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

	"github.com/debashispanigrahi/smartbookstore/internal/bookstore/command"
	httpapi "github.com/debashispanigrahi/smartbookstore/internal/bookstore/http"
	"github.com/debashispanigrahi/smartbookstore/internal/bookstore/store"
	"github.com/debashispanigrahi/smartbookstore/internal/bookstore/store/drivers/sqlite"
	"github.com/debashispanigrahi/smartbookstore/pkg/jwtx"
	"github.com/debashispanigrahi/smartbookstore/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the bookstore service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	signer   jwtx.Signer
	verifier jwtx.Verifier

	dispatcher *command.Dispatcher

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "smartbookstore",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initTokens(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initDispatcher()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("bookstore service starting", "port", app.cfg.Port, "version", BuildVersion)

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

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down bookstore service...")

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

	app.logger.Info("bookstore service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations.
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initTokens builds the signer and verifier from the shared secret.
func (app *Application) initTokens() error {
	signer, err := jwtx.NewSignerHS256([]byte(app.cfg.SecretKey))
	if err != nil {
		return fmt.Errorf("failed to initialize token signer: %w", err)
	}
	app.signer = signer
	app.verifier = jwtx.NewVerifierHS256(
		[]byte(app.cfg.SecretKey),
		app.cfg.Issuer,
		[]string{app.cfg.Audience},
	)
	return nil
}

// initDispatcher registers every operation handler.
func (app *Application) initDispatcher() {
	tokens := &command.TokenIssuer{
		Signer:   app.signer,
		Issuer:   app.cfg.Issuer,
		Audience: []string{app.cfg.Audience},
		TTL:      app.cfg.TokenTTL,
	}

	d := command.NewDispatcher()
	d.Register(command.OpLogin, &command.LoginHandler{Store: app.db, Tokens: tokens})
	d.Register(command.OpRegister, &command.RegisterHandler{Store: app.db, Tokens: tokens})
	d.Register(command.OpRefreshToken, &command.RefreshTokenHandler{Store: app.db, Tokens: tokens})
	d.Register(command.OpGetProfile, &command.GetProfileHandler{Store: app.db})
	d.Register(command.OpDeactivateUser, &command.DeactivateUserHandler{Store: app.db})
	d.Register(command.OpListBooks, &command.ListBooksHandler{Store: app.db})
	d.Register(command.OpGetBook, &command.GetBookHandler{Store: app.db})
	d.Register(command.OpCreateBook, &command.CreateBookHandler{Store: app.db})
	d.Register(command.OpUpdateBook, &command.UpdateBookHandler{Store: app.db})
	d.Register(command.OpDeleteBook, &command.DeleteBookHandler{Store: app.db})

	app.dispatcher = d
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.verifier,
		BuildVersion,
		app.db,
		app.dispatcher,
		app.logger,
	)
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
