package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/fmalaspina/vallebot/internal/onboard/http"
	"github.com/fmalaspina/vallebot/internal/onboard/service"
	"github.com/fmalaspina/vallebot/internal/onboard/store/drivers/sqlite"
	"github.com/fmalaspina/vallebot/pkg/embedx"
	"github.com/fmalaspina/vallebot/pkg/llmx"
	"github.com/fmalaspina/vallebot/pkg/retryx"
	"github.com/fmalaspina/vallebot/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags.
var BuildVersion = "v0.1.0"

// Application wires the store, model backends, services and HTTP server.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       *sqlite.Store
	embedder embedx.Embedder
	llm      llmx.Completer

	Invitations   *service.InvitationService
	Onboarding    *service.OnboardingService
	Relationships *service.RelationshipService
	Search        *service.SearchService

	housekeeping *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// NewLogger builds the process logger from cfg.
func NewLogger(cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "vallebot",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
}

// New creates an Application with every dependency initialized and
// migrations applied.
func New(ctx context.Context, cfg Config) (*Application, error) {
	app := &Application{
		cfg:    cfg,
		logger: NewLogger(cfg),
	}

	db, err := OpenStore(cfg, app.logger)
	if err != nil {
		return nil, err
	}
	app.db = db

	if err := app.initModels(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// OpenStore opens the database and applies pending migrations.
func OpenStore(cfg Config, logger *slog.Logger) (*sqlite.Store, error) {
	db, err := sqlite.NewStore(cfg.DatabaseFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}

	logger.Info("database migrations applied successfully", "file", cfg.DatabaseFile)
	return db, nil
}

// Run starts the HTTP server and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeeping.Start()

	app.logger.Info("vallebot starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"embedder", app.embedder.Name(),
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.housekeeping.Stop()
			_ = app.Close()
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

// Shutdown drains in-flight requests and closes the database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down vallebot...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeeping.Stop()

	if err := app.Close(); err != nil {
		return err
	}

	app.logger.Info("vallebot stopped")
	return nil
}

// Close releases the database without touching the HTTP server. One-shot
// commands use it instead of Shutdown.
func (app *Application) Close() error {
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}
	return nil
}

// PurgeProfessional removes a professional and everything that references it.
func (app *Application) PurgeProfessional(ctx context.Context, id int64) error {
	if err := app.db.PurgeProfessional(ctx, id); err != nil {
		return err
	}
	app.logger.Info("professional purged", "professional_id", id)
	return nil
}

func (app *Application) Handler() http.Handler { return app.router }

func (app *Application) initModels(ctx context.Context) error {
	emb, err := embedx.New(ctx, embedx.Config{
		Provider:   app.cfg.EmbeddingProvider,
		Model:      app.cfg.EmbeddingModel,
		Dimensions: app.cfg.EmbeddingDim,
		OllamaURL:  app.cfg.OllamaURL,
		APIKey:     app.cfg.GenAIAPIKey,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize embedder: %w", err)
	}
	app.embedder = emb

	if hc, ok := emb.(embedx.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			app.logger.Warn("embedding backend not reachable yet", "embedder", emb.Name(), "error", err)
		}
	}

	llm, err := llmx.New(ctx, llmx.Config{
		Provider:  app.cfg.LLMProvider,
		Model:     app.cfg.LLMModel,
		OllamaURL: app.cfg.OllamaURL,
		APIKey:    app.cfg.GenAIAPIKey,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize llm: %w", err)
	}
	app.llm = llm
	if llm == nil {
		app.logger.Info("llm fallback extraction disabled")
	}

	return nil
}

func (app *Application) initServices() {
	embedRetry := retryx.DefaultPolicy
	embedRetry.Attempts = app.cfg.RetryAttempts
	embedRetry.AttemptTimeout = app.cfg.EmbeddingTimeout

	llmRetry := embedRetry
	llmRetry.AttemptTimeout = app.cfg.LLMTimeout

	app.Invitations = &service.InvitationService{Store: app.db}
	app.Onboarding = &service.OnboardingService{
		Store:        app.db,
		Extractor:    &service.Extractor{LLM: app.llm, Policy: llmRetry},
		Embedder:     app.embedder,
		Dimensions:   app.cfg.EmbeddingDim,
		Retry:        embedRetry,
		MergeRetries: app.cfg.MergeRetries,
	}
	app.Relationships = &service.RelationshipService{
		Store: app.db,
		Materializer: &service.Materializer{
			Store:      app.db,
			Embedder:   app.embedder,
			Dimensions: app.cfg.EmbeddingDim,
			Retry:      embedRetry,
		},
		RecentLimit: app.cfg.RecentLimit,
	}
	app.housekeeping = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.MessageRetention,
	)
	app.Search = &service.SearchService{
		Store:      app.db,
		Embedder:   app.embedder,
		Dimensions: app.cfg.EmbeddingDim,
		Retry:      embedRetry,
	}
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.embedder, app.logger)

	router.AdminToken = app.cfg.AdminToken
	router.VerifyToken = app.cfg.VerifyToken
	router.Limits = httpapi.Limits{
		Webhook: app.cfg.WebhookLimit,
		Admin:   app.cfg.AdminLimit,
		Probe:   app.cfg.ProbeLimit,
	}
	router.OnboardingService = app.Onboarding
	router.InvitationService = app.Invitations
	router.RelationshipService = app.Relationships
	router.SearchService = app.Search
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
