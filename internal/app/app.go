package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"usage-analytics/internal/aggregators"
	internalhttp "usage-analytics/internal/http"
	"usage-analytics/internal/messages"
	"usage-analytics/internal/models"
	"usage-analytics/internal/queries"
	"usage-analytics/internal/recorders"
	"usage-analytics/internal/schedulers"
	"usage-analytics/internal/shared/caches"
	"usage-analytics/internal/shared/configs"
	"usage-analytics/internal/shared/docstores"
	"usage-analytics/internal/shared/loggers"
	"usage-analytics/internal/stores"

	"github.com/coder/quartz"
)

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server

	docStore        docstores.DocStore
	cache           caches.Cache
	rollupService   aggregators.RollupService
	rollupScheduler schedulers.RollupScheduler
	messageService  messages.MessageService
}

// New creates and initializes a new App instance.
func New(ctx context.Context, config *configs.Config) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level, config.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "usage-analytics").
		Logger()

	location, err := time.LoadLocation(config.Analytics.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone: %w", err)
	}
	clock := quartz.NewReal()

	// Initialize document store
	docStore, err := newDocStore(ctx, config.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	// Initialize result cache
	cache, err := caches.New(ctx, caches.Config{
		Backend:      config.Cache.Backend,
		TTLSeconds:   config.Cache.TTLSeconds,
		MaxSizeMB:    config.Cache.MaxSizeMB,
		RedisAddress: config.Cache.RedisAddress,
	})
	if err != nil {
		_ = docStore.Close()
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}

	namespace := config.Analytics.Namespace
	rangeScanner := stores.NewRangeScanner(docStore, namespace, config.Rollup.PageSize)
	aggregateRecordStore := stores.NewAggregateRecordStore(docStore, rangeScanner, namespace)
	activityStore := stores.NewActivityStore(docStore, namespace)
	messageStore := stores.NewMessageStore(docStore, config.Info.Namespace)

	// Initialize services
	rollupService := aggregators.NewRollupService(aggregateRecordStore, rangeScanner, aggregators.DefaultStrategies(), clock, location)
	sessionRecorder := recorders.NewSessionRecorder(activityStore, clock)
	queryService := queries.NewQueryService(aggregateRecordStore, cache, clock, location)
	messageService := messages.NewMessageService(messageStore, clock)

	schedulerLogger := appLogger.With().Str(loggers.FieldComponent, "scheduler").Logger()
	rollupScheduler := schedulers.NewRollupScheduler(rollupService, schedulers.Schedules{
		Daily:   config.Scheduler.Daily,
		Weekly:  config.Scheduler.Weekly,
		Monthly: config.Scheduler.Monthly,
	}, clock, location, schedulerLogger)

	// Initialize http router
	httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
	router := internalhttp.NewRouter(internalhttp.Services{
		RollupService:   rollupService,
		RollupScheduler: rollupScheduler,
		SessionRecorder: sessionRecorder,
		QueryService:    queryService,
		MessageService:  messageService,
	}, config.RateLimit.RecordPerMinute, httpLogger)

	// Create HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	return &App{
		config:          config,
		appLogger:       appLogger,
		server:          server,
		docStore:        docStore,
		cache:           cache,
		rollupService:   rollupService,
		rollupScheduler: rollupScheduler,
		messageService:  messageService,
	}, nil
}

func newDocStore(ctx context.Context, config configs.StoreConfig) (docstores.DocStore, error) {
	switch config.Driver {
	case docstores.DriverSQLite:
		return docstores.NewSQLiteStore(ctx, config.DSN)
	case docstores.DriverPostgres:
		return docstores.NewPostgresStore(ctx, config.DSN)
	case docstores.DriverFirestore:
		return docstores.NewFirestoreStore(ctx, config.ProjectID)
	default:
		return nil, fmt.Errorf("unknown store driver %q", config.Driver)
	}
}

// Start starts the scheduler when enabled, then the HTTP server in a blocking manner.
func (app *App) Start(ctx context.Context) error {
	app.appLogger.Info().
		Msgf("Starting usage-analytics service on port %d (log_level=%s, store_driver=%s, timezone=%s, cache=%s)",
			app.config.Server.Port,
			app.config.Log.Level,
			app.config.Store.Driver,
			app.config.Analytics.Timezone,
			app.config.Cache.Backend)

	if app.config.Scheduler.Enabled {
		if err := app.rollupScheduler.Start(ctx); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
	}

	return app.server.ListenAndServe()
}

// Rollup runs a single rollup without serving HTTP.
func (app *App) Rollup(ctx context.Context, req aggregators.RollupRequest) (*aggregators.RollupResult, error) {
	ctx = app.appLogger.With().Str(loggers.FieldComponent, "cli").Logger().WithContext(ctx)
	return app.rollupService.Rollup(ctx, req)
}

// PostMessage adds a message to the info feed without serving HTTP.
func (app *App) PostMessage(ctx context.Context, req messages.PostRequest) (*models.Message, error) {
	ctx = app.appLogger.With().Str(loggers.FieldComponent, "cli").Logger().WithContext(ctx)
	return app.messageService.Post(ctx, req)
}

// Shutdown gracefully shuts down the application.
func (app *App) Shutdown(ctx context.Context) error {
	// 1) Shutdown server
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Server stopped")

	// 2) Wait for running rollup jobs
	app.rollupScheduler.Stop()
	app.appLogger.Info().Msg("Scheduler stopped")

	// 3) Release store and cache connections
	return app.Close()
}

// Close releases the store and cache.
func (app *App) Close() error {
	return errors.Join(app.cache.Close(), app.docStore.Close())
}
