package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"PharmaNewsAgent/internal/config"
	"PharmaNewsAgent/internal/domain"
	"PharmaNewsAgent/internal/feed"
	"PharmaNewsAgent/internal/infrastructure/export"
	"PharmaNewsAgent/internal/infrastructure/ml"
	"PharmaNewsAgent/internal/infrastructure/scheduler"
	"PharmaNewsAgent/internal/infrastructure/social"
	"PharmaNewsAgent/internal/infrastructure/storage"
	"PharmaNewsAgent/internal/logging"
	"PharmaNewsAgent/internal/ports"
	"PharmaNewsAgent/internal/publish"
	"PharmaNewsAgent/internal/render"
	"PharmaNewsAgent/internal/summarize"
	"PharmaNewsAgent/internal/usecase"
)

// Application wires configuration to the pipeline and its lifecycle.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	pipeline *usecase.Pipeline
	db       *sql.DB
}

// New builds a runnable application instance. The caller owns Close.
func New(cfg config.Config, logger *slog.Logger) (*Application, error) {
	if logger == nil {
		logger = logging.New(cfg.Logging.Level)
	}

	store, db, err := openStore(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	httpClient := &http.Client{Timeout: 20 * time.Second}

	var extractor *feed.Extractor
	if cfg.Pipeline.FetchFullContent {
		extractor = feed.NewExtractor(httpClient)
	}

	sources := make([]ports.FeedSource, 0, len(cfg.Feeds))
	for _, fc := range cfg.Feeds {
		sources = append(sources, feed.NewRSSSource(fc.Name, fc.URL, httpClient, extractor))
	}
	collector := feed.NewCollector(sources, logger.With("component", "collector"))

	summarizer := summarize.New(
		ml.NewClient(cfg.Backend),
		cfg.Summarizer.MaxInputChars,
		cfg.Summarizer.MaxSummaryChars,
		cfg.Summarizer.Retries,
		logger.With("component", "summarizer"),
	)

	platforms := make([]domain.Platform, 0, len(cfg.Pipeline.Platforms))
	for _, name := range cfg.Pipeline.Platforms {
		platforms = append(platforms, domain.Platform(name))
	}
	renderer := render.New(platforms)

	dispatcher := publish.NewDispatcher(social.FromConfig(cfg.Social), logger.With("component", "publisher"))

	pipeline := usecase.NewPipeline(usecase.Deps{
		Collector:   collector,
		Store:       store,
		Summarizer:  summarizer,
		Renderer:    renderer,
		Dispatcher:  dispatcher,
		Archiver:    export.NewCSVArchiver(cfg.DataDir),
		Logger:      logger.With("component", "pipeline"),
		MaxArticles: cfg.Pipeline.MaxArticlesPerCycle,
		Publish:     cfg.Pipeline.PostToSocial,
	})

	return &Application{cfg: cfg, logger: logger, pipeline: pipeline, db: db}, nil
}

func openStore(cfg config.StorageConfig) (ports.ArticleStore, *sql.DB, error) {
	if cfg.Driver == "postgres" {
		db, err := storage.OpenPostgres(cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewPostgresStore(db), db, nil
	}
	db, err := storage.OpenSQLite(cfg.Path)
	if err != nil {
		return nil, nil, err
	}
	return storage.NewSQLiteStore(db), db, nil
}

// RunOnce executes a single pipeline cycle.
func (a *Application) RunOnce(ctx context.Context) (usecase.CycleReport, error) {
	return a.pipeline.RunCycle(ctx)
}

// RunContinuous starts the schedule loop and blocks until ctx is cancelled,
// then waits for an in-flight cycle to finish.
func (a *Application) RunContinuous(ctx context.Context) error {
	driver := scheduler.NewCronScheduler(a.cfg.Scheduler.CronExpression, a.logger.With("component", "scheduler"))
	sched := usecase.NewScheduler(driver, a.pipeline, a.logger.With("component", "scheduler"))

	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	a.logger.Info("continuous mode started", "cron", a.cfg.Scheduler.CronExpression)

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return sched.Stop(stopCtx)
}

// Close releases the store handle.
func (a *Application) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
