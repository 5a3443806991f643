package app

import (
	"context"
	"log/slog"

	"TransientLoader/internal/config"
	"TransientLoader/internal/infrastructure/fetch"
	"TransientLoader/internal/infrastructure/storage"
	"TransientLoader/internal/logging"
	"TransientLoader/internal/observatory"
	"TransientLoader/internal/usecase"
)

// Application wires configuration into the ingestion pipeline.
type Application struct {
	cfg    config.Config
	logger *slog.Logger
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}
	return &Application{cfg: cfg, logger: baseLogger}
}

// Run processes a single transient report URL and exits: one pass per
// invocation.
func (a *Application) Run(ctx context.Context, reportURL string) error {
	repo, err := storage.Open(ctx, a.cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer repo.Close()

	client := fetch.NewClient(a.cfg.HTTP, a.logger.With("component", "fetch"))

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Pages:         client,
		Files:         client,
		Repository:    repo,
		Artifacts:     storage.NewFilesystemStore(a.cfg.Storage.ImageRoot),
		Observatories: observatory.NewResolver(a.cfg.Observatories),
		Logger:        a.logger.With("component", "pipeline"),
	})

	return pipeline.ProcessReport(ctx, reportURL)
}
