package server

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"BrentWatch/internal/domain/models"
	domrepo "BrentWatch/internal/domain/repository"
	"BrentWatch/internal/usecase"
	"BrentWatch/pkg/config"
	applogger "BrentWatch/pkg/logger"
)

// App encapsulates one analysis invocation: load inputs, run the
// analysis, write the result for the presentation layer. It cancels
// cleanly on SIGINT/SIGTERM.
type App struct {
	cfg     *config.Config
	runner  *usecase.AnalysisRunner
	prices  domrepo.SeriesSource
	catalog domrepo.EventCatalogSource
	log     *applogger.Logger
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	runner *usecase.AnalysisRunner,
	prices domrepo.SeriesSource,
	catalog domrepo.EventCatalogSource,
	log *applogger.Logger,
) *App {
	return &App{cfg: cfg, runner: runner, prices: prices, catalog: catalog, log: log}
}

// Run executes the analysis and writes the result JSON. It blocks until
// the run completes or a shutdown signal cancels it.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	series, err := a.prices.Load(ctx)
	if err != nil {
		return fmt.Errorf("load price series: %w", err)
	}

	catalog, err := a.catalog.Load(ctx)
	if err != nil {
		return fmt.Errorf("load event catalog: %w", err)
	}

	result, err := a.runner.Run(ctx, series, catalog)
	if err != nil {
		return err
	}

	if err := a.writeResult(result); err != nil {
		return err
	}

	a.log.Info("result written", applogger.String("path", a.cfg.Data.OutputPath))
	return nil
}

func (a *App) writeResult(result *models.AnalysisResult) error {
	out := a.cfg.Data.OutputPath
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	b, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := os.WriteFile(out, b, 0o644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}
