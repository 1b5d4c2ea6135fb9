package di

import (
	domrepo "BrentWatch/internal/domain/repository"
	internalrepo "BrentWatch/internal/repository"
	"BrentWatch/internal/services/changepoint"
	"BrentWatch/internal/services/events"
	"BrentWatch/internal/services/impact"
	"BrentWatch/internal/services/posterior"
	"BrentWatch/internal/services/preprocess"
	"BrentWatch/internal/usecase"
	"BrentWatch/pkg/config"
	applogger "BrentWatch/pkg/logger"
	"BrentWatch/pkg/metrics"
	"BrentWatch/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		TimeFormat: cfg.Logging.TimeFormat,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder, or a noop
// recorder when metrics are disabled.
func ProvideMetrics(cfg *config.Config) domrepo.Metrics {
	if !cfg.Metrics.Enabled {
		return metrics.Noop{}
	}
	return metrics.New()
}

// ProvideSeriesSource creates the CSV price series loader.
func ProvideSeriesSource(cfg *config.Config, l *applogger.Logger) domrepo.SeriesSource {
	return internalrepo.NewCSVSeriesSource(cfg.Data.PricesPath, cfg.Data.PriceDateFormat, l)
}

// ProvideEventCatalogSource creates the CSV event catalog loader.
func ProvideEventCatalogSource(cfg *config.Config, l *applogger.Logger) domrepo.EventCatalogSource {
	return internalrepo.NewCSVEventCatalogSource(cfg.Data.EventsPath, cfg.Data.EventDateFormat, l)
}

// ProvideRunner assembles the analysis pipeline.
func ProvideRunner(cfg *config.Config, m domrepo.Metrics, l *applogger.Logger) *usecase.AnalysisRunner {
	return usecase.NewAnalysisRunner(
		preprocess.New(cfg),
		changepoint.New(cfg, m, l),
		posterior.New(cfg),
		impact.New(cfg),
		events.NewMatcher(l),
		m,
		l,
		cfg,
	)
}

// ProvideApp creates the application.
func ProvideApp(
	cfg *config.Config,
	runner *usecase.AnalysisRunner,
	prices domrepo.SeriesSource,
	catalog domrepo.EventCatalogSource,
	l *applogger.Logger,
) *server.App {
	return server.New(cfg, runner, prices, catalog, l)
}
