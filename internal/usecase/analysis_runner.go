package usecase

import (
	"context"
	"time"

	"BrentWatch/internal/domain/models"
	domrepo "BrentWatch/internal/domain/repository"
	domsvc "BrentWatch/internal/domain/service"
	"BrentWatch/internal/services/events"
	"BrentWatch/pkg/config"
	applogger "BrentWatch/pkg/logger"
)

// AnalysisRunner orchestrates one analysis run: preprocess, sample,
// summarize, quantify, match. Downstream stages run sequentially after
// the sampling join and operate on immutable values, so no locking is
// needed. A run is a pure function of (series, catalog, config, seed).
type AnalysisRunner struct {
	pre        domsvc.Preprocessor
	sampler    domsvc.ChangePointSampler
	summarizer domsvc.PosteriorSummarizer
	quantifier domsvc.ImpactQuantifier
	matcher    domsvc.EventMatcher
	metrics    domrepo.Metrics
	log        *applogger.Logger

	impactWindow  int
	nearestEvents int
}

func NewAnalysisRunner(
	pre domsvc.Preprocessor,
	sampler domsvc.ChangePointSampler,
	summarizer domsvc.PosteriorSummarizer,
	quantifier domsvc.ImpactQuantifier,
	matcher domsvc.EventMatcher,
	metrics domrepo.Metrics,
	log *applogger.Logger,
	cfg *config.Config,
) *AnalysisRunner {
	return &AnalysisRunner{
		pre:           pre,
		sampler:       sampler,
		summarizer:    summarizer,
		quantifier:    quantifier,
		matcher:       matcher,
		metrics:       metrics,
		log:           log,
		impactWindow:  cfg.Analysis.ImpactWindow,
		nearestEvents: cfg.Analysis.NearestEvents,
	}
}

// Run analyzes the price series against the event catalog. Validation
// and convergence failures abort at the point of detection; an empty
// catalog only degrades the result to a no-match association.
func (r *AnalysisRunner) Run(ctx context.Context, prices models.PriceSeries, catalog models.EventCatalog) (*models.AnalysisResult, error) {
	collector := applogger.NewRunCollector()
	r.log.AttachCollector(collector)

	start := time.Now()

	returns, err := r.pre.ComputeLogReturns(prices)
	if err != nil {
		r.metrics.RecordRun("validation_failed")
		r.metrics.RecordError("validation")
		return nil, err
	}
	r.log.Info("series preprocessed",
		applogger.Int("prices", prices.Len()),
		applogger.Int("returns", returns.Len()),
	)

	post, err := r.sampler.Sample(ctx, returns)
	if err != nil {
		r.metrics.RecordRun("sampling_failed")
		r.metrics.RecordError("convergence")
		return nil, err
	}

	summary, err := r.summarizer.Summarize(post, returns.Dates())
	if err != nil {
		r.metrics.RecordRun("summarize_failed")
		return nil, err
	}
	r.log.Info("change point summarized",
		applogger.Int("mode", summary.Mode),
		applogger.Time("mode_date", summary.ModeDate),
		applogger.Int("hdi_lo", summary.HDI95Indices[0]),
		applogger.Int("hdi_hi", summary.HDI95Indices[1]),
	)

	// Headline impact on the original, non-differenced prices. The mode
	// index of the return series splits the price series one step after
	// the last pre-break price, which is exactly the regime boundary.
	impact, err := r.quantifier.Quantify(prices.Values(), post, summary)
	if err != nil {
		r.metrics.RecordRun("impact_failed")
		return nil, err
	}

	result := &models.AnalysisResult{
		Summary:     summary,
		Diagnostics: post.Diagnostics,
		GeneratedAt: time.Now().UTC(),
	}

	if r.impactWindow > 0 {
		windowed, err := r.quantifier.QuantifyWindow(prices.Values(), post, summary, r.impactWindow)
		if err != nil {
			r.log.Warn("windowed impact unavailable", applogger.Error(err))
		} else {
			result.WindowImpact = &windowed
		}
	}

	result.Impact = r.matcher.Match(impact, summary.ModeDate, catalog)
	result.Nearest = r.matcher.NearestN(summary.ModeDate, catalog, r.nearestEvents)

	if catalog.Len() > 0 {
		dist := events.Distribution(catalog)
		r.log.Info("event catalog",
			applogger.Int("events", dist.Total),
			applogger.Int("categories", len(dist.ByCategory)),
		)
	}

	result.Warnings = applogger.Messages(collector.Drain())

	r.metrics.RecordRun("ok")
	r.metrics.RecordDuration("run", time.Since(start).Seconds())
	r.log.Info("analysis complete",
		applogger.Bool("significant", result.Impact.Significant),
		applogger.Float64("percent_change", result.Impact.PercentChange),
		applogger.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}
