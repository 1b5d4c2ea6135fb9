package service

import (
	"context"
	"time"

	"BrentWatch/internal/domain/models"
)

// Preprocessor turns a raw price series into a stationarized return
// series, validating the input first. Pure transform.
type Preprocessor interface {
	ComputeLogReturns(series models.PriceSeries) (models.ReturnSeries, error)
}

// ChangePointSampler infers the posterior over a single break index via
// parallel MCMC chains and refuses to return an unconverged posterior.
type ChangePointSampler interface {
	Sample(ctx context.Context, series models.ReturnSeries) (models.Posterior, error)
}

// PosteriorSummarizer reduces pooled samples to point estimates and the
// highest-density interval, mapping indices back to dates.
type PosteriorSummarizer interface {
	Summarize(post models.Posterior, dates []time.Time) (models.ChangePointSummary, error)
}

// ImpactQuantifier compares pre/post-break statistics of a series split
// at the posterior mode and flags significance from the paired regime
// mean draws.
type ImpactQuantifier interface {
	Quantify(values []float64, post models.Posterior, sum models.ChangePointSummary) (models.ImpactRecord, error)
	QuantifyWindow(values []float64, post models.Posterior, sum models.ChangePointSummary, window int) (models.ImpactRecord, error)
}

// EventMatcher associates a detected break with the nearest catalog
// event. Association only; it never asserts causation and never fails on
// an empty catalog.
type EventMatcher interface {
	Match(impact models.ImpactRecord, modeDate time.Time, catalog models.EventCatalog) models.MatchedImpact
	NearestN(modeDate time.Time, catalog models.EventCatalog, n int) []models.EventMatch
}
