package repository

import (
	"context"

	"BrentWatch/internal/domain/models"
)

// SeriesSource loads the validated price series from a collaborator
// (in practice a tabular file; the core never parses formats itself).
type SeriesSource interface {
	Load(ctx context.Context) (models.PriceSeries, error)
}

// EventCatalogSource loads the external event catalog. An empty catalog
// is a valid result, not an error.
type EventCatalogSource interface {
	Load(ctx context.Context) (models.EventCatalog, error)
}

type Metrics interface {
	RecordRun(status string)
	RecordChainFailure(reason string)
	RecordError(kind string)
	RecordDuration(stage string, seconds float64)
	RecordDiagnostics(rhat, ess float64)
}
