package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	runsTotal     *prometheus.CounterVec
	chainFailures *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	rhat          prometheus.Gauge
	ess           prometheus.Gauge
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		runsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brentwatch_runs_total",
				Help: "Analysis runs by terminal status",
			},
			[]string{"status"},
		),
		chainFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brentwatch_chain_failures_total",
				Help: "Sampling chains that were cancelled or errored",
			},
			[]string{"reason"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brentwatch_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		stageDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "brentwatch_stage_duration_seconds",
				Help:    "Duration of analysis stages in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
		rhat: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "brentwatch_last_rhat",
			Help: "Cross-chain R-hat of the last completed sampling",
		}),
		ess: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "brentwatch_last_ess",
			Help: "Effective sample size for tau of the last completed sampling",
		}),
	}
}

// RecordRun records a finished analysis run by status.
func (r *Recorder) RecordRun(status string) {
	r.runsTotal.WithLabelValues(status).Inc()
}

// RecordChainFailure records a cancelled or errored chain.
func (r *Recorder) RecordChainFailure(reason string) {
	r.chainFailures.WithLabelValues(reason).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordDuration records stage duration in seconds.
func (r *Recorder) RecordDuration(stage string, seconds float64) {
	r.stageDuration.WithLabelValues(stage).Observe(seconds)
}

// RecordDiagnostics records convergence diagnostics of the last sampling.
func (r *Recorder) RecordDiagnostics(rhat, ess float64) {
	r.rhat.Set(rhat)
	r.ess.Set(ess)
}
