package impact

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"BrentWatch/internal/domain/models"
	domsvc "BrentWatch/internal/domain/service"
	"BrentWatch/pkg/config"
)

// Quantifier compares pre/post-break regime statistics. The headline
// means come from the point split at the posterior mode; the
// significance flag comes from the paired posterior draws of the regime
// means, which propagates posterior uncertainty instead of comparing
// two point estimates.
type Quantifier struct {
	threshold float64
}

func New(cfg *config.Config) *Quantifier {
	return &Quantifier{threshold: cfg.Analysis.Significance}
}

// Quantify splits values at the mode index: before covers indices
// < mode, after covers indices >= mode.
func (q *Quantifier) Quantify(values []float64, post models.Posterior, sum models.ChangePointSummary) (models.ImpactRecord, error) {
	mode := sum.Mode
	if mode <= 0 || mode >= len(values) {
		return models.ImpactRecord{}, fmt.Errorf("quantify: mode index %d outside series of length %d", mode, len(values))
	}
	return q.build(values[:mode], values[mode:], post), nil
}

// QuantifyWindow restricts the comparison to window observations on
// each side of the mode.
func (q *Quantifier) QuantifyWindow(values []float64, post models.Posterior, sum models.ChangePointSummary, window int) (models.ImpactRecord, error) {
	mode := sum.Mode
	if mode <= 0 || mode >= len(values) {
		return models.ImpactRecord{}, fmt.Errorf("quantify window: mode index %d outside series of length %d", mode, len(values))
	}
	if window <= 0 {
		return q.build(values[:mode], values[mode:], post), nil
	}
	lo := mode - window
	if lo < 0 {
		lo = 0
	}
	hi := mode + window
	if hi > len(values) {
		hi = len(values)
	}
	return q.build(values[lo:mode], values[mode:hi], post), nil
}

func (q *Quantifier) build(before, after []float64, post models.Posterior) models.ImpactRecord {
	rec := models.ImpactRecord{
		BeforeMean: stat.Mean(before, nil),
		AfterMean:  stat.Mean(after, nil),
		BeforeStd:  sampleStd(before),
		AfterStd:   sampleStd(after),
		BeforeN:    len(before),
		AfterN:     len(after),
	}
	rec.MeanChange = rec.AfterMean - rec.BeforeMean
	rec.VolatilityChange = rec.AfterStd - rec.BeforeStd

	if rec.BeforeMean != 0 {
		rec.PercentChange = rec.MeanChange / math.Abs(rec.BeforeMean) * 100
	}
	if rec.BeforeStd != 0 {
		rec.EffectSize = rec.MeanChange / rec.BeforeStd
	}

	rec.ProbIncrease, rec.ProbDecrease = shiftProbabilities(post)
	rec.Significant = rec.ProbIncrease >= q.threshold || rec.ProbDecrease >= q.threshold
	return rec
}

// shiftProbabilities computes the fraction of paired posterior draws
// with mu2 > mu1 and the reverse.
func shiftProbabilities(post models.Posterior) (up, down float64) {
	n := len(post.Mu1)
	if n == 0 || len(post.Mu2) != n {
		return 0, 0
	}
	ups, downs := 0, 0
	for i := 0; i < n; i++ {
		switch {
		case post.Mu2[i] > post.Mu1[i]:
			ups++
		case post.Mu2[i] < post.Mu1[i]:
			downs++
		}
	}
	return float64(ups) / float64(n), float64(downs) / float64(n)
}

func sampleStd(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return stat.StdDev(xs, nil)
}

var _ domsvc.ImpactQuantifier = (*Quantifier)(nil)
