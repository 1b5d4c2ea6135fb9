package posterior

import (
	"fmt"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"BrentWatch/internal/domain/models"
	domsvc "BrentWatch/internal/domain/service"
	"BrentWatch/pkg/config"
)

// Summarizer reduces pooled tau samples to point estimates and the
// highest-density interval.
type Summarizer struct {
	mass float64
}

func New(cfg *config.Config) *Summarizer {
	return &Summarizer{mass: cfg.Analysis.HDIMass}
}

// Summarize computes mode, mean, median and the HDI of the pooled tau
// samples, then maps each index to the calendar date at that position in
// the analyzed series. Indices are clamped to the date range, matching
// the convention of the original analysis.
func (s *Summarizer) Summarize(post models.Posterior, dates []time.Time) (models.ChangePointSummary, error) {
	n := len(post.Tau)
	if n == 0 {
		return models.ChangePointSummary{}, fmt.Errorf("summarize: empty posterior")
	}
	if len(dates) == 0 {
		return models.ChangePointSummary{}, fmt.Errorf("summarize: no dates to map indices onto")
	}

	mode := histogramMode(post.Tau)

	taus := make([]float64, n)
	for i, v := range post.Tau {
		taus[i] = float64(v)
	}
	mean := stat.Mean(taus, nil)

	sorted := make([]int, n)
	copy(sorted, post.Tau)
	sort.Ints(sorted)
	// lower middle draw on even counts, so the median is always an index
	// some sample actually took
	median := sorted[n/2]
	if n%2 == 0 {
		median = sorted[n/2-1]
	}

	lo, hi := hdi(sorted, s.mass)

	sum := models.ChangePointSummary{
		Mode:         mode,
		Mean:         mean,
		Median:       median,
		HDI95Indices: [2]int{lo, hi},
		ModeDate:     dateAt(dates, mode),
		MeanDate:     dateAt(dates, int(math.Round(mean))),
		MedianDate:   dateAt(dates, median),
		HDI95Dates:   [2]time.Time{dateAt(dates, lo), dateAt(dates, hi)},
		HDIMass:      s.mass,
	}
	return sum, nil
}

// histogramMode bins the discrete samples at unit width and returns the
// index with the highest posterior mass; ties go to the smallest index
// so the result is deterministic.
func histogramMode(taus []int) int {
	counts := make(map[int]int, len(taus))
	for _, v := range taus {
		counts[v]++
	}
	mode, best := 0, -1
	for v, c := range counts {
		if c > best || (c == best && v < mode) {
			mode, best = v, c
		}
	}
	return mode
}

// hdi slides a window of ceil(mass*n) samples across the sorted array
// and returns the narrowest one: the tightest credible region rather
// than a symmetric quantile interval, which matters when the posterior
// is skewed or multimodal. Wide intervals are returned as-is; width is
// the caller's uncertainty signal.
func hdi(sorted []int, mass float64) (int, int) {
	n := len(sorted)
	w := int(math.Ceil(mass * float64(n)))
	if w < 1 {
		w = 1
	}
	if w > n {
		w = n
	}
	lo, hi := sorted[0], sorted[n-1]
	best := hi - lo
	for i := 0; i+w <= n; i++ {
		width := sorted[i+w-1] - sorted[i]
		if width < best {
			best = width
			lo, hi = sorted[i], sorted[i+w-1]
		}
	}
	return lo, hi
}

func dateAt(dates []time.Time, idx int) time.Time {
	if idx < 0 {
		return dates[0]
	}
	if idx >= len(dates) {
		return dates[len(dates)-1]
	}
	return dates[idx]
}

var _ domsvc.PosteriorSummarizer = (*Summarizer)(nil)
