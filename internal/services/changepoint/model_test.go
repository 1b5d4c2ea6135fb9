package changepoint

import (
	"context"
	"errors"
	"testing"
	"time"

	"BrentWatch/internal/domain/models"
	"BrentWatch/pkg/config"
	applogger "BrentWatch/pkg/logger"
	"BrentWatch/pkg/metrics"
)

func testSampler(t *testing.T, chains, draws, burnIn int, seed uint64) *Sampler {
	t.Helper()
	var cfg config.Config
	cfg.Analysis.Chains = chains
	cfg.Analysis.Draws = draws
	cfg.Analysis.BurnIn = burnIn
	cfg.Analysis.Seed = seed
	cfg.Analysis.RHatThreshold = 1.05
	cfg.Analysis.ESSFloor = 50

	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return New(&cfg, metrics.Noop{}, l)
}

func stepSeries(n, breakAt int, before, after float64) models.ReturnSeries {
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]models.ReturnPoint, n)
	for i := range points {
		v := before
		if i >= breakAt {
			v = after
		}
		points[i] = models.ReturnPoint{Date: base.AddDate(0, 0, i), LogReturn: v}
	}
	return models.ReturnSeries{Points: points}
}

func tauMode(taus []int) int {
	counts := make(map[int]int)
	for _, v := range taus {
		counts[v]++
	}
	mode, best := 0, -1
	for v, c := range counts {
		if c > best {
			mode, best = v, c
		}
	}
	return mode
}

func TestSampleRecoversStepLocation(t *testing.T) {
	s := testSampler(t, 4, 400, 200, 42)

	post, err := s.Sample(context.Background(), stepSeries(100, 50, -1, 1))
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if got := len(post.Tau); got != 4*400 {
		t.Fatalf("pooled draws = %d, want %d", got, 4*400)
	}
	mode := tauMode(post.Tau)
	if mode < 49 || mode > 51 {
		t.Errorf("tau mode = %d, want near 50", mode)
	}
	if post.Diagnostics.Chains != 4 {
		t.Errorf("surviving chains = %d, want 4", post.Diagnostics.Chains)
	}
	if post.Diagnostics.FailedChains != 0 {
		t.Errorf("failed chains = %d, want 0", post.Diagnostics.FailedChains)
	}
}

func TestSampleDeterministic(t *testing.T) {
	series := stepSeries(80, 30, 0, 2)

	a, err := testSampler(t, 4, 200, 100, 7).Sample(context.Background(), series)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	b, err := testSampler(t, 4, 200, 100, 7).Sample(context.Background(), series)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if len(a.Tau) != len(b.Tau) {
		t.Fatalf("draw counts differ: %d vs %d", len(a.Tau), len(b.Tau))
	}
	for i := range a.Tau {
		if a.Tau[i] != b.Tau[i] {
			t.Fatalf("tau draw %d differs: %d vs %d", i, a.Tau[i], b.Tau[i])
		}
		if a.Mu1[i] != b.Mu1[i] || a.Mu2[i] != b.Mu2[i] || a.Sigma[i] != b.Sigma[i] {
			t.Fatalf("continuous draw %d differs", i)
		}
	}
}

func TestSampleSeriesTooShort(t *testing.T) {
	s := testSampler(t, 4, 100, 50, 1)

	_, err := s.Sample(context.Background(), stepSeries(2, 1, 0, 1))
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Check != "min_length" {
		t.Errorf("check = %q, want min_length", verr.Check)
	}
}

func TestSampleSingleChainRejected(t *testing.T) {
	s := testSampler(t, 1, 100, 50, 1)

	_, err := s.Sample(context.Background(), stepSeries(50, 25, 0, 1))
	var cerr *models.ConvergenceError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConvergenceError, got %v", err)
	}
}

func TestSampleCancelledContext(t *testing.T) {
	s := testSampler(t, 4, 5000, 1000, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Sample(ctx, stepSeries(100, 50, 0, 1))
	var cerr *models.ConvergenceError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConvergenceError, got %v", err)
	}
	if cerr.FailedChains != 4 {
		t.Errorf("failed chains = %d, want 4", cerr.FailedChains)
	}
}

func TestSeriesStatsSSE(t *testing.T) {
	y := []float64{1, 1, 3, 3}
	stats := newSeriesStats(y)

	// split at 2 with exact regime means leaves zero residual
	if got := stats.sse(2, 1, 3); got != 0 {
		t.Errorf("sse(2,1,3) = %v, want 0", got)
	}
	// means swapped: each point misses by 2, so SSE = 4*4
	if got := stats.sse(2, 3, 1); got != 16 {
		t.Errorf("sse(2,3,1) = %v, want 16", got)
	}
}
