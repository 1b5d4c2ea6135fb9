package impact

import (
	"math"
	"testing"

	"BrentWatch/internal/domain/models"
	"BrentWatch/pkg/config"
)

func testQuantifier(threshold float64) *Quantifier {
	var cfg config.Config
	cfg.Analysis.Significance = threshold
	return New(&cfg)
}

func stepValues(n, breakAt int, before, after float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = before
		if i >= breakAt {
			out[i] = after
		}
	}
	return out
}

func shiftedPosterior(n int, mu1, mu2 float64) models.Posterior {
	post := models.Posterior{Mu1: make([]float64, n), Mu2: make([]float64, n)}
	for i := 0; i < n; i++ {
		post.Mu1[i] = mu1
		post.Mu2[i] = mu2
	}
	return post
}

func TestQuantifyModeSplit(t *testing.T) {
	q := testQuantifier(0.95)
	values := stepValues(10, 5, 10, 20)
	sum := models.ChangePointSummary{Mode: 5}

	rec, err := q.Quantify(values, shiftedPosterior(100, 0, 1), sum)
	if err != nil {
		t.Fatalf("quantify: %v", err)
	}
	if rec.BeforeMean != 10 || rec.AfterMean != 20 {
		t.Errorf("means = %.2f/%.2f, want 10/20", rec.BeforeMean, rec.AfterMean)
	}
	if rec.BeforeN != 5 || rec.AfterN != 5 {
		t.Errorf("counts = %d/%d, want 5/5", rec.BeforeN, rec.AfterN)
	}
	if rec.MeanChange != 10 {
		t.Errorf("mean change = %.2f, want 10", rec.MeanChange)
	}
	if math.Abs(rec.PercentChange-100) > 1e-9 {
		t.Errorf("percent change = %.4f, want 100", rec.PercentChange)
	}
	if rec.ProbIncrease != 1 {
		t.Errorf("prob increase = %.2f, want 1", rec.ProbIncrease)
	}
	if !rec.Significant {
		t.Error("shift with unanimous posterior support not flagged significant")
	}
}

func TestQuantifyDecreaseSignificant(t *testing.T) {
	q := testQuantifier(0.95)
	values := stepValues(10, 5, 20, 10)
	sum := models.ChangePointSummary{Mode: 5}

	rec, err := q.Quantify(values, shiftedPosterior(100, 1, 0), sum)
	if err != nil {
		t.Fatalf("quantify: %v", err)
	}
	if rec.ProbDecrease != 1 {
		t.Errorf("prob decrease = %.2f, want 1", rec.ProbDecrease)
	}
	if !rec.Significant {
		t.Error("downward shift not flagged significant")
	}
	if rec.MeanChange != -10 {
		t.Errorf("mean change = %.2f, want -10", rec.MeanChange)
	}
}

func TestQuantifyAmbiguousPosteriorNotSignificant(t *testing.T) {
	q := testQuantifier(0.95)
	post := models.Posterior{Mu1: make([]float64, 100), Mu2: make([]float64, 100)}
	for i := 0; i < 100; i++ {
		// half the draws support an increase, half a decrease
		if i%2 == 0 {
			post.Mu2[i] = 1
		} else {
			post.Mu1[i] = 1
		}
	}

	rec, err := q.Quantify(stepValues(10, 5, 10, 20), post, models.ChangePointSummary{Mode: 5})
	if err != nil {
		t.Fatalf("quantify: %v", err)
	}
	if rec.Significant {
		t.Error("50/50 posterior flagged significant")
	}
	if rec.ProbIncrease != 0.5 || rec.ProbDecrease != 0.5 {
		t.Errorf("probs = %.2f/%.2f, want 0.5/0.5", rec.ProbIncrease, rec.ProbDecrease)
	}
}

func TestQuantifyModeOutOfRange(t *testing.T) {
	q := testQuantifier(0.95)
	values := stepValues(10, 5, 10, 20)
	post := shiftedPosterior(10, 0, 1)

	if _, err := q.Quantify(values, post, models.ChangePointSummary{Mode: 0}); err == nil {
		t.Error("expected error for mode 0")
	}
	if _, err := q.Quantify(values, post, models.ChangePointSummary{Mode: 10}); err == nil {
		t.Error("expected error for mode at series end")
	}
}

func TestQuantifyWindow(t *testing.T) {
	q := testQuantifier(0.95)
	values := stepValues(20, 10, 10, 20)

	rec, err := q.QuantifyWindow(values, shiftedPosterior(10, 0, 1), models.ChangePointSummary{Mode: 10}, 3)
	if err != nil {
		t.Fatalf("quantify window: %v", err)
	}
	if rec.BeforeN != 3 || rec.AfterN != 3 {
		t.Errorf("window counts = %d/%d, want 3/3", rec.BeforeN, rec.AfterN)
	}
	if rec.BeforeMean != 10 || rec.AfterMean != 20 {
		t.Errorf("window means = %.2f/%.2f, want 10/20", rec.BeforeMean, rec.AfterMean)
	}
}

func TestQuantifyWindowClampedAtEdges(t *testing.T) {
	q := testQuantifier(0.95)
	values := stepValues(10, 2, 10, 20)

	rec, err := q.QuantifyWindow(values, shiftedPosterior(10, 0, 1), models.ChangePointSummary{Mode: 2}, 5)
	if err != nil {
		t.Fatalf("quantify window: %v", err)
	}
	if rec.BeforeN != 2 {
		t.Errorf("before count = %d, want 2 when the window overruns the start", rec.BeforeN)
	}
}

func TestQuantifyZeroBeforeMean(t *testing.T) {
	q := testQuantifier(0.95)
	values := []float64{-1, 1, -1, 1, 5, 5, 5, 5}

	rec, err := q.Quantify(values, shiftedPosterior(10, 0, 1), models.ChangePointSummary{Mode: 4})
	if err != nil {
		t.Fatalf("quantify: %v", err)
	}
	if rec.PercentChange != 0 {
		t.Errorf("percent change = %.4f, want 0 guard for zero base mean", rec.PercentChange)
	}
}
