package preprocess

import (
	"errors"
	"math"
	"testing"
	"time"

	"BrentWatch/internal/domain/models"
	"BrentWatch/pkg/config"
)

func testConfig(minLen int, gapPolicy string) *config.Config {
	var cfg config.Config
	cfg.Analysis.MinSeriesLen = minLen
	cfg.Analysis.GapPolicy = gapPolicy
	return &cfg
}

func day(offset int) time.Time {
	return time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func series(prices ...float64) models.PriceSeries {
	points := make([]models.PricePoint, len(prices))
	for i, p := range prices {
		points[i] = models.PricePoint{Date: day(i), Price: p}
	}
	return models.PriceSeries{Points: points}
}

func TestComputeLogReturns(t *testing.T) {
	p := New(testConfig(3, GapPolicyNone))

	out, err := p.ComputeLogReturns(series(100, 110, 121, 133.1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() != 3 {
		t.Fatalf("expected 3 returns, got %d", out.Len())
	}
	want := math.Log(1.1)
	for i, pt := range out.Points {
		if math.Abs(pt.LogReturn-want) > 1e-9 {
			t.Errorf("return %d: got %.9f, want %.9f", i, pt.LogReturn, want)
		}
		if !pt.Date.Equal(day(i + 1)) {
			t.Errorf("return %d dated %s, want %s", i, pt.Date, day(i+1))
		}
	}
}

func TestShortSeriesRejected(t *testing.T) {
	p := New(testConfig(10, GapPolicyNone))

	_, err := p.ComputeLogReturns(series(100, 101, 102))
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Check != "min_length" {
		t.Errorf("check = %q, want min_length", verr.Check)
	}
}

func TestNonPositivePriceRejected(t *testing.T) {
	p := New(testConfig(3, GapPolicyNone))

	_, err := p.ComputeLogReturns(series(100, -5, 102))
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Check != "positive_price" {
		t.Errorf("check = %q, want positive_price", verr.Check)
	}
}

func TestNonIncreasingDatesRejected(t *testing.T) {
	p := New(testConfig(3, GapPolicyNone))

	s := series(100, 101, 102)
	s.Points[2].Date = s.Points[1].Date

	_, err := p.ComputeLogReturns(s)
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Check != "dates_strictly_increasing" {
		t.Errorf("check = %q, want dates_strictly_increasing", verr.Check)
	}
}

func TestForwardFillCalendarGaps(t *testing.T) {
	p := New(testConfig(3, GapPolicyForwardFill))

	s := models.PriceSeries{Points: []models.PricePoint{
		{Date: day(0), Price: 100},
		{Date: day(3), Price: 200},
		{Date: day(4), Price: 200},
	}}

	out, err := p.ComputeLogReturns(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// days 1 and 2 are filled at 100, so 5 points and 4 returns
	if out.Len() != 4 {
		t.Fatalf("expected 4 returns, got %d", out.Len())
	}
	wantReturns := []float64{0, 0, math.Log(2), 0}
	for i, w := range wantReturns {
		if math.Abs(out.Points[i].LogReturn-w) > 1e-9 {
			t.Errorf("return %d: got %.9f, want %.9f", i, out.Points[i].LogReturn, w)
		}
	}
}

func TestInputNotMutated(t *testing.T) {
	p := New(testConfig(3, GapPolicyForwardFill))

	s := models.PriceSeries{Points: []models.PricePoint{
		{Date: day(0), Price: 100},
		{Date: day(5), Price: 110},
		{Date: day(6), Price: 120},
	}}
	if _, err := p.ComputeLogReturns(s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Points) != 3 {
		t.Errorf("input series mutated, len = %d", len(s.Points))
	}
}
