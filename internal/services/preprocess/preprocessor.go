package preprocess

import (
	"fmt"
	"math"

	"BrentWatch/internal/domain/models"
	domsvc "BrentWatch/internal/domain/service"
	"BrentWatch/pkg/config"
)

// Gap policies for missing calendar dates. Filling happens before
// differencing, never after.
const (
	GapPolicyNone        = "none"
	GapPolicyForwardFill = "ffill-calendar"
)

// SeriesPreprocessor converts a validated price series into log returns.
// Pure transform; the input is never mutated.
type SeriesPreprocessor struct {
	minLen    int
	gapPolicy string
}

func New(cfg *config.Config) *SeriesPreprocessor {
	return &SeriesPreprocessor{
		minLen:    cfg.Analysis.MinSeriesLen,
		gapPolicy: cfg.Analysis.GapPolicy,
	}
}

// ComputeLogReturns validates the series, applies the gap policy, and
// computes r[t] = ln(p[t]) - ln(p[t-1]). The returned series has length
// len(prices)-1 after filling, each return dated at the later price.
func (p *SeriesPreprocessor) ComputeLogReturns(series models.PriceSeries) (models.ReturnSeries, error) {
	if err := p.validate(series); err != nil {
		return models.ReturnSeries{}, err
	}

	points := series.Points
	if p.gapPolicy == GapPolicyForwardFill {
		points = forwardFillCalendar(points)
	}

	out := make([]models.ReturnPoint, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		out = append(out, models.ReturnPoint{
			Date:      points[i].Date,
			LogReturn: math.Log(points[i].Price) - math.Log(points[i-1].Price),
		})
	}
	return models.ReturnSeries{Points: out}, nil
}

func (p *SeriesPreprocessor) validate(series models.PriceSeries) error {
	if series.Len() < p.minLen {
		return &models.ValidationError{
			Check:  "min_length",
			Detail: fmt.Sprintf("series has %d observations, minimum is %d", series.Len(), p.minLen),
		}
	}
	for i, pt := range series.Points {
		if pt.Price <= 0 {
			return &models.ValidationError{
				Check:  "positive_price",
				Detail: fmt.Sprintf("price %.4f at index %d (%s)", pt.Price, i, pt.Date.Format("2006-01-02")),
			}
		}
		if i == 0 {
			continue
		}
		if !series.Points[i-1].Date.Before(pt.Date) {
			return &models.ValidationError{
				Check:  "dates_strictly_increasing",
				Detail: fmt.Sprintf("date %s at index %d does not follow %s", pt.Date.Format("2006-01-02"), i, series.Points[i-1].Date.Format("2006-01-02")),
			}
		}
	}
	return nil
}

// forwardFillCalendar inserts a point carrying the previous price for
// every missing calendar day between consecutive observations.
func forwardFillCalendar(points []models.PricePoint) []models.PricePoint {
	out := make([]models.PricePoint, 0, len(points))
	out = append(out, points[0])
	for i := 1; i < len(points); i++ {
		prev := out[len(out)-1]
		for d := prev.Date.AddDate(0, 0, 1); d.Before(points[i].Date); d = d.AddDate(0, 0, 1) {
			out = append(out, models.PricePoint{Date: d, Price: prev.Price})
		}
		out = append(out, points[i])
	}
	return out
}

var _ domsvc.Preprocessor = (*SeriesPreprocessor)(nil)
