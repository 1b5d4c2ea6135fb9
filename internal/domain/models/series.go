package models

import "time"

// PricePoint is one observation of the raw price series.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// PriceSeries is a date-ascending sequence of positive prices.
// It is built by an external loader and treated as read-only by the core.
type PriceSeries struct {
	Points []PricePoint
}

func (s PriceSeries) Len() int { return len(s.Points) }

// Values returns the price column.
func (s PriceSeries) Values() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Price
	}
	return out
}

// Dates returns the date column.
func (s PriceSeries) Dates() []time.Time {
	out := make([]time.Time, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Date
	}
	return out
}

// ReturnPoint is one log return, dated at the later of the two prices it spans.
type ReturnPoint struct {
	Date      time.Time `json:"date"`
	LogReturn float64   `json:"log_return"`
}

// ReturnSeries is the stationarized series the change point model runs on.
// Length is len(PriceSeries)-1; immutable after construction.
type ReturnSeries struct {
	Points []ReturnPoint
}

func (s ReturnSeries) Len() int { return len(s.Points) }

func (s ReturnSeries) Values() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.LogReturn
	}
	return out
}

func (s ReturnSeries) Dates() []time.Time {
	out := make([]time.Time, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Date
	}
	return out
}
