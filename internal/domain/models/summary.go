package models

import "time"

// ChangePointSummary reduces the pooled tau posterior to point estimates
// and the highest-density interval, with each index mapped back to the
// calendar date at that position in the analyzed series.
type ChangePointSummary struct {
	Mode         int          `json:"mode"`
	Mean         float64      `json:"mean"`
	Median       int          `json:"median"`
	HDI95Indices [2]int       `json:"hdi_95_indices"`
	ModeDate     time.Time    `json:"mode_date"`
	MeanDate     time.Time    `json:"mean_date"`
	MedianDate   time.Time    `json:"median_date"`
	HDI95Dates   [2]time.Time `json:"hdi_95_dates"`
	HDIMass      float64      `json:"hdi_mass"`
}
