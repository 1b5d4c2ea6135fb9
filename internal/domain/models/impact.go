package models

// ImpactRecord compares the two regimes split at the posterior mode.
// Significance comes from the paired posterior draws of the regime means,
// not from the point estimates alone.
type ImpactRecord struct {
	BeforeMean       float64 `json:"before_mean"`
	AfterMean        float64 `json:"after_mean"`
	BeforeStd        float64 `json:"before_std"`
	AfterStd         float64 `json:"after_std"`
	BeforeN          int     `json:"before_n"`
	AfterN           int     `json:"after_n"`
	MeanChange       float64 `json:"mean_change"`
	PercentChange    float64 `json:"percent_change"`
	VolatilityChange float64 `json:"volatility_change"`
	EffectSize       float64 `json:"effect_size"`
	ProbIncrease     float64 `json:"prob_increase"`
	ProbDecrease     float64 `json:"prob_decrease"`
	Significant      bool    `json:"significant"`
}

// MatchedImpact is the final output unit: an impact record plus the
// nearest catalog event and the signed lag in days (positive means the
// event preceded the break). Both are nil when the catalog is empty.
type MatchedImpact struct {
	ImpactRecord
	MatchedEvent *EventRecord `json:"matched_event"`
	LagDays      *int         `json:"lag_days"`
}
