package models

import "time"

// AnalysisResult is the structured output handed to the presentation
// layer. One result is a pure function of (series, catalog, config, seed).
type AnalysisResult struct {
	Summary      ChangePointSummary `json:"summary"`
	Impact       MatchedImpact      `json:"impact"`
	WindowImpact *ImpactRecord      `json:"window_impact,omitempty"`
	Nearest      []EventMatch       `json:"nearest_events,omitempty"`
	Diagnostics  Diagnostics        `json:"diagnostics"`
	Warnings     []string           `json:"warnings,omitempty"`
	GeneratedAt  time.Time          `json:"generated_at"`
}
