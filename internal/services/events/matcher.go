package events

import (
	"sort"
	"time"

	"BrentWatch/internal/domain/models"
	domsvc "BrentWatch/internal/domain/service"
	applogger "BrentWatch/pkg/logger"
	"BrentWatch/pkg/util"
)

// Matcher associates a detected break with the nearest catalog event by
// absolute day distance. The association is advisory only: no causal
// claim, and no event is filtered out for having a large lag — the lag
// itself is reported so a consumer can judge plausibility.
type Matcher struct {
	log *applogger.Logger
}

func NewMatcher(l *applogger.Logger) *Matcher {
	return &Matcher{log: l}
}

// Match finds the catalog event closest to modeDate. Ties prefer the
// earlier event. The signed lag is modeDate - eventDate in days, so a
// positive lag means the event preceded the break. An empty catalog
// degrades to a no-match result: break detection is still valid without
// event correlation.
func (m *Matcher) Match(impact models.ImpactRecord, modeDate time.Time, catalog models.EventCatalog) models.MatchedImpact {
	out := models.MatchedImpact{ImpactRecord: impact}
	if catalog.Len() == 0 {
		m.log.Warn("event catalog is empty, reporting break without event association")
		return out
	}

	bestIdx := 0
	bestDist := absDays(modeDate, catalog.Events[0].Date)
	for i := 1; i < catalog.Len(); i++ {
		d := absDays(modeDate, catalog.Events[i].Date)
		// strict < keeps the earlier event on equidistant ties, the
		// catalog being date-ascending
		if d < bestDist {
			bestIdx, bestDist = i, d
		}
	}

	ev := catalog.Events[bestIdx]
	lag := util.DaysBetween(modeDate, ev.Date)
	out.MatchedEvent = &ev
	out.LagDays = &lag
	return out
}

// NearestN returns the n events closest to modeDate with their signed
// lags, sorted by event date. Used for the research summary around a
// detected break.
func (m *Matcher) NearestN(modeDate time.Time, catalog models.EventCatalog, n int) []models.EventMatch {
	if catalog.Len() == 0 || n <= 0 {
		return nil
	}
	matches := make([]models.EventMatch, catalog.Len())
	for i, ev := range catalog.Events {
		matches[i] = models.EventMatch{Event: ev, LagDays: util.DaysBetween(modeDate, ev.Date)}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return abs(matches[i].LagDays) < abs(matches[j].LagDays)
	})
	if n < len(matches) {
		matches = matches[:n]
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Event.Date.Before(matches[j].Event.Date)
	})
	return matches
}

func absDays(a, b time.Time) int {
	return abs(util.DaysBetween(a, b))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

var _ domsvc.EventMatcher = (*Matcher)(nil)
