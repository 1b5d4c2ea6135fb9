package logger

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// RunCollector aggregates warn/error log entries emitted during a single
// analysis run so they can be attached to the run report. Entries with
// the same level and message are deduplicated with a count.
type RunCollector struct {
	mu      sync.Mutex
	entries map[string]*CollectedEntry
}

type CollectedEntry struct {
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
	Count     int                    `json:"count"`
	FirstSeen time.Time              `json:"first_seen"`
	LastSeen  time.Time              `json:"last_seen"`
}

func NewRunCollector() *RunCollector {
	return &RunCollector{entries: make(map[string]*CollectedEntry)}
}

func (c *RunCollector) Add(level, message string, fields map[string]interface{}) {
	now := time.Now()
	key := level + "|" + message

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.Count++
		e.LastSeen = now
		return
	}
	c.entries[key] = &CollectedEntry{
		Level:     level,
		Message:   message,
		Fields:    fields,
		Count:     1,
		FirstSeen: now,
		LastSeen:  now,
	}
}

// Drain returns the collected entries ordered by first occurrence and
// resets the collector for the next run.
func (c *RunCollector) Drain() []CollectedEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]CollectedEntry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FirstSeen.Before(out[j].FirstSeen) })

	c.entries = make(map[string]*CollectedEntry)
	return out
}

// Messages renders drained entries as plain strings for the result
// payload.
func Messages(entries []CollectedEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Count > 1 {
			out = append(out, fmt.Sprintf("%s: %s (x%d)", e.Level, e.Message, e.Count))
			continue
		}
		out = append(out, fmt.Sprintf("%s: %s", e.Level, e.Message))
	}
	return out
}
