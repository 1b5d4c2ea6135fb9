package util

import (
    "time"
)

// dateLayouts are the fallbacks tried after the preferred layout. The
// Brent dataset ships day-first dates like "20-May-87".
var dateLayouts = []string{
    "02-Jan-06",
    "2006-01-02",
    "02/01/2006",
    time.RFC3339,
}

// ParseDate tries the preferred layout, then common fallbacks. Returns
// (t, true) if any worked.
func ParseDate(s, preferred string) (time.Time, bool) {
    if s == "" {
        return time.Time{}, false
    }
    if preferred != "" {
        if t, err := time.Parse(preferred, s); err == nil {
            return t, true
        }
    }
    for _, layout := range dateLayouts {
        if layout == preferred {
            continue
        }
        if t, err := time.Parse(layout, s); err == nil {
            return t, true
        }
    }
    return time.Time{}, false
}

// DaysBetween returns the signed whole-day distance a-b.
func DaysBetween(a, b time.Time) int {
    d := a.Sub(b)
    days := d.Hours() / 24
    if days >= 0 {
        return int(days + 0.5)
    }
    return int(days - 0.5)
}

// Midnight truncates a time to its UTC calendar day.
func Midnight(t time.Time) time.Time {
    y, m, d := t.UTC().Date()
    return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
