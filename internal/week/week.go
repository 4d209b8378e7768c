// Package week owns the calendar math behind the `YYYY-MM-W<n>` week
// identifier that scopes availability, schedule and request records.
// The scheduling core treats these strings as opaque; everything that
// needs to turn them back into dates goes through this package so the
// format is produced in exactly one place.
//
// Weeks run Monday through Sunday. Week 1 of a month is the week
// containing the 1st, anchored at the Monday on or before it, so a
// month spans four to six week slots and its first days may fall in a
// week that started in the previous month.
package week

import (
	"fmt"
	"time"
)

// dayNames indexes day names by the 0-based day index used across the
// schedule grid (0 = Monday).
var dayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DayName returns the display name for a 0-based day index, or an
// empty string when the index is out of range.
func DayName(idx int) string {
	if idx < 0 || idx >= len(dayNames) {
		return ""
	}
	return dayNames[idx]
}

// ID builds the week identifier for the n-th week of a month.
func ID(year int, month time.Month, n int) string {
	return fmt.Sprintf("%04d-%02d-W%d", year, int(month), n)
}

// Parse splits a week identifier back into its parts. It rejects
// malformed strings so handlers can validate user-supplied week
// parameters before touching storage.
func Parse(id string) (year int, month time.Month, n int, err error) {
	var m int
	if _, err = fmt.Sscanf(id, "%4d-%2d-W%d", &year, &m, &n); err != nil {
		return 0, 0, 0, fmt.Errorf("invalid week id %q", id)
	}
	if m < 1 || m > 12 || n < 1 || n > 6 || year < 1 {
		return 0, 0, 0, fmt.Errorf("invalid week id %q", id)
	}
	// Sscanf stops after the last verb, so trailing garbage and
	// non-canonical spellings would otherwise slip through. Re-render
	// and require an exact match.
	if ID(year, time.Month(m), n) != id {
		return 0, 0, 0, fmt.Errorf("invalid week id %q", id)
	}
	return year, time.Month(m), n, nil
}

// firstMonday returns the Monday on or before the 1st of the month.
func firstMonday(year int, month time.Month) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := int(time.Monday - first.Weekday())
	if first.Weekday() == time.Sunday {
		offset = -6
	}
	return first.AddDate(0, 0, offset)
}

// Start returns the Monday a week identifier begins on.
func Start(id string) (time.Time, error) {
	year, month, n, err := Parse(id)
	if err != nil {
		return time.Time{}, err
	}
	return firstMonday(year, month).AddDate(0, 0, (n-1)*7), nil
}

// Dates returns the seven dates a week identifier covers, Monday first.
func Dates(id string) ([7]time.Time, error) {
	var out [7]time.Time
	start, err := Start(id)
	if err != nil {
		return out, err
	}
	for i := range out {
		out[i] = start.AddDate(0, 0, i)
	}
	return out, nil
}

// ForDate returns the identifier of the week containing t, expressed
// against t's own month.
func ForDate(t time.Time) string {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	anchor := firstMonday(t.Year(), t.Month())
	n := int(t.Sub(anchor).Hours()/24)/7 + 1
	return ID(t.Year(), t.Month(), n)
}
