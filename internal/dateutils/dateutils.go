// Package dateutils provides the ledger date validation and date range helpers.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Date layouts accepted in ledgers.
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutEuropean = "02.01.2006"
	DateLayoutSlashISO = "2006/01/02"
)

// DefaultLayouts is the layout list used when none is configured.
var DefaultLayouts = []string{DateLayoutISO}

var whitespace = regexp.MustCompile(`\s+`)

// ParseDate parses dateStr with the first matching layout. The layouts are
// tried in order; an empty list means DefaultLayouts. Calendar-invalid dates
// such as 2024-02-30 are rejected by time.Parse.
func ParseDate(dateStr string, layouts []string) (time.Time, error) {
	dateStr = CleanDateString(dateStr)
	if dateStr == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if len(layouts) == 0 {
		layouts = DefaultLayouts
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// CleanDateString trims and collapses internal whitespace.
func CleanDateString(dateStr string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// DateRange represents an inclusive range of calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// IsZero reports whether the range has not been set.
func (dr DateRange) IsZero() bool {
	return dr.Start.IsZero() || dr.End.IsZero()
}

// String returns "YYYY-MM-DD to YYYY-MM-DD", or "N/A" for an empty range.
func (dr DateRange) String() string {
	if dr.IsZero() {
		return "N/A"
	}
	return fmt.Sprintf("%s to %s", ToISODate(dr.Start), ToISODate(dr.End))
}

// Extend returns the smallest range that contains both dr and date.
func (dr DateRange) Extend(date time.Time) DateRange {
	if date.IsZero() {
		return dr
	}
	if dr.IsZero() {
		return DateRange{Start: date, End: date}
	}
	if date.Before(dr.Start) {
		dr.Start = date
	}
	if date.After(dr.End) {
		dr.End = date
	}
	return dr
}
