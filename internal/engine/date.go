package engine

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// DateKind discriminates the shapes a profile date can arrive in.
type DateKind int

const (
	DateMissing DateKind = iota
	DateYearOnly
	DateYearMonth
	DateFull
	DatePresent
)

// Date is a profile date resolved to month granularity. Missing covers both
// absent values and strings that could not be parsed; Present marks an
// ongoing stint.
type Date struct {
	Kind  DateKind
	Year  int
	Month time.Month
	Day   int
}

var monthsByName = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

var fullLayouts = []string{"2006-01-02", "2006/01/02", "Jan 2, 2006"}

var yearMonthLayouts = []string{"2006-01", "2006/01", "01/2006", "01-2006"}

// ParseDate turns a raw date string into a Date. Anything unrecognized
// becomes Missing rather than an error.
func ParseDate(raw string) Date {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Date{Kind: DateMissing}
	}

	switch strings.ToLower(s) {
	case "present", "current", "now", "ongoing":
		return Date{Kind: DatePresent}
	}

	for _, layout := range fullLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{Kind: DateFull, Year: t.Year(), Month: t.Month(), Day: t.Day()}
		}
	}

	for _, layout := range yearMonthLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{Kind: DateYearMonth, Year: t.Year(), Month: t.Month()}
		}
	}

	if fields := strings.Fields(s); len(fields) == 2 {
		if month, ok := parseMonth(fields[0]); ok {
			if year, ok := parseYear(fields[1]); ok {
				return Date{Kind: DateYearMonth, Year: year, Month: month}
			}
		}
	}

	if year, ok := parseYear(s); ok {
		return Date{Kind: DateYearOnly, Year: year}
	}

	return Date{Kind: DateMissing}
}

func parseMonth(s string) (time.Month, bool) {
	s = strings.ToLower(strings.TrimRight(s, "."))
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= 12 {
			return time.Month(n), true
		}
		return 0, false
	}
	if len(s) > 3 {
		s = s[:3]
	}
	month, ok := monthsByName[s]
	return month, ok
}

func parseYear(s string) (int, bool) {
	year, err := strconv.Atoi(s)
	if err != nil || year < 1000 || year > 9999 {
		return 0, false
	}
	return year, true
}

// Index resolves the date to an absolute month index. A year-only date
// resolves to January of that year; Present resolves to now. The second
// return is false for Missing dates, which have no position on the axis.
func (d Date) Index(now time.Time) (int, bool) {
	switch d.Kind {
	case DatePresent:
		return now.Year()*12 + int(now.Month()) - 1, true
	case DateYearOnly:
		return d.Year * 12, true
	case DateYearMonth, DateFull:
		return d.Year*12 + int(d.Month) - 1, true
	default:
		return 0, false
	}
}

// StintMonths returns the length of an employment stint in months. A
// missing start contributes nothing; a missing end means the stint is
// ongoing. Intervals that end before they begin count as zero.
func StintMonths(start, end Date, now time.Time) int {
	from, ok := start.Index(now)
	if !ok {
		return 0
	}

	to, ok := end.Index(now)
	if !ok {
		to, _ = Date{Kind: DatePresent}.Index(now)
	}

	if to <= from {
		return 0
	}
	return to - from
}

// YearsFromMonths converts a month count to years rounded to the nearest
// 0.5, half-up on ties. Aggregates sum raw months and convert once here so
// rounding error never compounds across stints.
func YearsFromMonths(months int) float64 {
	if months <= 0 {
		return 0
	}
	years := float64(months) / 12
	return math.Floor(years*2+0.5) / 2
}
