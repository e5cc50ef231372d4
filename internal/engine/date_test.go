package engine

import (
	"testing"
	"time"
)

var testNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func TestParseDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect Date
	}{
		{
			name:   "full date",
			input:  "2018-06-01",
			expect: Date{Kind: DateFull, Year: 2018, Month: time.June, Day: 1},
		},
		{
			name:   "year and month numeric",
			input:  "2015-01",
			expect: Date{Kind: DateYearMonth, Year: 2015, Month: time.January},
		},
		{
			name:   "abbreviated month name",
			input:  "Jan 2020",
			expect: Date{Kind: DateYearMonth, Year: 2020, Month: time.January},
		},
		{
			name:   "full month name lowercased",
			input:  "september 2019",
			expect: Date{Kind: DateYearMonth, Year: 2019, Month: time.September},
		},
		{
			name:   "numeric month and year",
			input:  "6 2017",
			expect: Date{Kind: DateYearMonth, Year: 2017, Month: time.June},
		},
		{
			name:   "year only",
			input:  "2020",
			expect: Date{Kind: DateYearOnly, Year: 2020},
		},
		{
			name:   "present sentinel",
			input:  "Present",
			expect: Date{Kind: DatePresent},
		},
		{
			name:   "current sentinel",
			input:  "current",
			expect: Date{Kind: DatePresent},
		},
		{
			name:   "empty",
			input:  "   ",
			expect: Date{Kind: DateMissing},
		},
		{
			name:   "garbage",
			input:  "N/A",
			expect: Date{Kind: DateMissing},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseDate(tt.input); got != tt.expect {
				t.Fatalf("ParseDate(%q) = %+v, expected %+v", tt.input, got, tt.expect)
			}
		})
	}
}

func TestStintMonths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		start  string
		end    string
		expect int
	}{
		{name: "regular interval", start: "2015-01", end: "2018-06", expect: 41},
		{name: "missing start contributes zero", start: "", end: "2018-06", expect: 0},
		{name: "unparseable start contributes zero", start: "N/A", end: "2018-06", expect: 0},
		{name: "missing end runs until now", start: "2023-03", end: "", expect: 12},
		{name: "present end runs until now", start: "2023-03", end: "Present", expect: 12},
		{name: "end before start is zero", start: "2020-06", end: "2019-01", expect: 0},
		{name: "same month is zero", start: "2020-06", end: "2020-06", expect: 0},
		{name: "year only resolves to january", start: "2020", end: "2021", expect: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StintMonths(ParseDate(tt.start), ParseDate(tt.end), testNow)
			if got != tt.expect {
				t.Fatalf("StintMonths(%q, %q) = %d, expected %d", tt.start, tt.end, got, tt.expect)
			}
		})
	}
}

func TestYearsFromMonths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		months int
		expect float64
	}{
		{months: 0, expect: 0},
		{months: -5, expect: 0},
		{months: 2, expect: 0},
		{months: 3, expect: 0.5},
		{months: 41, expect: 3.5},
		{months: 59, expect: 5.0},
		{months: 100, expect: 8.5},
		{months: 9, expect: 1.0}, // 0.75 years, half-up
	}

	for _, tt := range tests {
		if got := YearsFromMonths(tt.months); got != tt.expect {
			t.Fatalf("YearsFromMonths(%d) = %v, expected %v", tt.months, got, tt.expect)
		}
	}
}

func TestYearsFromMonthsMonotonic(t *testing.T) {
	t.Parallel()

	prev := YearsFromMonths(0)
	for months := 1; months <= 600; months++ {
		got := YearsFromMonths(months)
		if got < prev {
			t.Fatalf("adding a month decreased years: %d months = %v, %d months = %v",
				months-1, prev, months, got)
		}
		prev = got
	}
}
