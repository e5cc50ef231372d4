package engine

import (
	"strings"
	"time"

	"li-sourcer/internal/targets"
)

const (
	// EnglishLiteral is the fixed value emitted when a profile lists English.
	EnglishLiteral = "english"
	// ParisLiteral is the fixed value emitted for profiles located in the
	// Paris region.
	ParisLiteral = "Paris et périphérie"
)

// EnglishFlag returns EnglishLiteral when any language entry mentions
// English (or its French spelling), otherwise the empty string.
func EnglishFlag(languages []string) string {
	for _, language := range languages {
		l := strings.ToLower(language)
		if strings.Contains(l, "english") || strings.Contains(l, "anglais") {
			return EnglishLiteral
		}
	}
	return ""
}

// ParisFlag returns ParisLiteral when the location mentions Paris or
// Île-de-France, otherwise the empty string.
func ParisFlag(location string) string {
	l := strings.ToLower(location)
	if strings.Contains(l, "paris") ||
		strings.Contains(l, "île-de-france") ||
		strings.Contains(l, "ile-de-france") {
		return ParisLiteral
	}
	return ""
}

// FoodRetailerYears sums stint durations at employers matching the retailer
// list. Classification here is independent of target/peer: a stint counted
// as target tenure still counts again as retailer tenure.
func FoodRetailerYears(experiences []Experience, retailers targets.List, threshold int, now time.Time) float64 {
	months := 0
	for _, exp := range experiences {
		if MatchesAny(exp.Company, retailers, threshold) {
			months += StintMonths(exp.Start, exp.End, now)
		}
	}
	return YearsFromMonths(months)
}
