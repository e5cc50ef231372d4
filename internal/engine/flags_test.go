package engine

import (
	"testing"

	"li-sourcer/internal/targets"
)

func TestEnglishFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		languages []string
		expect    string
	}{
		{name: "capitalized", languages: []string{"English"}, expect: "english"},
		{name: "mixed entry", languages: []string{"english, French"}, expect: "english"},
		{name: "among others", languages: []string{"Français", "English"}, expect: "english"},
		{name: "french spelling", languages: []string{"Anglais"}, expect: "english"},
		{name: "no english", languages: []string{"Français"}, expect: ""},
		{name: "empty", languages: nil, expect: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EnglishFlag(tt.languages); got != tt.expect {
				t.Fatalf("EnglishFlag(%v) = %q, expected %q", tt.languages, got, tt.expect)
			}
		})
	}
}

func TestParisFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		location string
		expect   string
	}{
		{name: "paris region", location: "Paris, Île-de-France", expect: ParisLiteral},
		{name: "lowercase", location: "paris, france", expect: ParisLiteral},
		{name: "ile de france without city", location: "Boulogne-Billancourt, Ile-de-France", expect: ParisLiteral},
		{name: "other city", location: "Lyon", expect: ""},
		{name: "empty", location: "", expect: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParisFlag(tt.location); got != tt.expect {
				t.Fatalf("ParisFlag(%q) = %q, expected %q", tt.location, got, tt.expect)
			}
		})
	}
}

func TestFoodRetailerYearsIndependentOfTargetClassification(t *testing.T) {
	t.Parallel()

	retailers := targets.List{"Grand Frais", "Carrefour"}
	experiences := []Experience{
		stint("Grand Frais", "Manager", "2015-01", "2018-06"), // 41 months
		stint("Carrefour", "Analyst", "2010-01", "2014-12"),   // 59 months
		stint("Acme Corp", "Clerk", "2008-01", "2009-01"),
	}

	// 100 retailer months even though Grand Frais would also classify as a
	// target company elsewhere.
	if got := FoodRetailerYears(experiences, retailers, DefaultThreshold, testNow); got != 8.5 {
		t.Fatalf("expected 8.5 retailer years, got %v", got)
	}

	if got := FoodRetailerYears(nil, retailers, DefaultThreshold, testNow); got != 0 {
		t.Fatalf("expected 0 retailer years for empty history, got %v", got)
	}
}
