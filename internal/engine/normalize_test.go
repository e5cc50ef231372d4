package engine

import (
	"testing"
	"time"

	"li-sourcer/internal/targets"
)

func testNormalizer() *Normalizer {
	n := NewNormalizer(
		targets.List{"HEC Paris", "ESSEC"},
		targets.List{"Grand Frais"},
		targets.List{"Carrefour"},
	)
	n.Now = func() time.Time { return testNow }
	return n
}

func TestNormalizeFullScenario(t *testing.T) {
	t.Parallel()

	raw := &RawProfile{
		URL:      "https://www.linkedin.com/in/jdupont",
		Name:     "Jeanne Dupont",
		Location: "Paris, France",
		Experiences: []Experience{
			stint("Grand Frais", "Manager", "2015-01", "2018-06"),
			stint("Carrefour", "Analyst", "2010-01", "2014-12"),
		},
		Educations: []Education{{School: "HEC Paris"}},
		Languages:  []string{"French", "English"},
	}

	row := testNormalizer().Normalize(raw)

	expect := map[string]string{
		"name":            "Jeanne Dupont",
		"total years":     "8.5",
		"target years":    "3.5",
		"target titles":   "Manager",
		"current company": "Grand Frais",
		"url":             "https://www.linkedin.com/in/jdupont",
		"schools":         "HEC Paris",
		"target school":   "HEC Paris",
		"languages":       "French, English",
		"english flag":    "english",
		"city":            "Paris, France",
		"paris flag":      ParisLiteral,
		"retailer years":  "5.0",
	}

	got := map[string]string{
		"name":            row.Name,
		"total years":     formatYears(row.TotalYears),
		"target years":    formatYears(row.TargetYears),
		"target titles":   row.TargetTitles,
		"current company": row.CurrentCompany,
		"url":             row.LinkedinURL,
		"schools":         row.Schools,
		"target school":   row.TargetSchool,
		"languages":       row.Languages,
		"english flag":    row.EnglishFlag,
		"city":            row.City,
		"paris flag":      row.ParisFlag,
		"retailer years":  formatYears(row.RetailerYears),
	}

	for field, want := range expect {
		if got[field] != want {
			t.Fatalf("%s: expected %q, got %q", field, want, got[field])
		}
	}
}

func TestNormalizeEmptyProfile(t *testing.T) {
	t.Parallel()

	row := testNormalizer().Normalize(&RawProfile{})

	if row.TotalYears != 0 || row.TargetYears != 0 || row.RetailerYears != 0 {
		t.Fatalf("expected zero year fields, got %+v", row)
	}
	for i, value := range row.Record() {
		switch Headers()[i] {
		case "total_years_experience", "years_at_target_companies", "years_at_food_retailers":
			if value != "0.0" {
				t.Fatalf("column %s: expected 0.0, got %q", Headers()[i], value)
			}
		default:
			if value != "" {
				t.Fatalf("column %s: expected empty, got %q", Headers()[i], value)
			}
		}
	}
}

func TestNormalizeNilProfile(t *testing.T) {
	t.Parallel()

	row := testNormalizer().Normalize(nil)
	if row == nil {
		t.Fatalf("expected a row, got nil")
	}
	if len(row.Record()) != len(Headers()) {
		t.Fatalf("record/header length mismatch: %d vs %d", len(row.Record()), len(Headers()))
	}
}

func TestNormalizeMalformedDates(t *testing.T) {
	t.Parallel()

	raw := &RawProfile{
		Name: "Broken Dates",
		Experiences: []Experience{
			stint("Somewhere", "Intern", "N/A", ""),
		},
	}

	row := testNormalizer().Normalize(raw)
	if row.TotalYears != 0 {
		t.Fatalf("expected 0 years from malformed stint, got %v", row.TotalYears)
	}
	// Even a zero-length stint identifies a current employer when it is the
	// only open-ended one.
	if row.CurrentCompany != "Somewhere" {
		t.Fatalf("expected Somewhere as current company, got %q", row.CurrentCompany)
	}
}

func TestNormalizeTargetSchoolPrefersEarlierInstitutionOnTies(t *testing.T) {
	t.Parallel()

	n := testNormalizer()
	raw := &RawProfile{
		Educations: []Education{
			{School: "ESSEC"},
			{School: "HEC Paris"},
		},
	}

	row := n.Normalize(raw)
	// Both match their list entry with score 100; the institution listed
	// first on the profile wins.
	if row.TargetSchool != "ESSEC" {
		t.Fatalf("expected ESSEC, got %q", row.TargetSchool)
	}
	if row.Schools != "ESSEC, HEC Paris" {
		t.Fatalf("unexpected schools join: %q", row.Schools)
	}
}

func TestHeadersOrder(t *testing.T) {
	t.Parallel()

	expect := []string{
		"name",
		"job_titles_at_target_companies",
		"total_years_experience",
		"years_at_target_companies",
		"current_company",
		"linkedin_url",
		"schools_attended",
		"target_school",
		"spoken_languages",
		"english_flag",
		"city_location",
		"paris_flag",
		"years_at_food_retailers",
	}

	headers := Headers()
	if len(headers) != len(expect) {
		t.Fatalf("expected %d headers, got %d", len(expect), len(headers))
	}
	for i := range expect {
		if headers[i] != expect[i] {
			t.Fatalf("header %d: expected %q, got %q", i, expect[i], headers[i])
		}
	}
}
