package engine

import "strconv"

// Row is the canonical 13-field output of a normalization call. Every field
// is always set: strings default to "" and year counts to 0, so callers
// never need to null-check.
type Row struct {
	Name           string
	TargetTitles   string
	TotalYears     float64
	TargetYears    float64
	CurrentCompany string
	LinkedinURL    string
	Schools        string
	TargetSchool   string
	Languages      string
	EnglishFlag    string
	City           string
	ParisFlag      string
	RetailerYears  float64
}

// Headers returns the column names in the fixed export order.
func Headers() []string {
	return []string{
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
}

// Record returns the row's values aligned with Headers.
func (r *Row) Record() []string {
	return []string{
		r.Name,
		r.TargetTitles,
		formatYears(r.TotalYears),
		formatYears(r.TargetYears),
		r.CurrentCompany,
		r.LinkedinURL,
		r.Schools,
		r.TargetSchool,
		r.Languages,
		r.EnglishFlag,
		r.City,
		r.ParisFlag,
		formatYears(r.RetailerYears),
	}
}

// formatYears renders a half-year-rounded duration with one decimal place,
// so 5 exports as "5.0" and 3.5 as "3.5".
func formatYears(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
