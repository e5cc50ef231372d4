// Package engine derives the canonical screening fields from raw profile
// records: date-interval arithmetic, fuzzy matching against reference
// lists, tenure aggregation and flag derivation. The engine does no I/O,
// holds no mutable state and is safe for concurrent use on independent
// profiles.
package engine

import (
	"strings"
	"time"

	"li-sourcer/internal/targets"
)

// Normalizer turns raw profiles into Rows against a fixed set of reference
// lists. Lists are explicit inputs, never ambient state, so tests can
// supply ad hoc lists freely. Peers is optional and may be nil.
type Normalizer struct {
	Schools   targets.List
	Companies targets.List
	Peers     targets.List
	Retailers targets.List

	// Threshold is the fuzzy-match cutoff; DefaultThreshold when zero.
	Threshold int
	// Now supplies the processing time for open-ended stints; time.Now
	// when nil. Tests pin it for stable durations.
	Now func() time.Time
}

// NewNormalizer builds a Normalizer with the default threshold and clock.
func NewNormalizer(schools, companies, retailers targets.List) *Normalizer {
	return &Normalizer{
		Schools:   schools,
		Companies: companies,
		Retailers: retailers,
		Threshold: DefaultThreshold,
		Now:       time.Now,
	}
}

// Normalize derives the 13-field row for one profile. It is a pure function
// of the profile and the reference lists and never fails: anything that
// cannot be derived resolves to its empty/zero default.
func (n *Normalizer) Normalize(raw *RawProfile) *Row {
	row := &Row{}
	if raw == nil {
		return row
	}

	threshold := n.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	now := time.Now()
	if n.Now != nil {
		now = n.Now()
	}

	row.Name = strings.TrimSpace(raw.Name)
	row.LinkedinURL = strings.TrimSpace(raw.URL)
	row.City = strings.TrimSpace(raw.Location)
	row.ParisFlag = ParisFlag(row.City)

	row.Languages = joinNonEmpty(raw.Languages)
	row.EnglishFlag = EnglishFlag(raw.Languages)

	tenure := AggregateTenure(raw.Experiences, n.Companies, n.Peers, threshold, now)
	row.TotalYears = tenure.TotalYears
	row.TargetYears = tenure.TargetYears
	row.TargetTitles = strings.Join(tenure.TargetTitles, ", ")
	row.CurrentCompany = tenure.CurrentCompany
	row.RetailerYears = FoodRetailerYears(raw.Experiences, n.Retailers, threshold, now)

	schools := make([]string, 0, len(raw.Educations))
	bestScore := -1
	for _, edu := range raw.Educations {
		school := strings.TrimSpace(edu.School)
		if school == "" {
			continue
		}
		schools = append(schools, school)

		// Strictly-greater keeps the earliest-listed institution on ties.
		if match, ok := BestMatch(school, n.Schools, threshold); ok && match.Score > bestScore {
			bestScore = match.Score
			row.TargetSchool = match.Target
		}
	}
	row.Schools = strings.Join(schools, ", ")

	return row
}

func joinNonEmpty(values []string) string {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			kept = append(kept, v)
		}
	}
	return strings.Join(kept, ", ")
}
