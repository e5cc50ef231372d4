package engine

import (
	"strings"
	"time"

	"li-sourcer/internal/targets"
)

// Tenure is the aggregate over a profile's employment history. Overlapping
// stints are summed flat, not merged; two concurrent roles count twice.
type Tenure struct {
	TotalYears     float64
	TargetYears    float64
	PeerYears      float64
	TargetTitles   []string
	CurrentCompany string
}

// AggregateTenure walks the experience list once, summing raw month counts
// and converting to years at the end. A stint counts toward at most one of
// target/peer years; the target list takes priority when both match. The
// current company is the stint with the latest end, and among open-ended
// stints the one with the latest start.
func AggregateTenure(experiences []Experience, targetList, peerList targets.List, threshold int, now time.Time) Tenure {
	var totalMonths, targetMonths, peerMonths int
	var titles []string
	seenTitles := make(map[string]struct{})

	currentCompany := ""
	bestEnd, bestStart := -1, -1

	for _, exp := range experiences {
		months := StintMonths(exp.Start, exp.End, now)
		totalMonths += months

		isTarget := MatchesAny(exp.Company, targetList, threshold)
		switch {
		case isTarget:
			targetMonths += months
		case MatchesAny(exp.Company, peerList, threshold):
			peerMonths += months
		}

		if isTarget {
			if title := strings.TrimSpace(exp.Title); title != "" {
				if _, ok := seenTitles[title]; !ok {
					seenTitles[title] = struct{}{}
					titles = append(titles, title)
				}
			}
		}

		end, ok := exp.End.Index(now)
		if !ok {
			// Open-ended stint.
			end, _ = Date{Kind: DatePresent}.Index(now)
		}
		start, ok := exp.Start.Index(now)
		if !ok {
			start = -1
		}

		if end > bestEnd || (end == bestEnd && start > bestStart) {
			bestEnd = end
			bestStart = start
			currentCompany = strings.TrimSpace(exp.Company)
		}
	}

	return Tenure{
		TotalYears:     YearsFromMonths(totalMonths),
		TargetYears:    YearsFromMonths(targetMonths),
		PeerYears:      YearsFromMonths(peerMonths),
		TargetTitles:   titles,
		CurrentCompany: currentCompany,
	}
}
