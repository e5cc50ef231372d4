package engine

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"li-sourcer/internal/targets"
)

// DefaultThreshold is the minimum similarity score (0-100) for a candidate
// string to count as a match against a reference list.
const DefaultThreshold = 85

// Match is a successful fuzzy match against a reference list.
type Match struct {
	Target string
	Score  int
}

func normalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Score returns the token-sort similarity ratio between two strings,
// case-insensitive and whitespace-normalized. Identical strings score 100.
func Score(a, b string) int {
	a = normalizeText(a)
	b = normalizeText(b)
	if a == "" || b == "" {
		return 0
	}
	return fuzzy.TokenSortRatio(a, b)
}

// BestMatch scores the candidate against every list entry and returns the
// best one at or above the threshold. Among equal top scores the entry
// declared first in the list wins. An empty candidate never matches.
func BestMatch(candidate string, list targets.List, threshold int) (Match, bool) {
	if normalizeText(candidate) == "" || len(list) == 0 {
		return Match{}, false
	}

	best := Match{Score: -1}
	for _, target := range list {
		if score := Score(candidate, target); score > best.Score {
			best = Match{Target: target, Score: score}
		}
	}

	if best.Score < threshold {
		return Match{}, false
	}
	return best, true
}

// MatchesAny reports whether the candidate matches any list entry at the
// given threshold.
func MatchesAny(candidate string, list targets.List, threshold int) bool {
	_, ok := BestMatch(candidate, list, threshold)
	return ok
}
