package filtering

import (
	"context"
	"strings"
)

type dedupeFilter struct{}

// NewDedupe creates a filter that removes duplicate URLs, keeping first
// occurrence order. Comparison ignores a trailing slash.
func NewDedupe() Filter {
	return &dedupeFilter{}
}

func (f *dedupeFilter) Name() string { return "dedupe" }

func (f *dedupeFilter) Apply(_ context.Context, urls []string) ([]string, Step, error) {
	initial := len(urls)

	seen := make(map[string]struct{}, initial)
	kept := make([]string, 0, initial)
	for _, u := range urls {
		key := strings.TrimSuffix(strings.TrimSpace(u), "/")
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, u)
	}

	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, nil
}
