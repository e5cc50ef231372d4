package filtering

import (
	"context"
	"strings"
)

type processedFilter struct {
	processed map[string]struct{}
}

// NewProcessed creates a filter that removes URLs already present in a
// previous export. Used by resume mode so interrupted runs pick up where
// they stopped.
func NewProcessed(processed map[string]struct{}) Filter {
	return &processedFilter{processed: processed}
}

func (f *processedFilter) Name() string { return "already_processed" }

func (f *processedFilter) Apply(_ context.Context, urls []string) ([]string, Step, error) {
	initial := len(urls)
	if len(f.processed) == 0 {
		return urls, Step{Initial: initial, Dropped: 0, Left: initial}, nil
	}

	kept := make([]string, 0, initial)
	for _, u := range urls {
		if _, ok := f.processed[normalizeURL(u)]; ok {
			continue
		}
		kept = append(kept, u)
	}

	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, nil
}

func normalizeURL(u string) string {
	return strings.TrimSuffix(strings.TrimSpace(u), "/")
}
