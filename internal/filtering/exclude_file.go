package filtering

import (
	"context"
	"fmt"

	"li-sourcer/internal/targets"
)

type excludeFileFilter struct {
	path string
}

// NewExcludeFile creates a filter that removes URLs listed in a
// line-delimited exclude file. An empty path disables the filter.
func NewExcludeFile(path string) Filter {
	return &excludeFileFilter{path: path}
}

func (f *excludeFileFilter) Name() string { return "exclude_file" }

func (f *excludeFileFilter) Apply(_ context.Context, urls []string) ([]string, Step, error) {
	initial := len(urls)
	if f.path == "" {
		return urls, Step{Initial: initial, Dropped: 0, Left: initial}, nil
	}

	excluded, err := targets.FromFile(f.path)
	if err != nil {
		return nil, Step{}, fmt.Errorf("loading exclude file: %w", err)
	}

	drop := make(map[string]struct{}, len(excluded))
	for _, u := range excluded {
		drop[normalizeURL(u)] = struct{}{}
	}

	kept := make([]string, 0, initial)
	for _, u := range urls {
		if _, ok := drop[normalizeURL(u)]; ok {
			continue
		}
		kept = append(kept, u)
	}

	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, nil
}
