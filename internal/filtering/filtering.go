// Package filtering narrows the profile URL list before any API credit is
// spent. Filters run sequentially and report per-step accounting.
package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Filter represents a single filtering step applied to profile URLs.
type Filter interface {
	Name() string
	Apply(ctx context.Context, urls []string) ([]string, Step, error)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Run executes the supplied filters sequentially and returns the surviving
// URLs.
func Run(ctx context.Context, logger *zap.Logger, steps []Filter, urls []string) ([]string, error) {
	for _, step := range steps {
		next, info, err := step.Apply(ctx, urls)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		if logger != nil {
			logger.Info("filter step",
				zap.String("name", step.Name()),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("left", info.Left),
			)
		}

		urls = next
	}

	return urls, nil
}
