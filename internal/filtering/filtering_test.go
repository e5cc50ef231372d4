package filtering

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestDedupeFilter(t *testing.T) {
	t.Parallel()

	urls := []string{
		"https://x/in/a",
		"https://x/in/a/",
		"  https://x/in/b",
		"",
		"https://x/in/a",
	}

	kept, step, err := NewDedupe().Apply(context.Background(), urls)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(kept) != 2 {
		t.Fatalf("expected 2 urls, got %v", kept)
	}
	if step.Initial != 5 || step.Dropped != 3 || step.Left != 2 {
		t.Fatalf("unexpected step: %+v", step)
	}
}

func TestProcessedFilter(t *testing.T) {
	t.Parallel()

	processed := map[string]struct{}{
		"https://x/in/a": {},
	}

	kept, step, err := NewProcessed(processed).Apply(context.Background(),
		[]string{"https://x/in/a/", "https://x/in/b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(kept) != 1 || kept[0] != "https://x/in/b" {
		t.Fatalf("unexpected urls: %v", kept)
	}
	if step.Dropped != 1 {
		t.Fatalf("unexpected step: %+v", step)
	}

	// No processed set means a no-op.
	kept, _, err = NewProcessed(nil).Apply(context.Background(), []string{"https://x/in/a"})
	if err != nil || len(kept) != 1 {
		t.Fatalf("expected pass-through, got %v (%v)", kept, err)
	}
}

func TestExcludeFileFilter(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "exclude.txt")
	if err := os.WriteFile(path, []byte("https://x/in/skip\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	kept, _, err := NewExcludeFile(path).Apply(context.Background(),
		[]string{"https://x/in/skip", "https://x/in/keep"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(kept) != 1 || kept[0] != "https://x/in/keep" {
		t.Fatalf("unexpected urls: %v", kept)
	}

	// Unset path disables the filter.
	kept, _, err = NewExcludeFile("").Apply(context.Background(), []string{"https://x/in/a"})
	if err != nil || len(kept) != 1 {
		t.Fatalf("expected pass-through, got %v (%v)", kept, err)
	}

	// Missing file is an error, not a silent pass.
	if _, _, err := NewExcludeFile(filepath.Join(t.TempDir(), "nope.txt")).Apply(context.Background(), nil); err == nil {
		t.Fatalf("expected error for missing exclude file")
	}
}

func TestRunChainsFilters(t *testing.T) {
	t.Parallel()

	urls := []string{"https://x/in/a", "https://x/in/a", "https://x/in/b"}
	processed := map[string]struct{}{"https://x/in/b": {}}

	kept, err := Run(context.Background(), zap.NewNop(),
		[]Filter{NewDedupe(), NewProcessed(processed)}, urls)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(kept) != 1 || kept[0] != "https://x/in/a" {
		t.Fatalf("unexpected urls: %v", kept)
	}
}
