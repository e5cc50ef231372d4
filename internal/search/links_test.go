package search

import "testing"

const fixtureHTML = `
<html><body>
  <a href="https://www.linkedin.com/in/jdupont?miniProfile=abc">Jeanne Dupont</a>
  <a href="/in/martin-l/">Martin L</a>
  <a href="https://www.linkedin.com/in/jdupont">Jeanne again</a>
  <a href="https://www.linkedin.com/company/grand-frais/">Grand Frais</a>
  <a href="https://www.linkedin.com/search/results/people/?page=2">Next</a>
  <a href="#top">Top</a>
  <a href="/in/">broken</a>
</body></html>`

func TestProfileLinks(t *testing.T) {
	t.Parallel()

	links, err := ProfileLinks(fixtureHTML, "https://www.linkedin.com/search/results/people/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expect := []string{
		"https://www.linkedin.com/in/jdupont",
		"https://www.linkedin.com/in/martin-l",
	}

	if len(links) != len(expect) {
		t.Fatalf("expected %d links, got %d: %v", len(expect), len(links), links)
	}
	for i := range expect {
		if links[i] != expect[i] {
			t.Fatalf("link %d: expected %q, got %q", i, expect[i], links[i])
		}
	}
}

func TestProfileLinksEmptyDocument(t *testing.T) {
	t.Parallel()

	links, err := ProfileLinks("<html><body></body></html>", "https://www.linkedin.com/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(links) != 0 {
		t.Fatalf("expected no links, got %v", links)
	}
}

func TestWithPageParam(t *testing.T) {
	t.Parallel()

	base := "https://www.linkedin.com/search/results/people/?keywords=retail"

	first, err := withPageParam(base, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != base {
		t.Fatalf("page 1 must keep the URL untouched, got %q", first)
	}

	second, err := withPageParam(base, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second != "https://www.linkedin.com/search/results/people/?keywords=retail&page=2" {
		t.Fatalf("unexpected page 2 url: %q", second)
	}
}
