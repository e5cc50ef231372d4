package search

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ProfileLinks extracts profile URLs from rendered search-result HTML.
// Links are absolutized against baseURL, stripped of query and fragment,
// and deduplicated preserving document order.
func ProfileLinks(html string, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var links []string

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return
		}

		linkURL, err := url.Parse(href)
		if err != nil {
			return
		}

		resolved := base.ResolveReference(linkURL)
		if !isProfilePath(resolved.Path) {
			return
		}

		resolved.RawQuery = ""
		resolved.Fragment = ""
		link := strings.TrimSuffix(resolved.String(), "/")

		if _, ok := seen[link]; ok {
			return
		}
		seen[link] = struct{}{}
		links = append(links, link)
	})

	return links, nil
}

// isProfilePath accepts /in/<handle> member profile paths and rejects
// search, company and asset links.
func isProfilePath(path string) bool {
	path = strings.Trim(path, "/")
	parts := strings.Split(path, "/")
	return len(parts) >= 2 && parts[0] == "in" && parts[1] != ""
}
