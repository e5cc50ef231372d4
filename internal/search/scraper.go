// Package search collects profile URLs from search-result pages. Result
// pages are JavaScript-rendered, so they are loaded in a headless browser
// and the rendered HTML is parsed for profile links.
package search

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

const defaultMaxPages = 10

// Scraper drives a headless browser over paginated search results.
type Scraper struct {
	Headless    bool
	PageTimeout time.Duration
	logger      *zap.Logger
}

func New(logger *zap.Logger, headless bool) *Scraper {
	return &Scraper{
		Headless:    headless,
		PageTimeout: 45 * time.Second,
		logger:      logger,
	}
}

// Collect renders up to maxPages of search results and returns the
// deduplicated profile URLs found. Pagination stops early when a page
// yields no new links.
func (s *Scraper) Collect(ctx context.Context, searchURL string, maxPages int) ([]string, error) {
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", s.Headless),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	seen := make(map[string]struct{})
	var collected []string

	for page := 1; page <= maxPages; page++ {
		pageURL, err := withPageParam(searchURL, page)
		if err != nil {
			return nil, fmt.Errorf("building page url: %w", err)
		}

		html, err := s.renderPage(browserCtx, pageURL)
		if err != nil {
			return nil, fmt.Errorf("rendering page %d: %w", page, err)
		}

		links, err := ProfileLinks(html, pageURL)
		if err != nil {
			return nil, fmt.Errorf("extracting links from page %d: %w", page, err)
		}

		added := 0
		for _, link := range links {
			if _, ok := seen[link]; ok {
				continue
			}
			seen[link] = struct{}{}
			collected = append(collected, link)
			added++
		}

		s.logger.Info("scraped search page",
			zap.Int("page", page),
			zap.Int("new_profiles", added),
			zap.Int("total_profiles", len(collected)),
		)

		if added == 0 {
			break
		}
	}

	return collected, nil
}

func (s *Scraper) renderPage(ctx context.Context, pageURL string) (string, error) {
	pageCtx, cancel := context.WithTimeout(ctx, s.PageTimeout)
	defer cancel()

	var html string
	err := chromedp.Run(pageCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body"),
		// Give client-side rendering time to populate results.
		chromedp.Sleep(3*time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			// Dismiss cookie banners and security interstitials when present.
			_ = chromedp.Click(`button[id*="accept"], button[class*="accept"]`, chromedp.NodeVisible).Do(ctx)
			_ = chromedp.Click(`[role="dialog"] button`, chromedp.NodeVisible).Do(ctx)
			return nil
		}),
		chromedp.Sleep(time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", err
	}

	return html, nil
}

func withPageParam(searchURL string, page int) (string, error) {
	u, err := url.Parse(searchURL)
	if err != nil {
		return "", err
	}
	if page > 1 {
		q := u.Query()
		q.Set("page", strconv.Itoa(page))
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}
