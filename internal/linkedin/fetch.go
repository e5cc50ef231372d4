package linkedin

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"li-sourcer/internal/rawstore"
	"li-sourcer/internal/utils"
)

// FetchProfile fetches one profile. Rate limits and transport errors are
// retried with capped exponential backoff; any terminal failure is returned
// as an unsuccessful capture, never as an error.
func (c *Client) FetchProfile(profileURL string) *rawstore.Capture {
	endpoint := fmt.Sprintf("%s%s", c.APIURL, enrichPath)
	q := enrichParams(profileURL)

	var lastErr error
	for attempt := 0; attempt < c.MaxRetries; attempt++ {
		if attempt > 0 {
			wait := c.backoff(attempt)
			c.logger.Warn("retrying profile fetch",
				zap.String("url", profileURL),
				zap.Int("attempt", attempt+1),
				zap.Duration("wait", wait),
			)
			if err := utils.WaitFor(c.ctx, wait); err != nil {
				return failedCapture(profileURL, err.Error())
			}
		}

		var payload any
		status, err := c.getJSON(endpoint, q, &payload)
		if err == nil {
			c.logger.Info("fetched profile", zap.String("url", profileURL))
			return &rawstore.Capture{URL: profileURL, RawData: payload, Success: true}
		}

		lastErr = err
		switch {
		case status == http.StatusTooManyRequests:
			lastErr = fmt.Errorf("rate limit exceeded")
		case status != 0:
			// A definitive HTTP answer; retrying will not change it.
			return failedCapture(profileURL, fmt.Sprintf("HTTP %d", status))
		}

		c.logger.Warn("profile fetch failed",
			zap.String("url", profileURL),
			zap.Int("attempt", attempt+1),
			zap.Error(lastErr),
		)
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no fetch attempts configured")
	}
	return failedCapture(profileURL, lastErr.Error())
}

// FetchBatch fetches profiles sequentially with a randomized delay between
// requests. onProgress, when set, receives every capture as it completes.
// Cancellation marks the remaining URLs as failed and returns what was
// collected so far.
func (c *Client) FetchBatch(urls []string, onProgress func(current, total int, capture *rawstore.Capture)) []*rawstore.Capture {
	captures := make([]*rawstore.Capture, 0, len(urls))
	total := len(urls)

	for i, profileURL := range urls {
		if i > 0 {
			if err := utils.WaitFor(c.ctx, utils.Jitter(c.MinDelay, c.MaxDelay)); err != nil {
				for _, remaining := range urls[i:] {
					captures = append(captures, failedCapture(remaining, err.Error()))
				}
				return captures
			}
		}

		capture := c.FetchProfile(profileURL)
		captures = append(captures, capture)

		if onProgress != nil {
			onProgress(i+1, total, capture)
		}
	}

	return captures
}

func (c *Client) backoff(attempt int) time.Duration {
	wait := c.BackoffBase << (attempt - 1)
	if wait > c.BackoffCap {
		wait = c.BackoffCap
	}
	return wait
}

func failedCapture(profileURL, reason string) *rawstore.Capture {
	return &rawstore.Capture{URL: profileURL, Success: false, Error: reason}
}
