// Package linkedin fetches raw profile payloads from the RapidAPI
// fresh-linkedin-profile-data endpoint. Per-profile failures are recorded
// as failed captures so one bad URL never aborts a batch.
package linkedin

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

const (
	apiURL = "https://fresh-linkedin-profile-data.p.rapidapi.com"
	host   = "fresh-linkedin-profile-data.p.rapidapi.com"

	enrichPath = "/enrich-lead"

	contentType     = "application/json"
	contentEncoding = "gzip, deflate, br"
)

type Client struct {
	// ctx used only for http requests right now
	ctx        context.Context
	apiKey     string
	logger     *zap.Logger
	HTTPClient *http.Client
	APIURL     string
	Host       string

	// Delay bounds between consecutive fetches in a batch.
	MinDelay time.Duration
	MaxDelay time.Duration

	// Retry policy for rate limits and transport errors.
	MaxRetries  int
	BackoffBase time.Duration
	BackoffCap  time.Duration
}

func New(ctx context.Context, logger *zap.Logger, apiKey string) *Client {
	return &Client{
		ctx:    ctx,
		apiKey: apiKey,
		APIURL: apiURL,
		Host:   host,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:      logger,
		MinDelay:    3 * time.Second,
		MaxDelay:    5 * time.Second,
		MaxRetries:  3,
		BackoffBase: 30 * time.Second,
		BackoffCap:  120 * time.Second,
	}
}

func enrichParams(profileURL string) url.Values {
	q := url.Values{}
	q.Set("linkedin_url", profileURL)
	q.Set("include_skills", "true")
	for _, extra := range []string{
		"include_certifications", "include_publications", "include_honors",
		"include_volunteers", "include_projects", "include_patents",
		"include_courses", "include_organizations", "include_profile_status",
		"include_company_public_url",
	} {
		q.Set(extra, "false")
	}
	return q
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", c.Host)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept-Encoding", contentEncoding)

	return req
}

// getJSON makes a GET request and decodes the (possibly gzipped) JSON body
// into target.
func (c *Client) getJSON(endpoint string, q url.Values, target any) (int, error) {
	req, err := http.NewRequestWithContext(c.ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}

	req = c.setHeaders(req)
	if q != nil {
		req.URL.RawQuery = q.Encode()
	}

	c.logger.Debug("make request", zap.String("url", req.URL.String()))
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return resp.StatusCode, err
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return resp.StatusCode, err
	}

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, fmt.Errorf("bad status: %s", resp.Status)
	}

	if target == nil {
		return resp.StatusCode, nil
	}

	if err := json.Unmarshal(data, target); err != nil {
		return resp.StatusCode, err
	}

	return resp.StatusCode, nil
}
