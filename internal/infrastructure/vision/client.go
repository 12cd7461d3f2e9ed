// Package vision implements the text-extraction collaborator on top of the
// Azure Vision Read API, which processes images asynchronously.
package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const (
	analyzePath = "/vision/v3.2/read/analyze"

	// The Read API is asynchronous: poll the operation until it succeeds
	// or the retry ceiling is exhausted, then return whatever is available.
	defaultMaxPolls     = 15
	defaultPollInterval = time.Second
)

// Client handles communication with the Azure Vision Read API
type Client struct {
	httpClient   *http.Client
	endpoint     string
	key          string
	maxPolls     int
	pollInterval time.Duration
	debug        bool
}

// NewClient creates a new OCR client
func NewClient(endpoint, key string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		endpoint:     endpoint,
		key:          key,
		maxPolls:     defaultMaxPolls,
		pollInterval: defaultPollInterval,
	}
}

// SetDebug enables verbose logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// readResult mirrors the Read API operation payload
type readResult struct {
	Status        string `json:"status"`
	AnalyzeResult struct {
		ReadResults []struct {
			Lines []struct {
				Text string `json:"text"`
			} `json:"lines"`
		} `json:"readResults"`
	} `json:"analyzeResult"`
}

// ExtractLines submits an image for analysis and polls the operation until
// it completes or the retry ceiling is reached, returning the text lines
// found (possibly none).
func (c *Client) ExtractLines(ctx context.Context, image []byte) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint+analyzePath, bytes.NewReader(image))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("OCR submission failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("OCR submission failed: status %d, body: %s", resp.StatusCode, string(body))
	}

	opURL := resp.Header.Get("Operation-Location")
	if opURL == "" {
		return nil, fmt.Errorf("OCR submission returned no operation location")
	}

	return c.pollOperation(ctx, opURL)
}

// pollOperation polls the Read operation, returning the lines available at
// the last observed state
func (c *Client) pollOperation(ctx context.Context, opURL string) ([]string, error) {
	var result readResult

	for attempt := 1; attempt <= c.maxPolls; attempt++ {
		req, err := http.NewRequestWithContext(ctx, "GET", opURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create poll request: %w", err)
		}
		req.Header.Set("Ocp-Apim-Subscription-Key", c.key)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("OCR poll failed: %w", err)
		}

		err = json.NewDecoder(resp.Body).Decode(&result)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to decode OCR poll response: %w", err)
		}

		if c.debug {
			log.Printf("[OCR] Poll %d/%d: status %q", attempt, c.maxPolls, result.Status)
		}

		if result.Status == "succeeded" {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}

	return collectLines(&result), nil
}

// collectLines flattens the text lines from every page of the read result
func collectLines(result *readResult) []string {
	var lines []string
	for _, page := range result.AnalyzeResult.ReadResults {
		for _, line := range page.Lines {
			lines = append(lines, line.Text)
		}
	}
	return lines
}
