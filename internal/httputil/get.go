// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP helper shared by the E-utilities calls.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// StatusError reports a response whose status code is outside 2xx.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s returned HTTP %d", e.URL, e.StatusCode)
}

// Get issues a single GET request for base with params encoded as the query
// string and returns the response body. A non-2xx status yields a
// *StatusError. There is no retry: a failed request is returned to the
// caller as-is.
func Get(ctx context.Context, client *http.Client, base string, params url.Values, userAgent string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}

	reqURL := base
	if len(params) > 0 {
		reqURL = base + "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{URL: base, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}
