// Package provider holds the HTTP clients for the external services that
// supply detail-view content: the chart renderer, the news/sentiment AI
// service and the economic calendar service. Response schemas are owned by
// those services and treated as unstable: parsing is defensive and every
// failure is normalized to domain.ErrContentProvider before it crosses back
// into the interaction flow.
package provider

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"signal-relay/internal/domain"
)

// DefaultTimeout bounds a single content fetch. A stalled provider shows
// the user a retryable error instead of a spinner that never resolves.
const DefaultTimeout = 15 * time.Second

const maxResponseBytes = 10 << 20

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

func checkStatus(resp *http.Response, service string) error {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s returned %d", domain.ErrContentProvider, service, resp.StatusCode)
	}
	return nil
}

func readBody(resp *http.Response, service string) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s response: %v", domain.ErrContentProvider, service, err)
	}
	return body, nil
}
