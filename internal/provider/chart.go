package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel/trace"

	"signal-relay/internal/domain"
)

// ChartClient fetches rendered chart images for the technical view.
type ChartClient struct {
	baseURL string
	client  *http.Client
	tracer  trace.Tracer
}

func NewChartClient(baseURL string, timeout time.Duration, tracer trace.Tracer) *ChartClient {
	return &ChartClient{
		baseURL: baseURL,
		client:  newHTTPClient(timeout),
		tracer:  tracer,
	}
}

func (c *ChartClient) FetchChart(ctx context.Context, instrument, timeframe string) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, "chart-provider.fetch-chart")
	defer span.End()

	q := url.Values{}
	q.Set("instrument", instrument)
	q.Set("timeframe", timeframe)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/chart?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build chart request: %v", domain.ErrContentProvider, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: chart service: %v", domain.ErrContentProvider, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, "chart service"); err != nil {
		return nil, err
	}
	body, err := readBody(resp, "chart service")
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: chart service returned empty image", domain.ErrContentProvider)
	}
	return body, nil
}
