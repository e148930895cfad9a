package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	"signal-relay/internal/domain"
)

// SentimentClient calls the news AI service for a market-sentiment writeup.
type SentimentClient struct {
	baseURL string
	client  *http.Client
	tracer  trace.Tracer
}

func NewSentimentClient(baseURL string, timeout time.Duration, tracer trace.Tracer) *SentimentClient {
	return &SentimentClient{
		baseURL: baseURL,
		client:  newHTTPClient(timeout),
		tracer:  tracer,
	}
}

type analyzeNewsRequest struct {
	Instrument string   `json:"instrument"`
	Articles   []string `json:"articles"`
}

// analyzeNewsResponse mirrors only the fields we consume. The service has
// shipped both "analysis" and "sentiment" over time, so both are accepted.
type analyzeNewsResponse struct {
	Analysis  string `json:"analysis"`
	Sentiment string `json:"sentiment"`
}

func (c *SentimentClient) FetchSentiment(ctx context.Context, instrument string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "news-provider.fetch-sentiment")
	defer span.End()

	payload, err := json.Marshal(analyzeNewsRequest{Instrument: instrument, Articles: []string{}})
	if err != nil {
		return "", fmt.Errorf("%w: encode news request: %v", domain.ErrContentProvider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze-news", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: build news request: %v", domain.ErrContentProvider, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: news service: %v", domain.ErrContentProvider, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, "news service"); err != nil {
		return "", err
	}
	body, err := readBody(resp, "news service")
	if err != nil {
		return "", err
	}

	var decoded analyzeNewsResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("%w: decode news response: %v", domain.ErrContentProvider, err)
	}

	analysis := strings.TrimSpace(decoded.Analysis)
	if analysis == "" {
		analysis = strings.TrimSpace(decoded.Sentiment)
	}
	if analysis == "" {
		return "", fmt.Errorf("%w: news response carried no analysis", domain.ErrContentProvider)
	}
	return analysis, nil
}
