package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	"signal-relay/internal/domain"
)

// CalendarClient fetches upcoming economic-calendar events relevant to an
// instrument.
type CalendarClient struct {
	baseURL string
	client  *http.Client
	tracer  trace.Tracer
}

func NewCalendarClient(baseURL string, timeout time.Duration, tracer trace.Tracer) *CalendarClient {
	return &CalendarClient{
		baseURL: baseURL,
		client:  newHTTPClient(timeout),
		tracer:  tracer,
	}
}

type calendarEvent struct {
	Time     string `json:"time"`
	Currency string `json:"currency"`
	Title    string `json:"title"`
	Impact   string `json:"impact"`
}

type calendarResponse struct {
	Summary string          `json:"summary"`
	Events  []calendarEvent `json:"events"`
}

func (c *CalendarClient) FetchCalendar(ctx context.Context, instrument, timeframe string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "calendar-provider.fetch-calendar")
	defer span.End()

	q := url.Values{}
	if instrument != "" {
		q.Set("instrument", instrument)
	}
	if timeframe != "" {
		q.Set("timeframe", timeframe)
	}

	endpoint := c.baseURL + "/calendar"
	if encoded := q.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("%w: build calendar request: %v", domain.ErrContentProvider, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: calendar service: %v", domain.ErrContentProvider, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, "calendar service"); err != nil {
		return "", err
	}
	body, err := readBody(resp, "calendar service")
	if err != nil {
		return "", err
	}

	var decoded calendarResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("%w: decode calendar response: %v", domain.ErrContentProvider, err)
	}

	if summary := strings.TrimSpace(decoded.Summary); summary != "" {
		return summary, nil
	}
	if len(decoded.Events) == 0 {
		return "No high-impact events scheduled.", nil
	}

	lines := make([]string, 0, len(decoded.Events)+1)
	lines = append(lines, "\U0001F4C5 Upcoming economic events:")
	for _, ev := range decoded.Events {
		line := strings.TrimSpace(fmt.Sprintf("%s %s %s", ev.Time, ev.Currency, ev.Title))
		if line == "" {
			continue
		}
		if impact := strings.TrimSpace(ev.Impact); impact != "" {
			line += " (" + impact + ")"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}
