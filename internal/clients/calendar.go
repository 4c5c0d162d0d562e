package clients

import (
	"context"
	"net/http"

	"github.com/bar-oss/ethsentry/internal/domain"
)

const (
	calendarBaseURL = "https://cdn-nfs.faireconomy.media"
	calendarPath    = "/ff_calendar_thisweek.json"
)

// CalendarClient fetches the weekly macro-economic calendar published by
// ForexFactory.
type CalendarClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewCalendarClient creates a client against the production feed.
func NewCalendarClient() *CalendarClient {
	return NewCalendarClientWithBaseURL(calendarBaseURL)
}

// NewCalendarClientWithBaseURL creates a client against a custom endpoint.
func NewCalendarClientWithBaseURL(baseURL string) *CalendarClient {
	return &CalendarClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
	}
}

// MacroEvents returns this week's calendar entries. Callers degrade to an
// empty list on error; this client itself reports failures normally.
func (c *CalendarClient) MacroEvents(ctx context.Context) ([]domain.MacroEvent, error) {
	var events []domain.MacroEvent
	if err := getJSON(ctx, c.httpClient, c.baseURL+calendarPath, &events); err != nil {
		return nil, err
	}
	return events, nil
}
