package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bar-oss/ethsentry/internal/domain"
)

func TestSentimentIndex(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"value":"73","value_classification":"Greed"}]}`))
	}))
	defer server.Close()

	client := NewSentimentClientWithBaseURL(server.URL)
	value, err := client.SentimentIndex(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 73, value)
}

func TestSentimentIndexMalformed(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "empty data", payload: `{"data":[]}`},
		{name: "non-numeric value", payload: `{"data":[{"value":"greedy"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.payload))
			}))
			defer server.Close()

			client := NewSentimentClientWithBaseURL(server.URL)
			_, err := client.SentimentIndex(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrMalformedResponse)
		})
	}
}

func TestMacroEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"title":"CPI y/y","country":"USD","date":"2026-09-02T12:30:00-04:00","impact":"High","forecast":"2.8%","previous":"2.9%"}]`))
	}))
	defer server.Close()

	client := NewCalendarClientWithBaseURL(server.URL)
	events, err := client.MacroEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "CPI y/y", events[0].Title)
	assert.Equal(t, "USD", events[0].Country)
	assert.Equal(t, "High", events[0].Impact)
}

func TestMacroEventsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewCalendarClientWithBaseURL(server.URL)
	_, err := client.MacroEvents(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}
