package clients

import (
	"context"
	"net/http"
	"strconv"

	"github.com/pkg/errors"

	"github.com/bar-oss/ethsentry/internal/domain"
)

const sentimentBaseURL = "https://api.alternative.me"

// SentimentClient fetches the composite fear & greed index from
// alternative.me.
type SentimentClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewSentimentClient creates a client against the production API.
func NewSentimentClient() *SentimentClient {
	return NewSentimentClientWithBaseURL(sentimentBaseURL)
}

// NewSentimentClientWithBaseURL creates a client against a custom endpoint.
func NewSentimentClientWithBaseURL(baseURL string) *SentimentClient {
	return &SentimentClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
	}
}

// fngResponse mirrors the /fng/ payload; the index value is published as a
// string.
type fngResponse struct {
	Data []struct {
		Value string `json:"value"`
	} `json:"data"`
}

// SentimentIndex returns the most recent fear & greed score in [0,100].
func (c *SentimentClient) SentimentIndex(ctx context.Context) (int, error) {
	var resp fngResponse
	if err := getJSON(ctx, c.httpClient, c.baseURL+"/fng/", &resp); err != nil {
		return 0, err
	}

	if len(resp.Data) == 0 {
		return 0, errors.WithMessage(domain.ErrMalformedResponse, "fear & greed feed returned no entries")
	}

	value, err := strconv.Atoi(resp.Data[0].Value)
	if err != nil {
		return 0, errors.WithMessagef(domain.ErrMalformedResponse, "fear & greed value %q is not an integer", resp.Data[0].Value)
	}

	return value, nil
}
