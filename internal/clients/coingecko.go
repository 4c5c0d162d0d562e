// Package clients contains thin constructors for the exchange SDKs and
// hand-rolled HTTP clients for the public data services the agent polls.
package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/bar-oss/ethsentry/internal/domain"
	"github.com/bar-oss/ethsentry/pkg/retrier"
)

const (
	coingeckoBaseURL   = "https://api.coingecko.com/api/v3"
	defaultHTTPTimeout = 10 * time.Second
)

// fetchRetrier repeats transient failures of the public endpoints. Malformed
// payloads are not retried, the same body would come back again.
var fetchRetrier = retrier.New(retrier.WithRetryIf(func(err error) bool {
	return errors.Is(err, domain.ErrSourceUnavailable)
}))

// CoinGeckoClient fetches spot market data from the CoinGecko public API.
type CoinGeckoClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewCoinGeckoClient creates a client against the production API.
func NewCoinGeckoClient() *CoinGeckoClient {
	return NewCoinGeckoClientWithBaseURL(coingeckoBaseURL)
}

// NewCoinGeckoClientWithBaseURL creates a client against a custom endpoint.
func NewCoinGeckoClientWithBaseURL(baseURL string) *CoinGeckoClient {
	return &CoinGeckoClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
	}
}

// coinResponse is the subset of /coins/{id} the agent consumes.
type coinResponse struct {
	MarketData struct {
		CurrentPrice map[string]float64 `json:"current_price"`
		MarketCap    map[string]float64 `json:"market_cap"`
		TotalVolume  map[string]float64 `json:"total_volume"`
	} `json:"market_data"`
}

// globalResponse is the subset of /global the agent consumes.
type globalResponse struct {
	Data struct {
		TotalMarketCap map[string]float64 `json:"total_market_cap"`
	} `json:"data"`
}

// AssetMarket returns price, market cap and trading volume in USD for the
// given CoinGecko asset id.
func (c *CoinGeckoClient) AssetMarket(ctx context.Context, assetID string) (domain.AssetMarket, error) {
	var resp coinResponse
	if err := getJSON(ctx, c.httpClient, c.baseURL+"/coins/"+assetID, &resp); err != nil {
		return domain.AssetMarket{}, err
	}

	price, ok := resp.MarketData.CurrentPrice["usd"]
	if !ok {
		return domain.AssetMarket{}, errors.WithMessagef(domain.ErrMalformedResponse, "no usd price for asset %s", assetID)
	}
	marketCap, ok := resp.MarketData.MarketCap["usd"]
	if !ok {
		return domain.AssetMarket{}, errors.WithMessagef(domain.ErrMalformedResponse, "no usd market cap for asset %s", assetID)
	}
	volume, ok := resp.MarketData.TotalVolume["usd"]
	if !ok {
		return domain.AssetMarket{}, errors.WithMessagef(domain.ErrMalformedResponse, "no usd volume for asset %s", assetID)
	}

	return domain.AssetMarket{
		Price:     decimal.NewFromFloat(price),
		MarketCap: decimal.NewFromFloat(marketCap),
		Volume:    decimal.NewFromFloat(volume),
	}, nil
}

// Dominance returns the reference asset's share of total crypto market
// capitalization as a percentage, derived from two sub-fetches.
func (c *CoinGeckoClient) Dominance(ctx context.Context, refAssetID string) (decimal.Decimal, error) {
	refMarket, err := c.AssetMarket(ctx, refAssetID)
	if err != nil {
		return decimal.Decimal{}, errors.WithMessagef(err, "fetch %s market cap", refAssetID)
	}

	var resp globalResponse
	if err := getJSON(ctx, c.httpClient, c.baseURL+"/global", &resp); err != nil {
		return decimal.Decimal{}, errors.WithMessage(err, "fetch global market cap")
	}

	total, ok := resp.Data.TotalMarketCap["usd"]
	if !ok || total <= 0 {
		return decimal.Decimal{}, errors.WithMessage(domain.ErrMalformedResponse, "no usable usd total market cap")
	}

	hundred := decimal.NewFromInt(100)
	return refMarket.MarketCap.Div(decimal.NewFromFloat(total)).Mul(hundred), nil
}

// getJSON performs a GET request and decodes the JSON body into out,
// retrying transient failures. Transport and status failures map to
// ErrSourceUnavailable, decode failures to ErrMalformedResponse.
func getJSON(ctx context.Context, client *http.Client, url string, out any) error {
	return fetchRetrier.Do(ctx, func(ctx context.Context) error {
		return getJSONOnce(ctx, client, url, out)
	})
}

func getJSONOnce(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrapf(err, "build request for %s", url)
	}

	resp, err := client.Do(req)
	if err != nil {
		return errors.WithMessagef(domain.ErrSourceUnavailable, "GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.WithMessagef(domain.ErrSourceUnavailable, "GET %s: unexpected status %d", url, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.WithMessagef(domain.ErrMalformedResponse, "decode response from %s: %v", url, err)
	}

	return nil
}
