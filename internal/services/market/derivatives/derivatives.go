// Package derivatives fetches perpetual-futures positioning data (funding
// rate and open interest) from the Binance futures API.
package derivatives

import (
	"context"

	"github.com/adshao/go-binance/v2/futures"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/bar-oss/ethsentry/internal/domain"
)

// BinanceProvider serves funding rate and open interest from Binance
// perpetual futures. The endpoints are public.
type BinanceProvider struct {
	client *futures.Client
}

// NewBinanceProvider creates a new Binance derivatives provider.
func NewBinanceProvider(client *futures.Client) *BinanceProvider {
	return &BinanceProvider{client: client}
}

// FundingRate returns the most recent funding rate for the pair's perpetual
// contract.
func (p *BinanceProvider) FundingRate(ctx context.Context, pair domain.Pair) (decimal.Decimal, error) {
	rates, err := p.client.NewFundingRateService().
		Symbol(pair.Symbol()).
		Limit(1).
		Do(ctx)
	if err != nil {
		return decimal.Decimal{}, errors.WithMessagef(domain.ErrSourceUnavailable, "fetch funding rate for %s: %v", pair.String(), err)
	}
	if len(rates) == 0 {
		return decimal.Decimal{}, errors.WithMessagef(domain.ErrMalformedResponse, "no funding rate entries for %s", pair.String())
	}

	rate, err := decimal.NewFromString(rates[len(rates)-1].FundingRate)
	if err != nil {
		return decimal.Decimal{}, errors.WithMessagef(domain.ErrMalformedResponse, "funding rate for %s: %v", pair.String(), err)
	}

	return rate, nil
}

// OpenInterest returns the current total open interest for the pair's
// perpetual contract.
func (p *BinanceProvider) OpenInterest(ctx context.Context, pair domain.Pair) (decimal.Decimal, error) {
	result, err := p.client.NewGetOpenInterestService().
		Symbol(pair.Symbol()).
		Do(ctx)
	if err != nil {
		return decimal.Decimal{}, errors.WithMessagef(domain.ErrSourceUnavailable, "fetch open interest for %s: %v", pair.String(), err)
	}

	oi, err := decimal.NewFromString(result.OpenInterest)
	if err != nil {
		return decimal.Decimal{}, errors.WithMessagef(domain.ErrMalformedResponse, "open interest for %s: %v", pair.String(), err)
	}

	return oi, nil
}
