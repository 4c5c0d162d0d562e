// Package collector provides kline (candlestick) providers for the
// supported exchanges and helpers for turning candles into closing price
// series.
package collector

import (
	"context"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/bar-oss/ethsentry/internal/domain"
)

// KlineProvider defines the interface for fetching kline data.
type KlineProvider interface {
	// GetKlines fetches historical kline data for a trading pair, oldest
	// first. interval is an exchange-agnostic string such as "1m" or "1h".
	GetKlines(ctx context.Context, pair domain.Pair, interval string, limit int) ([]domain.MarketCandle, error)
}

// BinanceKlineProvider implements KlineProvider for Binance spot markets.
type BinanceKlineProvider struct {
	client *binance.Client
}

// NewBinanceKlineProvider creates a new Binance kline provider.
func NewBinanceKlineProvider(client *binance.Client) *BinanceKlineProvider {
	return &BinanceKlineProvider{client: client}
}

// GetKlines fetches kline data from Binance.
func (p *BinanceKlineProvider) GetKlines(ctx context.Context, pair domain.Pair, interval string, limit int) ([]domain.MarketCandle, error) {
	klines, err := p.client.NewKlinesService().
		Symbol(pair.Symbol()).
		Interval(interval).
		Limit(limit).
		Do(ctx)
	if err != nil {
		return nil, errors.WithMessagef(domain.ErrSourceUnavailable, "fetch klines from Binance for %s: %v", pair.String(), err)
	}

	result := make([]domain.MarketCandle, len(klines))
	for i, k := range klines {
		candle, err := parseBinanceKline(k)
		if err != nil {
			return nil, errors.WithMessagef(domain.ErrMalformedResponse, "kline at index %d: %v", i, err)
		}
		candle.OpenTime = time.Unix(0, k.OpenTime*int64(time.Millisecond))
		candle.CloseTime = time.Unix(0, k.CloseTime*int64(time.Millisecond))
		result[i] = candle
	}

	return result, nil
}

func parseBinanceKline(k *binance.Kline) (domain.MarketCandle, error) {
	open, err := decimal.NewFromString(k.Open)
	if err != nil {
		return domain.MarketCandle{}, errors.Wrap(err, "parse open price")
	}
	high, err := decimal.NewFromString(k.High)
	if err != nil {
		return domain.MarketCandle{}, errors.Wrap(err, "parse high price")
	}
	low, err := decimal.NewFromString(k.Low)
	if err != nil {
		return domain.MarketCandle{}, errors.Wrap(err, "parse low price")
	}
	close, err := decimal.NewFromString(k.Close)
	if err != nil {
		return domain.MarketCandle{}, errors.Wrap(err, "parse close price")
	}
	volume, err := decimal.NewFromString(k.Volume)
	if err != nil {
		return domain.MarketCandle{}, errors.Wrap(err, "parse volume")
	}

	return domain.MarketCandle{
		Open:   open,
		High:   high,
		Low:    low,
		Close:  close,
		Volume: volume,
	}, nil
}

// ClosingPrices extracts the ordered closing price series, oldest first.
func ClosingPrices(candles []domain.MarketCandle) []decimal.Decimal {
	closes := make([]decimal.Decimal, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	return closes
}
