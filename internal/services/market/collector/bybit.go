package collector

import (
	"context"
	"strconv"
	"time"

	bybit "github.com/hirokisan/bybit/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/bar-oss/ethsentry/internal/domain"
)

// BybitKlineProvider implements KlineProvider for Bybit spot markets.
type BybitKlineProvider struct {
	client *bybit.Client
}

// NewBybitKlineProvider creates a new Bybit kline provider.
func NewBybitKlineProvider(client *bybit.Client) *BybitKlineProvider {
	return &BybitKlineProvider{client: client}
}

// GetKlines fetches kline data from Bybit.
func (p *BybitKlineProvider) GetKlines(ctx context.Context, pair domain.Pair, interval string, limit int) ([]domain.MarketCandle, error) {
	if limit <= 0 {
		return nil, errors.New("limit must be > 0")
	}

	bybitInterval, err := convertIntervalToBybit(interval)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid interval: %s", interval)
	}

	param := bybit.V5GetKlineParam{
		Category: bybit.CategoryV5Spot,
		Symbol:   bybit.SymbolV5(pair.Symbol()),
		Interval: bybit.Interval(bybitInterval),
		Limit:    &limit,
	}

	result, err := p.client.V5().Market().GetKline(param)
	if err != nil {
		return nil, errors.WithMessagef(domain.ErrSourceUnavailable, "fetch klines from Bybit for %s: %v", pair.String(), err)
	}
	if result == nil || len(result.Result.List) == 0 {
		return nil, errors.WithMessagef(domain.ErrSourceUnavailable, "no kline data returned from Bybit for %s", pair.String())
	}

	klines := result.Result.List

	// Bybit returns newest first, callers expect oldest first
	candles := make([]domain.MarketCandle, len(klines))
	for i, k := range klines {
		openTime, err := parseBybitTimestamp(k.StartTime)
		if err != nil {
			return nil, errors.WithMessagef(domain.ErrMalformedResponse, "start time at index %d: %v", i, err)
		}

		open, err := decimal.NewFromString(k.Open)
		if err != nil {
			return nil, errors.WithMessagef(domain.ErrMalformedResponse, "open price at index %d: %v", i, err)
		}
		high, err := decimal.NewFromString(k.High)
		if err != nil {
			return nil, errors.WithMessagef(domain.ErrMalformedResponse, "high price at index %d: %v", i, err)
		}
		low, err := decimal.NewFromString(k.Low)
		if err != nil {
			return nil, errors.WithMessagef(domain.ErrMalformedResponse, "low price at index %d: %v", i, err)
		}
		close, err := decimal.NewFromString(k.Close)
		if err != nil {
			return nil, errors.WithMessagef(domain.ErrMalformedResponse, "close price at index %d: %v", i, err)
		}
		volume, err := decimal.NewFromString(k.Volume)
		if err != nil {
			return nil, errors.WithMessagef(domain.ErrMalformedResponse, "volume at index %d: %v", i, err)
		}

		candles[len(klines)-1-i] = domain.MarketCandle{
			OpenTime: openTime,
			Open:     open,
			High:     high,
			Low:      low,
			Close:    close,
			Volume:   volume,
		}
	}

	return candles, nil
}

// convertIntervalToBybit maps the agent's interval notation to Bybit V5
// interval codes.
func convertIntervalToBybit(interval string) (string, error) {
	switch interval {
	case "1m":
		return "1", nil
	case "3m":
		return "3", nil
	case "5m":
		return "5", nil
	case "15m":
		return "15", nil
	case "30m":
		return "30", nil
	case "1h":
		return "60", nil
	case "2h":
		return "120", nil
	case "4h":
		return "240", nil
	case "1d":
		return "D", nil
	default:
		return "", errors.Errorf("unsupported interval %q", interval)
	}
}

func parseBybitTimestamp(value string) (time.Time, error) {
	ms, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parse timestamp %q", value)
	}
	return time.Unix(0, ms*int64(time.Millisecond)), nil
}
