// Package aggregator builds one fully populated market snapshot per polling
// cycle by invoking every source adapter exactly once.
package aggregator

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bar-oss/ethsentry/internal/domain"
	"github.com/bar-oss/ethsentry/internal/services/market/collector"
	"github.com/bar-oss/ethsentry/pkg/indicators"
)

const (
	klineInterval = "1h"
	klineLimit    = 100
	rsiPeriod     = 14
	fetchTimeout  = 10 * time.Second
)

// SpotProvider serves spot market data and dominance.
type SpotProvider interface {
	AssetMarket(ctx context.Context, assetID string) (domain.AssetMarket, error)
	Dominance(ctx context.Context, refAssetID string) (decimal.Decimal, error)
}

// DerivativesProvider serves perpetual-futures positioning data.
type DerivativesProvider interface {
	FundingRate(ctx context.Context, pair domain.Pair) (decimal.Decimal, error)
	OpenInterest(ctx context.Context, pair domain.Pair) (decimal.Decimal, error)
}

// SentimentProvider serves the composite fear & greed score.
type SentimentProvider interface {
	SentimentIndex(ctx context.Context) (int, error)
}

// CalendarProvider serves upcoming macro calendar entries.
type CalendarProvider interface {
	MacroEvents(ctx context.Context) ([]domain.MacroEvent, error)
}

// Sources bundles the adapters the aggregator polls each cycle.
type Sources struct {
	Spot        SpotProvider
	Klines      collector.KlineProvider
	Derivatives DerivativesProvider
	Sentiment   SentimentProvider
	Calendar    CalendarProvider
}

// Aggregator orchestrates the source adapters into one MarketSnapshot per
// invocation. Adapters are called sequentially; any failure except the macro
// calendar aborts the cycle.
type Aggregator struct {
	sources    Sources
	pair       domain.Pair
	assetID    string
	refAssetID string
	logger     *zap.Logger
}

// New creates an aggregator for one asset. assetID and refAssetID are
// CoinGecko asset ids (the reference asset drives the dominance ratio).
func New(sources Sources, pair domain.Pair, assetID, refAssetID string, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		sources:    sources,
		pair:       pair,
		assetID:    assetID,
		refAssetID: refAssetID,
		logger:     logger,
	}
}

// Snapshot builds a fully populated snapshot for the current cycle. On
// failure the partially built snapshot is discarded and the error carries
// the failing source.
func (a *Aggregator) Snapshot(ctx context.Context) (domain.MarketSnapshot, error) {
	var snap domain.MarketSnapshot

	market, err := a.fetchAssetMarket(ctx)
	if err != nil {
		return domain.MarketSnapshot{}, errors.WithMessage(err, "price source")
	}
	snap.Price = market.Price
	snap.MarketCap = market.MarketCap
	snap.Volume = market.Volume

	rsi, macdDiff, err := a.fetchIndicators(ctx)
	if err != nil {
		return domain.MarketSnapshot{}, errors.WithMessage(err, "candle source")
	}
	snap.RSI = rsi
	snap.MACDDiff = macdDiff

	snap.FundingRate, err = a.fetchFundingRate(ctx)
	if err != nil {
		return domain.MarketSnapshot{}, errors.WithMessage(err, "funding rate source")
	}

	snap.OpenInterest, err = a.fetchOpenInterest(ctx)
	if err != nil {
		return domain.MarketSnapshot{}, errors.WithMessage(err, "open interest source")
	}

	snap.Dominance, err = a.fetchDominance(ctx)
	if err != nil {
		return domain.MarketSnapshot{}, errors.WithMessage(err, "dominance source")
	}

	snap.SentimentIndex, err = a.fetchSentiment(ctx)
	if err != nil {
		return domain.MarketSnapshot{}, errors.WithMessage(err, "sentiment source")
	}

	// best effort: a broken calendar feed degrades to an empty event list
	snap.MacroEvents = a.fetchMacroEvents(ctx)

	return snap, nil
}

func (a *Aggregator) fetchAssetMarket(ctx context.Context) (domain.AssetMarket, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()
	return a.sources.Spot.AssetMarket(ctx, a.assetID)
}

// fetchIndicators threads the closing price series through the indicator
// calculator. An unusable series (too short for the indicator warmup) is a
// source failure like any other.
func (a *Aggregator) fetchIndicators(ctx context.Context) (rsi, macdDiff decimal.Decimal, err error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	candles, err := a.sources.Klines.GetKlines(ctx, a.pair, klineInterval, klineLimit)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}

	closes := collector.ClosingPrices(candles)

	rsiSeries, err := indicators.CalculateRSI(closes, rsiPeriod)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, errors.WithMessagef(domain.ErrSourceUnavailable, "candle data unusable: %v", err)
	}
	rsi, err = indicators.Latest(rsiSeries)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, errors.WithMessagef(domain.ErrSourceUnavailable, "candle data unusable: %v", err)
	}

	histogram, err := indicators.CalculateMACDHistogram(closes)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, errors.WithMessagef(domain.ErrSourceUnavailable, "candle data unusable: %v", err)
	}
	macdDiff, err = indicators.Latest(histogram)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, errors.WithMessagef(domain.ErrSourceUnavailable, "candle data unusable: %v", err)
	}

	return rsi, macdDiff, nil
}

func (a *Aggregator) fetchFundingRate(ctx context.Context) (decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()
	return a.sources.Derivatives.FundingRate(ctx, a.pair)
}

func (a *Aggregator) fetchOpenInterest(ctx context.Context) (decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()
	return a.sources.Derivatives.OpenInterest(ctx, a.pair)
}

func (a *Aggregator) fetchDominance(ctx context.Context) (decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()
	return a.sources.Spot.Dominance(ctx, a.refAssetID)
}

func (a *Aggregator) fetchSentiment(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()
	return a.sources.Sentiment.SentimentIndex(ctx)
}

func (a *Aggregator) fetchMacroEvents(ctx context.Context) []domain.MacroEvent {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	events, err := a.sources.Calendar.MacroEvents(ctx)
	if err != nil {
		a.logger.Warn("macro calendar fetch failed, continuing without events", zap.Error(err))
		return []domain.MacroEvent{}
	}
	if events == nil {
		events = []domain.MacroEvent{}
	}
	return events
}
