package domain

import "github.com/shopspring/decimal"

// MarketSnapshot aggregates every fetched and derived market field for one
// polling cycle. The aggregator always constructs it fully: a source that has
// not run yet leaves its field at the zero value, absence is never modelled
// by omission. A snapshot is consumed once and discarded; only its
// OpenInterest value survives into the next cycle's comparison baseline.
type MarketSnapshot struct {
	// Price current spot price in quote currency.
	Price decimal.Decimal
	// MarketCap total market capitalization in quote currency.
	MarketCap decimal.Decimal
	// Volume recent trading volume in quote currency.
	Volume decimal.Decimal
	// RSI momentum oscillator over the most recent closed candle, in [0,100].
	RSI decimal.Decimal
	// MACDDiff MACD line minus signal line at the most recent closed candle.
	MACDDiff decimal.Decimal
	// FundingRate perpetual-futures funding rate, may be negative.
	FundingRate decimal.Decimal
	// OpenInterest total open interest in the perpetual-futures market.
	OpenInterest decimal.Decimal
	// Dominance reference-asset share of total market capitalization, in [0,100].
	Dominance decimal.Decimal
	// SentimentIndex composite fear/greed score, in [0,100].
	SentimentIndex int
	// MacroEvents upcoming macro calendar entries, empty on fetch failure.
	MacroEvents []MacroEvent
}

// AssetMarket spot market fields for a single asset.
type AssetMarket struct {
	Price     decimal.Decimal
	MarketCap decimal.Decimal
	Volume    decimal.Decimal
}

// MacroEvent one upcoming macro calendar entry as published by the feed.
type MacroEvent struct {
	Title    string `json:"title"`
	Country  string `json:"country"`
	Date     string `json:"date"`
	Impact   string `json:"impact"`
	Forecast string `json:"forecast"`
	Previous string `json:"previous"`
}
