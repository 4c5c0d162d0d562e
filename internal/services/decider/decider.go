// Package decider implements the fixed multi-factor rule that maps a market
// snapshot to an optional directional signal.
package decider

import (
	"github.com/shopspring/decimal"

	"github.com/bar-oss/ethsentry/internal/domain"
)

// Rule thresholds. Fixed design constants, not configurable at runtime.
var (
	referencePrice = decimal.NewFromInt(3550)
	dominancePivot = decimal.RequireFromString("59.5")
	rsiUpper       = decimal.NewFromInt(60)
	rsiLower       = decimal.NewFromInt(40)
)

const (
	sentimentUpper = 60
	sentimentLower = 40
)

// Evaluate maps one snapshot and the previous cycle's open interest to an
// optional signal. It is pure and total: no I/O, no state, identical inputs
// yield identical results. A nil prevOpenInterest (first cycle, or no
// successful cycle yet) always yields no signal.
//
// The long rule is checked before the short rule. The thresholds make the
// two sets mutually exclusive, so the ordering is a documented safety net
// rather than a reachable tie-break.
func Evaluate(snap domain.MarketSnapshot, prevOpenInterest *decimal.Decimal) (domain.Signal, bool) {
	if prevOpenInterest == nil {
		return 0, false
	}

	if isLong(snap, *prevOpenInterest) {
		return domain.SignalLong, true
	}
	if isShort(snap, *prevOpenInterest) {
		return domain.SignalShort, true
	}

	return 0, false
}

func isLong(snap domain.MarketSnapshot, prevOpenInterest decimal.Decimal) bool {
	return snap.RSI.GreaterThan(rsiUpper) &&
		snap.MACDDiff.IsPositive() &&
		snap.Price.GreaterThan(referencePrice) &&
		snap.Dominance.LessThan(dominancePivot) &&
		!snap.FundingRate.IsPositive() &&
		snap.OpenInterest.GreaterThan(prevOpenInterest) &&
		snap.SentimentIndex > sentimentUpper
}

func isShort(snap domain.MarketSnapshot, prevOpenInterest decimal.Decimal) bool {
	return snap.RSI.LessThan(rsiLower) &&
		snap.MACDDiff.IsNegative() &&
		snap.Price.LessThan(referencePrice) &&
		snap.Dominance.GreaterThan(dominancePivot) &&
		snap.FundingRate.IsPositive() &&
		snap.OpenInterest.LessThan(prevOpenInterest) &&
		snap.SentimentIndex < sentimentLower
}
