// Package indicators computes the technical indicators the agent derives
// from closing price series: RSI with Wilder's smoothing and the
// MACD(12,26,9) histogram. It uses the cinar/indicator library and performs
// no I/O; outputs are exactly reproducible for a fixed input.
package indicators

import (
	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/momentum"
	"github.com/cinar/indicator/v2/trend"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// MinClosingPrices is the minimum series length accepted by the calculators.
const MinClosingPrices = 26

// ErrInsufficientData is returned when a closing price series is too short
// to derive the requested indicator.
var ErrInsufficientData = errors.New("insufficient closing price data")

// CalculateRSI calculates the Relative Strength Index for the given period
// using Wilder's smoothing. Values are returned oldest first; the last entry
// is the RSI at the most recent closed candle.
func CalculateRSI(closes []decimal.Decimal, period int) ([]decimal.Decimal, error) {
	if len(closes) < MinClosingPrices {
		return nil, errors.Wrapf(ErrInsufficientData, "need at least %d closes for RSI, got %d", MinClosingPrices, len(closes))
	}

	closesFloat := decimalsToFloat64(closes)

	rsi := momentum.NewRsiWithPeriod[float64](period)
	outputChan := rsi.Compute(helper.SliceToChan(closesFloat))
	rsiFloat := helper.ChanToSlice(outputChan)

	return float64ToDecimals(rsiFloat), nil
}

// CalculateMACDHistogram calculates the MACD(12,26,9) histogram: the MACD
// line minus its own signal line, aligned so the last entry corresponds to
// the most recent closed candle.
func CalculateMACDHistogram(closes []decimal.Decimal) ([]decimal.Decimal, error) {
	if len(closes) < MinClosingPrices {
		return nil, errors.Wrapf(ErrInsufficientData, "need at least %d closes for MACD, got %d", MinClosingPrices, len(closes))
	}

	closesFloat := decimalsToFloat64(closes)

	macd := trend.NewMacd[float64]()
	macdChan, signalChan := macd.Compute(helper.SliceToChan(closesFloat))

	// both channels produce in lockstep, so the signal has to be collected
	// concurrently or the pipeline blocks
	signalReady := make(chan []float64, 1)
	go func() {
		signalReady <- helper.ChanToSlice(signalChan)
	}()
	macdVals := helper.ChanToSlice(macdChan)
	signalVals := <-signalReady

	n := len(macdVals)
	if len(signalVals) < n {
		n = len(signalVals)
	}
	if n == 0 {
		return nil, errors.Wrapf(ErrInsufficientData, "%d closes leave no MACD values after warmup", len(closes))
	}

	// align tails, warmup periods differ between the two lines
	offsetMacd := len(macdVals) - n
	offsetSignal := len(signalVals) - n

	histogram := make([]decimal.Decimal, n)
	for i := 0; i < n; i++ {
		histogram[i] = decimal.NewFromFloat(macdVals[offsetMacd+i] - signalVals[offsetSignal+i])
	}

	return histogram, nil
}

// Latest returns the value at the most recent position of an indicator series.
func Latest(values []decimal.Decimal) (decimal.Decimal, error) {
	if len(values) == 0 {
		return decimal.Decimal{}, errors.Wrap(ErrInsufficientData, "empty indicator series")
	}
	return values[len(values)-1], nil
}

// decimalsToFloat64 converts a slice of decimal.Decimal to []float64.
func decimalsToFloat64(decimals []decimal.Decimal) []float64 {
	result := make([]float64, len(decimals))
	for i, d := range decimals {
		result[i], _ = d.Float64()
	}
	return result
}

// float64ToDecimals converts a slice of float64 to []decimal.Decimal.
func float64ToDecimals(floats []float64) []decimal.Decimal {
	result := make([]decimal.Decimal, len(floats))
	for i, f := range floats {
		result[i] = decimal.NewFromFloat(f)
	}
	return result
}
