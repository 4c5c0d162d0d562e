package indicators

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimalsFromInts(values ...int64) []decimal.Decimal {
	result := make([]decimal.Decimal, len(values))
	for i, v := range values {
		result[i] = decimal.NewFromInt(v)
	}
	return result
}

func TestCalculateRSIStaysWithinBounds(t *testing.T) {
	closes := make([]decimal.Decimal, 60)
	for i := range closes {
		// zig-zag around 3500 so gains and losses alternate
		closes[i] = decimal.NewFromInt(3500 + int64(i*i%17) - 8)
	}

	rsi, err := CalculateRSI(closes, 14)
	require.NoError(t, err)
	require.NotEmpty(t, rsi)

	last, err := Latest(rsi)
	require.NoError(t, err)
	assert.True(t, last.GreaterThanOrEqual(decimal.Zero), "RSI below 0: %s", last)
	assert.True(t, last.LessThanOrEqual(decimal.NewFromInt(100)), "RSI above 100: %s", last)
}

func TestCalculateRSIMonotonicSeries(t *testing.T) {
	rising := make([]decimal.Decimal, 40)
	falling := make([]decimal.Decimal, 40)
	for i := range rising {
		rising[i] = decimal.NewFromInt(1000 + int64(i))
		falling[i] = decimal.NewFromInt(1000 - int64(i))
	}

	rsi, err := CalculateRSI(rising, 14)
	require.NoError(t, err)
	last, err := Latest(rsi)
	require.NoError(t, err)
	assert.True(t, last.Equal(decimal.NewFromInt(100)), "strictly rising series should yield RSI 100, got %s", last)

	rsi, err = CalculateRSI(falling, 14)
	require.NoError(t, err)
	last, err = Latest(rsi)
	require.NoError(t, err)
	assert.True(t, last.IsZero(), "strictly falling series should yield RSI 0, got %s", last)
}

func TestCalculateMACDHistogramFlatSeries(t *testing.T) {
	closes := make([]decimal.Decimal, 60)
	for i := range closes {
		closes[i] = decimal.NewFromInt(3550)
	}

	histogram, err := CalculateMACDHistogram(closes)
	require.NoError(t, err)
	require.NotEmpty(t, histogram)

	last, err := Latest(histogram)
	require.NoError(t, err)
	assert.True(t, last.IsZero(), "flat series should yield a zero MACD histogram, got %s", last)
}

func TestInsufficientData(t *testing.T) {
	short := decimalsFromInts(1, 2, 3, 4, 5)

	_, err := CalculateRSI(short, 14)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = CalculateMACDHistogram(short)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = Latest(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestCalculateRSIDeterministic(t *testing.T) {
	closes := make([]decimal.Decimal, 50)
	for i := range closes {
		closes[i] = decimal.NewFromInt(2000 + int64((i*7)%13))
	}

	first, err := CalculateRSI(closes, 14)
	require.NoError(t, err)
	second, err := CalculateRSI(closes, 14)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.True(t, first[i].Equal(second[i]), "index %d differs: %s vs %s", i, first[i], second[i])
	}
}
