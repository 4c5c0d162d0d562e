package collector

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bar-oss/ethsentry/internal/domain"
)

func TestClosingPrices(t *testing.T) {
	candles := []domain.MarketCandle{
		{Close: decimal.NewFromInt(3500)},
		{Close: decimal.NewFromInt(3510)},
		{Close: decimal.NewFromInt(3490)},
	}

	closes := ClosingPrices(candles)
	require.Len(t, closes, 3)
	assert.True(t, closes[0].Equal(decimal.NewFromInt(3500)))
	assert.True(t, closes[1].Equal(decimal.NewFromInt(3510)))
	assert.True(t, closes[2].Equal(decimal.NewFromInt(3490)))
}

func TestConvertIntervalToBybit(t *testing.T) {
	tests := []struct {
		interval    string
		expected    string
		expectError bool
	}{
		{interval: "1m", expected: "1"},
		{interval: "15m", expected: "15"},
		{interval: "1h", expected: "60"},
		{interval: "4h", expected: "240"},
		{interval: "1d", expected: "D"},
		{interval: "7h", expectError: true},
		{interval: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.interval, func(t *testing.T) {
			got, err := convertIntervalToBybit(tt.interval)
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
