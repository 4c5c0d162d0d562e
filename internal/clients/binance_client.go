package clients

import (
	"github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/futures"
)

// NewBinanceSpotClient creates a spot client. The kline endpoints used by
// the agent are public, so no credentials are required.
func NewBinanceSpotClient() *binance.Client {
	return binance.NewClient("", "")
}

// NewBinanceFuturesClient creates a futures client for the public funding
// rate and open interest endpoints.
func NewBinanceFuturesClient() *futures.Client {
	return binance.NewFuturesClient("", "")
}
