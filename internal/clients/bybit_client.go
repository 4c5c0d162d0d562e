package clients

import (
	"github.com/hirokisan/bybit/v2"
)

// NewBybitClient creates a client for the public Bybit V5 market endpoints.
func NewBybitClient() *bybit.Client {
	return bybit.NewClient()
}
