package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Signal represents a directional trading signal.
type Signal int

const (
	SignalLong Signal = iota
	SignalShort
)

// signal string constants to avoid magic strings
const (
	signalStringLong  = "GO LONG"
	signalStringShort = "SELL"
)

// String returns the line emitted for the signal.
func (s Signal) String() string {
	switch s {
	case SignalLong:
		return signalStringLong
	case SignalShort:
		return signalStringShort
	default:
		return "unknown"
	}
}

// SignalEvent is a journaled record of an emitted signal.
type SignalEvent struct {
	ID        string          `json:"id"`
	Pair      string          `json:"pair"`
	Signal    string          `json:"signal"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewSignalEvent builds a journal record for an emitted signal.
func NewSignalEvent(pair Pair, signal Signal, price decimal.Decimal, at time.Time) SignalEvent {
	return SignalEvent{
		ID:        uuid.NewString(),
		Pair:      pair.String(),
		Signal:    signal.String(),
		Price:     price,
		CreatedAt: at,
	}
}

// SignalEventRecord bundles a journaled signal event with its journal index.
type SignalEventRecord struct {
	Index uint64
	Event SignalEvent
}
