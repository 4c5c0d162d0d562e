package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CycleState is the only state carried across consecutive polling cycles.
// The monitor loop is its sole writer.
type CycleState struct {
	// PrevOpenInterest is the open interest observed on the last successful
	// cycle. nil means unknown, so open-interest comparisons can never
	// trigger on the first cycle.
	PrevOpenInterest *decimal.Decimal
	// LastOutputAt is when the last signal or heartbeat was emitted. The
	// zero value makes the first idle cycle emit a heartbeat immediately.
	LastOutputAt time.Time
}
