package internal

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bar-oss/ethsentry/internal/domain"
	"github.com/bar-oss/ethsentry/internal/services/decider"
)

const heartbeatMessage = "I'm still checking"

// Snapshotter produces one fully populated market snapshot per call.
type Snapshotter interface {
	Snapshot(ctx context.Context) (domain.MarketSnapshot, error)
}

// SignalJournal persists emitted signal events.
type SignalJournal interface {
	Save(event domain.SignalEvent) error
}

// Monitor drives the polling cycles and owns the state carried between
// them. It is the sole writer of the cycle state; the aggregator and the
// decision rule only ever receive and return values.
type Monitor struct {
	aggregator   Snapshotter
	journal      SignalJournal // optional
	logger       *zap.Logger
	pair         domain.Pair
	pollInterval time.Duration
	idleInterval time.Duration

	state domain.CycleState

	// injectable for deterministic tests
	now  func() time.Time
	emit func(line string)
}

// NewMonitor creates a monitor. journal may be nil to disable journaling.
func NewMonitor(aggregator Snapshotter, journal SignalJournal, logger *zap.Logger, pair domain.Pair, pollInterval, idleInterval time.Duration) *Monitor {
	return &Monitor{
		aggregator:   aggregator,
		journal:      journal,
		logger:       logger,
		pair:         pair,
		pollInterval: pollInterval,
		idleInterval: idleInterval,
		now:          time.Now,
		emit: func(line string) {
			fmt.Println(line)
		},
	}
}

// Run executes polling cycles until the context is cancelled. The first
// cycle runs immediately, subsequent cycles on the poll interval. A failed
// cycle never terminates the loop.
func (m *Monitor) Run(ctx context.Context) error {
	m.logger.Info("starting monitor loop",
		zap.String("pair", m.pair.String()),
		zap.Duration("poll_interval", m.pollInterval),
		zap.Duration("idle_interval", m.idleInterval))

	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()

	m.RunCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("stopping monitor loop", zap.String("pair", m.pair.String()))
			return ctx.Err()
		case <-ticker.C:
			m.RunCycle(ctx)
		}
	}
}

// RunCycle executes exactly one aggregate/evaluate/report cycle. On
// aggregation failure it emits a diagnostic and leaves the cycle state
// untouched, so the next cycle's open-interest baseline stays valid.
func (m *Monitor) RunCycle(ctx context.Context) {
	snap, err := m.aggregator.Snapshot(ctx)
	if err != nil {
		m.logger.Error("cycle failed", zap.String("pair", m.pair.String()), zap.Error(err))
		return
	}

	now := m.now()

	if signal, ok := decider.Evaluate(snap, m.state.PrevOpenInterest); ok {
		m.emit(signal.String())
		m.state.LastOutputAt = now
		m.logger.Info("signal emitted",
			zap.String("signal", signal.String()),
			zap.String("price", snap.Price.String()),
			zap.String("rsi", snap.RSI.String()),
			zap.String("open_interest", snap.OpenInterest.String()))
		m.journalSignal(signal, snap, now)
	} else if now.Sub(m.state.LastOutputAt) >= m.idleInterval {
		m.emit(heartbeatMessage)
		m.state.LastOutputAt = now
	}

	openInterest := snap.OpenInterest
	m.state.PrevOpenInterest = &openInterest
}

func (m *Monitor) journalSignal(signal domain.Signal, snap domain.MarketSnapshot, at time.Time) {
	if m.journal == nil {
		return
	}
	event := domain.NewSignalEvent(m.pair, signal, snap.Price, at)
	if err := m.journal.Save(event); err != nil {
		m.logger.Warn("failed to journal signal", zap.Error(err))
	}
}
