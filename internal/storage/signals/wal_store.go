// Package signals persists emitted signal events in an append-only WAL so
// the web status page can replay them.
package signals

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/gowal"

	"github.com/bar-oss/ethsentry/internal/domain"
)

const (
	// DefaultDir is the default journal location.
	DefaultDir   = "./wal/signals"
	segmentLimit = 1000
	maxSegments  = 10

	signalKeyPrefix = "signal_"
)

// WALStore persists signal events in a WAL.
type WALStore struct {
	wal *gowal.Wal
	mu  sync.RWMutex
}

// NewWALStore initializes a WAL-backed signal journal.
func NewWALStore(dir string) (*WALStore, error) {
	if dir == "" {
		dir = DefaultDir
	}

	cfg := gowal.Config{
		Dir:              dir,
		Prefix:           "signal_",
		SegmentThreshold: segmentLimit,
		MaxSegments:      maxSegments,
		IsInSyncDiskMode: true,
	}

	wal, err := gowal.NewWAL(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "init signal WAL")
	}

	return &WALStore{wal: wal}, nil
}

// Save appends the signal event to the journal.
func (s *WALStore) Save(event domain.SignalEvent) error {
	if s == nil || s.wal == nil {
		return errors.New("signal journal is not initialized")
	}
	if event.Pair == "" {
		return errors.New("signal event pair is required")
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal signal event")
	}

	key := signalKeyPrefix + event.Pair

	s.mu.Lock()
	defer s.mu.Unlock()

	nextIndex := s.wal.CurrentIndex() + 1
	return s.wal.Write(nextIndex, key, payload)
}

// EventsAfter returns all signal events written after the provided index.
func (s *WALStore) EventsAfter(index uint64) ([]domain.SignalEventRecord, error) {
	if s == nil || s.wal == nil {
		return nil, errors.New("signal journal is not initialized")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	current := s.wal.CurrentIndex()
	if current <= index {
		return nil, nil
	}

	records := make([]domain.SignalEventRecord, 0, current-index)
	for idx := index + 1; idx <= current; idx++ {
		key, payload, err := s.wal.Get(idx)
		if err != nil {
			continue
		}
		if !strings.HasPrefix(key, signalKeyPrefix) {
			continue
		}

		var event domain.SignalEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, errors.Wrap(err, "decode signal event")
		}
		records = append(records, domain.SignalEventRecord{
			Index: idx,
			Event: event,
		})
	}

	return records, nil
}

// CurrentIndex returns the latest journal index stored.
func (s *WALStore) CurrentIndex() uint64 {
	if s == nil || s.wal == nil {
		return 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.wal.CurrentIndex()
}

// Close closes the underlying WAL.
func (s *WALStore) Close() error {
	if s == nil || s.wal == nil {
		return errors.New("signal journal is not initialized")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.wal.Close()
}
