package signals

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bar-oss/ethsentry/internal/domain"
)

func TestWALStoreRoundTrip(t *testing.T) {
	store, err := NewWALStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	pair := domain.Pair{From: "ETH", To: "USDT"}
	at := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	first := domain.NewSignalEvent(pair, domain.SignalLong, decimal.NewFromInt(3600), at)
	second := domain.NewSignalEvent(pair, domain.SignalShort, decimal.NewFromInt(3400), at.Add(time.Hour))

	require.NoError(t, store.Save(first))
	require.NoError(t, store.Save(second))

	records, err := store.EventsAfter(0)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "GO LONG", records[0].Event.Signal)
	assert.Equal(t, "SELL", records[1].Event.Signal)
	assert.Equal(t, "ETH_USDT", records[0].Event.Pair)
	assert.True(t, records[0].Event.Price.Equal(decimal.NewFromInt(3600)))
	assert.True(t, records[1].Index > records[0].Index)

	// reading past the newest index yields nothing
	tail, err := store.EventsAfter(store.CurrentIndex())
	require.NoError(t, err)
	assert.Empty(t, tail)
}

func TestWALStoreRejectsEmptyPair(t *testing.T) {
	store, err := NewWALStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	err = store.Save(domain.SignalEvent{Signal: "GO LONG"})
	require.Error(t, err)
}
