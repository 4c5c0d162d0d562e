package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `platform: bybit
pair: ETH_USDT
poll_interval: 10m
web_addr: ":8080"
journal_dir: /tmp/wal
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := FromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "bybit", cfg.Platform)
	assert.Equal(t, "ETH", cfg.Pair.From)
	assert.Equal(t, "USDT", cfg.Pair.To)
	assert.Equal(t, 10*time.Minute, cfg.PollInterval)
	assert.Equal(t, ":8080", cfg.WebAddr)
	assert.Equal(t, "/tmp/wal", cfg.JournalDir)

	// omitted fields fall back to defaults
	assert.Equal(t, DefaultAssetID, cfg.AssetID)
	assert.Equal(t, DefaultRefAssetID, cfg.RefAssetID)
	assert.Equal(t, DefaultIdleInterval, cfg.IdleInterval)
}

func TestFromFileBadPair(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pair: ETHUSDT\n"), 0o644))

	_, err := FromFile(path)
	require.Error(t, err)
}

func TestWriteFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	original, err := FromFile(writeMinimal(t))
	require.NoError(t, err)
	original.WebAddr = ":9090"

	require.NoError(t, WriteFile(path, original))

	loaded, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func writeMinimal(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "minimal.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pair: ETH_USDT\n"), 0o644))
	return path
}
