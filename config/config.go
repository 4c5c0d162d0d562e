// Package config loads the agent configuration from command-line flags or a
// YAML file.
package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bar-oss/ethsentry/internal/domain"
)

// Defaults applied when neither flags nor the config file override them.
const (
	DefaultPlatform     = "binance"
	DefaultAssetID      = "ethereum"
	DefaultRefAssetID   = "bitcoin"
	DefaultPollInterval = 5 * time.Minute
	DefaultIdleInterval = time.Hour
)

// Config holds the resolved agent configuration.
type Config struct {
	// Platform selects the kline source, "binance" or "bybit".
	Platform string
	Pair     domain.Pair
	// AssetID is the CoinGecko id of the monitored asset.
	AssetID string
	// RefAssetID is the CoinGecko id of the dominance reference asset.
	RefAssetID   string
	PollInterval time.Duration
	IdleInterval time.Duration
	// Once runs a single cycle and exits.
	Once bool
	// Setup launches the interactive configuration wizard and exits.
	Setup bool
	// WebAddr is the status server listen address, empty disables it.
	WebAddr string
	// JournalDir is the signal journal directory, empty disables journaling.
	JournalDir string
}

type fileConfig struct {
	Platform     string        `yaml:"platform"`
	Pair         string        `yaml:"pair"`
	AssetID      string        `yaml:"asset_id"`
	RefAssetID   string        `yaml:"ref_asset_id"`
	PollInterval time.Duration `yaml:"poll_interval"`
	IdleInterval time.Duration `yaml:"idle_interval"`
	WebAddr      string        `yaml:"web_addr"`
	JournalDir   string        `yaml:"journal_dir"`
}

// Get resolves the configuration from flags, falling back to a YAML file
// when --config is given.
func Get() (Config, error) {
	configPath := flag.String("config", "", "path to yaml config")
	setup := flag.Bool("setup", false, "run the interactive configuration wizard and exit")
	once := flag.Bool("once", false, "run a single cycle and exit")
	pairFlag := flag.String("pair", "ETH_USDT", "monitored pair, example: ETH_USDT")
	platform := flag.String("platform", DefaultPlatform, "kline source platform: binance or bybit")
	pollInterval := flag.Duration("pollinterval", DefaultPollInterval, "delay between polling cycles")
	idleInterval := flag.Duration("idleinterval", DefaultIdleInterval, "heartbeat throttle when no signal fires")
	webAddr := flag.String("web", "", "status server listen address, empty disables")
	journalDir := flag.String("journaldir", "", "signal journal directory, empty disables")

	flag.Parse()

	if *setup {
		return Config{Setup: true}, nil
	}

	var cfg Config
	if *configPath != "" {
		fileCfg, err := FromFile(*configPath)
		if err != nil {
			return Config{}, err
		}
		cfg = fileCfg
	} else {
		pair, err := ParsePair(*pairFlag)
		if err != nil {
			return Config{}, fmt.Errorf("invalid --pair provided, --pair=%s", *pairFlag)
		}
		cfg = Config{
			Platform:     *platform,
			Pair:         pair,
			AssetID:      DefaultAssetID,
			RefAssetID:   DefaultRefAssetID,
			PollInterval: *pollInterval,
			IdleInterval: *idleInterval,
			WebAddr:      *webAddr,
			JournalDir:   *journalDir,
		}
	}

	cfg.Once = *once

	if err := validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// FromFile loads the configuration from a YAML file, applying defaults for
// omitted fields.
func FromFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var tmp fileConfig
	if err := yaml.Unmarshal(raw, &tmp); err != nil {
		return Config{}, fmt.Errorf("parse yaml config: %w", err)
	}

	if tmp.Pair == "" {
		tmp.Pair = "ETH_USDT"
	}
	pair, err := ParsePair(tmp.Pair)
	if err != nil {
		return Config{}, fmt.Errorf("incorrect 'pair' param in yaml config: %s, error: %w", tmp.Pair, err)
	}

	cfg := Config{
		Platform:     tmp.Platform,
		Pair:         pair,
		AssetID:      tmp.AssetID,
		RefAssetID:   tmp.RefAssetID,
		PollInterval: tmp.PollInterval,
		IdleInterval: tmp.IdleInterval,
		WebAddr:      tmp.WebAddr,
		JournalDir:   tmp.JournalDir,
	}

	if cfg.Platform == "" {
		cfg.Platform = DefaultPlatform
	}
	if cfg.AssetID == "" {
		cfg.AssetID = DefaultAssetID
	}
	if cfg.RefAssetID == "" {
		cfg.RefAssetID = DefaultRefAssetID
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.IdleInterval == 0 {
		cfg.IdleInterval = DefaultIdleInterval
	}

	return cfg, nil
}

// WriteFile stores the configuration as YAML; used by the setup wizard.
func WriteFile(path string, cfg Config) error {
	tmp := fileConfig{
		Platform:     cfg.Platform,
		Pair:         cfg.Pair.String(),
		AssetID:      cfg.AssetID,
		RefAssetID:   cfg.RefAssetID,
		PollInterval: cfg.PollInterval,
		IdleInterval: cfg.IdleInterval,
		WebAddr:      cfg.WebAddr,
		JournalDir:   cfg.JournalDir,
	}

	raw, err := yaml.Marshal(tmp)
	if err != nil {
		return fmt.Errorf("marshal yaml config: %w", err)
	}

	return os.WriteFile(path, raw, 0o644)
}

func validate(cfg Config) error {
	switch cfg.Platform {
	case "binance", "bybit":
	default:
		return fmt.Errorf("unsupported platform: %s", cfg.Platform)
	}
	if cfg.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", cfg.PollInterval)
	}
	if cfg.IdleInterval <= 0 {
		return fmt.Errorf("idle interval must be positive, got %s", cfg.IdleInterval)
	}
	return nil
}

// ParsePair parses a FROM_TO pair string.
func ParsePair(raw string) (domain.Pair, error) {
	parts := strings.Split(raw, "_")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return domain.Pair{}, fmt.Errorf("pair must have the format FROM_TO, got %q", raw)
	}
	return domain.Pair{From: parts[0], To: parts[1]}, nil
}
