package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bar-oss/ethsentry/config"
	"github.com/bar-oss/ethsentry/internal"
	"github.com/bar-oss/ethsentry/internal/clients"
	"github.com/bar-oss/ethsentry/internal/services/market/aggregator"
	"github.com/bar-oss/ethsentry/internal/services/market/collector"
	"github.com/bar-oss/ethsentry/internal/services/market/derivatives"
	"github.com/bar-oss/ethsentry/internal/setup"
	"github.com/bar-oss/ethsentry/internal/storage/signals"
	"github.com/bar-oss/ethsentry/internal/web"
)

const configFile = "config.yaml"

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Get()
	if err != nil {
		logger.Fatal("failed to get configuration", zap.Error(err))
	}

	if cfg.Setup {
		if err := setup.RunWizard(configFile); err != nil {
			logger.Fatal("setup wizard failed", zap.Error(err))
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var klines collector.KlineProvider
	switch cfg.Platform {
	case "bybit":
		klines = collector.NewBybitKlineProvider(clients.NewBybitClient())
	default:
		klines = collector.NewBinanceKlineProvider(clients.NewBinanceSpotClient())
	}

	coingecko := clients.NewCoinGeckoClient()
	agg := aggregator.New(aggregator.Sources{
		Spot:        coingecko,
		Klines:      klines,
		Derivatives: derivatives.NewBinanceProvider(clients.NewBinanceFuturesClient()),
		Sentiment:   clients.NewSentimentClient(),
		Calendar:    clients.NewCalendarClient(),
	}, cfg.Pair, cfg.AssetID, cfg.RefAssetID, logger)

	var journal internal.SignalJournal
	var store *signals.WALStore
	if cfg.JournalDir != "" {
		store, err = signals.NewWALStore(cfg.JournalDir)
		if err != nil {
			logger.Fatal("failed to open signal journal", zap.Error(err))
		}
		defer store.Close()
		journal = store
	}

	monitor := internal.NewMonitor(agg, journal, logger, cfg.Pair, cfg.PollInterval, cfg.IdleInterval)

	if cfg.Once {
		monitor.RunCycle(ctx)
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return monitor.Run(gctx)
	})
	if cfg.WebAddr != "" && store != nil {
		srv := web.NewServer(cfg.WebAddr, store, logger)
		g.Go(func() error {
			return srv.Start(gctx)
		})
		logger.Info("status server started", zap.String("addr", cfg.WebAddr))
	}

	logger.Info("monitor started",
		zap.String("pair", cfg.Pair.String()),
		zap.String("platform", cfg.Platform),
		zap.Duration("poll_interval", cfg.PollInterval))

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error(err.Error())
	}
}
