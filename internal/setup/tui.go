// Package setup provides the terminal configuration wizard reached via
// --setup.
package setup

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"github.com/bar-oss/ethsentry/config"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)
)

// RunWizard walks through the agent settings and writes them to path.
func RunWizard(path string) error {
	var (
		platform        = config.DefaultPlatform
		pairStr         = "ETH_USDT"
		pollIntervalStr = config.DefaultPollInterval.String()
		idleIntervalStr = config.DefaultIdleInterval.String()
		webAddr         string
		journalDir      string
		confirm         bool
	)

	fmt.Print("\033[H\033[2J") // Clear screen
	fmt.Println(headerStyle.Render("ETHSENTRY CONFIG WIZARD"))
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("Set up the market monitor.\n"))

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Candle data platform").
				Options(
					huh.NewOption("Binance", "binance"),
					huh.NewOption("Bybit", "bybit"),
				).
				Value(&platform),
			huh.NewInput().
				Title("Monitored pair").
				Description("format FROM_TO, e.g. ETH_USDT").
				Value(&pairStr),
			huh.NewInput().
				Title("Poll interval").
				Description("delay between cycles, e.g. 5m").
				Value(&pollIntervalStr),
			huh.NewInput().
				Title("Idle heartbeat interval").
				Description("how long to stay silent without a signal, e.g. 1h").
				Value(&idleIntervalStr),
			huh.NewInput().
				Title("Status server address").
				Description("e.g. :8080, leave empty to disable").
				Value(&webAddr),
			huh.NewInput().
				Title("Signal journal directory").
				Description("leave empty to disable journaling").
				Value(&journalDir),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Write configuration to %s?", path)).
				Value(&confirm),
		),
	).Run()
	if err != nil {
		return errors.Wrap(err, "configuration wizard failed")
	}

	if !confirm {
		fmt.Println("Aborted, nothing written.")
		return nil
	}

	cfg, err := buildConfig(platform, pairStr, pollIntervalStr, idleIntervalStr, webAddr, journalDir)
	if err != nil {
		return err
	}

	if err := config.WriteFile(path, cfg); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}

	fmt.Printf("Configuration written to %s. Start the agent with --config %s\n", path, path)
	return nil
}

func buildConfig(platform, pairStr, pollIntervalStr, idleIntervalStr, webAddr, journalDir string) (config.Config, error) {
	pollInterval, err := time.ParseDuration(pollIntervalStr)
	if err != nil {
		return config.Config{}, errors.Wrapf(err, "invalid poll interval %q", pollIntervalStr)
	}
	idleInterval, err := time.ParseDuration(idleIntervalStr)
	if err != nil {
		return config.Config{}, errors.Wrapf(err, "invalid idle interval %q", idleIntervalStr)
	}

	pair, err := config.ParsePair(pairStr)
	if err != nil {
		return config.Config{}, err
	}

	return config.Config{
		Platform:     platform,
		Pair:         pair,
		AssetID:      config.DefaultAssetID,
		RefAssetID:   config.DefaultRefAssetID,
		PollInterval: pollInterval,
		IdleInterval: idleInterval,
		WebAddr:      webAddr,
		JournalDir:   journalDir,
	}, nil
}
