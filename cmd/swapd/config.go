package main

import (
	"fmt"
	"os"

	flags "github.com/jessevdk/go-flags"

	"github.com/grinswap/atomicswap/build"
)

// config holds swapd's command-line and config-file options. Grounded on
// lnd's loadConfig/config struct split (lnd.go's loadConfig, trimmed to
// this daemon's much smaller surface): a single flat struct with
// `long`/`description` struct tags, parsed once at startup.
type config struct {
	Role string `long:"role" description:"which side of the swap this process drives" choice:"funder" choice:"redeemer"`

	LogLevel string `long:"loglevel" description:"logging level for all subsystems" default:"info"`

	Params string `long:"params" description:"path to a JSON file describing the swap's setup parameters"`

	Network string `long:"network" description:"bitcoin network the beta leg's addresses belong to" choice:"mainnet" choice:"testnet3" choice:"regtest" choice:"simnet" default:"mainnet"`

	ShowVersion bool `short:"V" long:"version" description:"display version information and exit"`
}

// defaultConfig returns a config populated with swapd's defaults, mirroring
// lnd's defaultConfig().
func defaultConfig() config {
	return config{
		Role:     "funder",
		LogLevel: "info",
		Network:  "mainnet",
	}
}

// loadConfig parses command-line flags into a config, applying defaults
// first exactly as lnd's loadConfig does before the flags.Parser runs.
func loadConfig() (*config, error) {
	cfg := defaultConfig()

	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		return nil, err
	}

	if cfg.ShowVersion {
		fmt.Println("swapd version", Version)
		os.Exit(0)
	}

	if cfg.Role != "funder" && cfg.Role != "redeemer" {
		return nil, fmt.Errorf("swapd: --role must be funder or redeemer, got %q", cfg.Role)
	}

	if _, ok := build.ParseLevel(cfg.LogLevel); !ok {
		return nil, fmt.Errorf("swapd: unrecognized --loglevel %q", cfg.LogLevel)
	}

	if cfg.Params == "" {
		return nil, fmt.Errorf("swapd: --params is required")
	}

	return &cfg, nil
}
