// Command swapd drives one side of a Grin/Bitcoin atomic swap ceremony,
// exposing the swap package's state machine over a framed stdin/stdout
// transport. It owns no wallet: funding inputs, change/refund/redeem
// addresses and the observed counterparty redeem transaction are all
// supplied by its driver, exactly as the core state machine leaves
// wallet integration to its caller.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/btcsuite/btcd/chaincfg"

	"github.com/grinswap/atomicswap/build"
	"github.com/grinswap/atomicswap/keypair"
	"github.com/grinswap/atomicswap/swap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "swapd:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	level, _ := build.ParseLevel(cfg.LogLevel)
	initLogging(level)

	net, err := networkParams(cfg.Network)
	if err != nil {
		return err
	}

	params, err := loadParamsFile(cfg.Params, net)
	if err != nil {
		return err
	}

	rand := keypair.NewCSPRNG()
	scanner := bufio.NewScanner(os.Stdin)
	// Raise bufio.Scanner's 64KiB default token size to 1MiB, far above
	// the largest frame this ceremony exchanges.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	out := newQueuedWriter(os.Stdout)
	defer out.Close()

	switch cfg.Role {
	case "funder":
		return runFunder(rand, params, scanner, out)
	case "redeemer":
		return runRedeemer(rand, params, scanner, out)
	default:
		return fmt.Errorf("unreachable role %q", cfg.Role)
	}
}

func networkParams(name string) (*chaincfg.Params, error) {
	switch name {
	case "mainnet":
		return &chaincfg.MainNetParams, nil
	case "testnet3":
		return &chaincfg.TestNet3Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	case "simnet":
		return &chaincfg.SimNetParams, nil
	default:
		return nil, fmt.Errorf("unrecognized network %q", name)
	}
}
