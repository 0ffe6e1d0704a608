package main

import (
	"os"

	"github.com/btcsuite/btclog"

	"github.com/grinswap/atomicswap/bitcoin"
	"github.com/grinswap/atomicswap/build"
	"github.com/grinswap/atomicswap/commit"
	"github.com/grinswap/atomicswap/dleq"
	"github.com/grinswap/atomicswap/grin"
	"github.com/grinswap/atomicswap/swap"
)

// backend is swapd's real logging backend. It writes to stderr so that
// stdout stays reserved for the framed protocol messages the daemon
// exchanges with its driver, mirroring lnd's log.go (newLogWriter/
// backendLog) with the multi-writer/rotation machinery trimmed since
// swapd is a single-process CLI tool, not a long-lived node.
var backend = btclog.NewBackend(os.Stderr)

// initLogging constructs one sub-system logger per package at level and
// wires each package's UseLogger, exactly as lnd's log.go calls
// UseLogger on channeldb, lnwallet, htlcswitch, etc. before rotation.
func initLogging(level btclog.Level) {
	subsystems := map[string]func(btclog.Logger){
		build.SubsystemSwap:   swap.UseLogger,
		build.SubsystemGrin:   grin.UseLogger,
		build.SubsystemBtc:    bitcoin.UseLogger,
		build.SubsystemDleq:   dleq.UseLogger,
		build.SubsystemCommit: commit.UseLogger,
	}

	for tag, use := range subsystems {
		logger := backend.Logger(tag)
		logger.SetLevel(level)
		use(logger)
	}
}
