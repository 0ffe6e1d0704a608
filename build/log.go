// Package build centralizes the sub-system loggers shared across this
// module's packages, following the convention used throughout lnd
// (contractcourt, lnwallet, channeldb): each package holds a package-level
// btclog.Logger set via UseLogger, defaulting to a no-op backend so tests
// and library consumers aren't forced to configure logging. A daemon entry
// point (cmd/swapd) wires real loggers in by calling every package's
// UseLogger once at startup, exactly as lnd's log.go does for its own
// sub-systems.
package build

import (
	"github.com/btcsuite/btclog"
)

// Sub-system tags, one per package that logs.
const (
	SubsystemSwap   = "SWAP"
	SubsystemGrin   = "GRIN"
	SubsystemBtc    = "BTCN"
	SubsystemDleq   = "DLEQ"
	SubsystemCommit = "CMIT"
)

// Backend is the shared btclog.Backend every sub-system logger is derived
// from by default. Callers that want real output construct their own
// backend and call NewSubLogger per tag, then wire the results into each
// package via its UseLogger function (see cmd/swapd/log.go).
var Backend = btclog.NewBackend(noopWriter{})

// NewSubLogger returns a Logger for the given sub-system tag, sourced from
// backend and defaulting to Info level.
func NewSubLogger(backend *btclog.Backend, tag string) btclog.Logger {
	logger := backend.Logger(tag)
	logger.SetLevel(btclog.LevelInfo)
	return logger
}

// ParseLevel parses a level string (e.g. "info", "debug", "trace") into a
// btclog.Level, mirroring lnd's supportedSubsystems level-name validation.
func ParseLevel(s string) (btclog.Level, bool) {
	return btclog.LevelFromString(s)
}

type noopWriter struct{}

func (noopWriter) Write(p []byte) (int, error) { return len(p), nil }
