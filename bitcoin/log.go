package bitcoin

import (
	"github.com/btcsuite/btclog"

	"github.com/grinswap/atomicswap/build"
)

var log = build.NewSubLogger(build.Backend, build.SubsystemBtc)

// UseLogger sets the package-wide logger, called from a daemon entry
// point (cmd/swapd) to redirect output from the default no-op backend.
func UseLogger(l btclog.Logger) {
	log = l
}
