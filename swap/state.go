package swap

import (
	"sync/atomic"

	"github.com/btcsuite/btclog"

	"github.com/grinswap/atomicswap/build"
	"github.com/grinswap/atomicswap/swaperr"
)

var log = build.NewSubLogger(build.Backend, build.SubsystemSwap)

// UseLogger sets the package-wide logger, called from a daemon entry
// point (cmd/swapd) to redirect output from the default no-op backend.
func UseLogger(l btclog.Logger) {
	log = l
}

// guard enforces one-shot consumption of a protocol state: every copy of
// a state value carries a pointer to the same guard (each successor state
// gets a fresh one), so calling its transition method twice — even on a
// separately retained copy — is caught rather than silently re-executed.
// The Go type system has no move-only types to enforce this statically,
// unlike the generic phantom-state pattern original_source's Rust
// implementation uses, so this is the runtime equivalent.
type guard struct {
	consumed int32
}

func newGuard() *guard {
	return &guard{}
}

// consume marks g used, returning ErrReusedState if it already was.
func (g *guard) consume() error {
	if !atomic.CompareAndSwapInt32(&g.consumed, 0, 1) {
		return swaperr.ErrReusedState
	}
	return nil
}
