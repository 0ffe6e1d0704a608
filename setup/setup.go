// Package setup holds SetupParameters (spec.md §3, §6): the immutable,
// out-of-band-agreed inputs both parties hold identical copies of before
// the six-message protocol begins. Wallet integration (UTXO selection,
// Grin output creation, address derivation) is explicitly out of scope
// per spec.md §1 and is consumed here only as already-resolved values.
//
// Grounded on original_source/src/setup_parameters.rs, with the
// construction-time validation pattern of lnwallet/reservation.go's
// ChannelContribution (teacher: validate everything eagerly, before any
// cryptographic ceremony begins).
package setup

import (
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/wire"
	"github.com/lightningnetwork/lnd/clock"

	"github.com/grinswap/atomicswap/swaperr"
)

// GrinParams is the Grin (alpha) leg of a swap.
type GrinParams struct {
	// Amount is the value, in nanogrin, being swapped.
	Amount uint64

	// Fee is shared across the fund, refund and redeem kernels; the
	// original source does not model per-transaction fees separately
	// (original_source/src/setup_parameters.rs), and this module
	// preserves that simplification.
	Fee uint64

	// ExpiryHeight is the Grin block height after which the refund
	// kernel becomes valid.
	ExpiryHeight uint64
}

// OutPointAmount pairs a Bitcoin outpoint selected as a funding input with
// the amount it carries, as reported by the (external) wallet.
type OutPointAmount struct {
	OutPoint wire.OutPoint
	Amount   uint64
}

// BitcoinParams is the Bitcoin (beta) leg of a swap.
type BitcoinParams struct {
	// Asset is the value, in satoshis, being swapped.
	Asset uint64

	// Fee is charged twice: once for the fund transaction, once for
	// whichever of refund/redeem eventually confirms.
	Fee uint64

	// ExpiryAbsTimestamp is the absolute Unix timestamp (nLockTime)
	// after which the refund transaction becomes valid.
	ExpiryAbsTimestamp uint32

	// Inputs are the UTXOs spent by the fund transaction.
	Inputs []OutPointAmount

	// ChangeAddr receives any leftover value from Inputs beyond
	// Asset + 2*Fee.
	ChangeAddr btcutil.Address

	// RefundAddr receives the fund output back after expiry, if redeem
	// never occurs.
	RefundAddr btcutil.Address

	// RedeemAddr receives the fund output once the counterparty
	// broadcasts a valid redeem transaction.
	RedeemAddr btcutil.Address

	// change is computed by NewBitcoinParams and exposed via Change().
	change uint64
}

// NewBitcoinParams validates and constructs a BitcoinParams. It enforces
// spec.md §3's invariant: sum(inputs) = asset + 2*fee + change. Any
// shortfall returns swaperr.ErrInvalidAmounts, matching
// original_source/src/setup_parameters.rs's Bitcoin::new.
func NewBitcoinParams(
	asset, fee uint64,
	expiry uint32,
	inputs []OutPointAmount,
	changeAddr, refundAddr, redeemAddr btcutil.Address,
) (BitcoinParams, error) {

	var total uint64
	for _, in := range inputs {
		total += in.Amount
	}

	floor := asset + 2*fee
	if total < floor {
		return BitcoinParams{}, swaperr.ErrInvalidAmounts
	}

	return BitcoinParams{
		Asset:              asset,
		Fee:                fee,
		ExpiryAbsTimestamp: expiry,
		Inputs:             inputs,
		ChangeAddr:         changeAddr,
		RefundAddr:         refundAddr,
		RedeemAddr:         redeemAddr,
		change:             total - floor,
	}, nil
}

// Change returns the leftover value routed to ChangeAddr.
func (b BitcoinParams) Change() uint64 {
	return b.change
}

// FundOutputAmount is the value locked into the 2-of-2 fund output.
func (b BitcoinParams) FundOutputAmount() uint64 {
	return b.Asset + b.Fee
}

// RedeemOutputAmount is the value paid out by the redeem transaction.
func (b BitcoinParams) RedeemOutputAmount() uint64 {
	return b.Asset
}

// Parameters bundles both legs of a swap. Both parties must hold
// byte-identical copies; any disagreement surfaces as a signature
// verification failure mid-protocol (spec.md §6), since SetupParameters
// itself is never hashed into a commitment and the copy the funder sends
// in M0 is not checked against the redeemer's own.
type Parameters struct {
	Alpha GrinParams
	Beta  BitcoinParams
}

// Validate checks the expiry fields against now, supplementing
// original_source/src/setup_parameters.rs (which performs no such check):
// a swap whose Bitcoin refund time or Grin refund height has already
// passed relative to the clock's notion of "now" can never safely lock
// funds. currentHeight is the caller's best estimate of the current Grin
// chain tip, passed in since chain height has no universal wall-clock
// equivalent.
func (p Parameters) Validate(clk clock.Clock, currentHeight uint64) error {
	if uint32(clk.Now().Unix()) >= p.Beta.ExpiryAbsTimestamp {
		return swaperr.Wrap(swaperr.ErrInvalidAmounts,
			"bitcoin expiry has already elapsed")
	}
	if currentHeight >= p.Alpha.ExpiryHeight {
		return swaperr.Wrap(swaperr.ErrInvalidAmounts,
			"grin expiry height has already elapsed")
	}
	return nil
}

// expiryFromUnix converts the Bitcoin expiry into a time.Time, for
// ExpiryTime.
func expiryFromUnix(ts uint32) time.Time {
	return time.Unix(int64(ts), 0).UTC()
}

// ExpiryTime returns the Bitcoin refund expiry as a time.Time.
func (b BitcoinParams) ExpiryTime() time.Time {
	return expiryFromUnix(b.ExpiryAbsTimestamp)
}
