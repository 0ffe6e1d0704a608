// Package swaperr defines the tagged error taxonomy of spec.md §7. The
// protocol checks in commit, dleq, grin, bitcoin and swap return these
// sentinels, optionally wrapped with go-errors/errors at the call site so
// a stack trace survives to the top-level caller in debug builds; parsing
// and I/O failures surface as ordinary errors.
//
// Grounded on channeldb/error.go's package-level sentinel-var convention.
package swaperr

import (
	"fmt"

	goerrors "github.com/go-errors/errors"
)

var (
	// ErrInvalidAmounts signals that a SetupParameters' Bitcoin leg did
	// not balance: inputs must cover asset + 2*fee + change. Fatal at
	// construction time; there is no protocol instance to abort.
	ErrInvalidAmounts = fmt.Errorf("setup: inputs do not cover asset + 2*fee + change")

	// ErrCommitmentMismatch signals that an Opening does not hash to the
	// Commitment it claims to open.
	ErrCommitmentMismatch = fmt.Errorf("commit: opening does not match commitment")

	// ErrDleqInvalid signals that a DLEQ proof failed verification.
	ErrDleqInvalid = fmt.Errorf("dleq: proof does not verify")

	// ErrAlphaSigInvalid signals that the counterparty's partial
	// signature(s) on the Grin (alpha) leg failed verification.
	ErrAlphaSigInvalid = fmt.Errorf("grin: peer partial signature is invalid")

	// ErrBetaSigInvalid signals that the counterparty's partial
	// signature(s) on the Bitcoin (beta) leg failed verification.
	ErrBetaSigInvalid = fmt.Errorf("bitcoin: peer partial signature is invalid")

	// ErrAdaptorDecryptMismatch signals that decrypting an adaptor
	// signature with y did not yield a signature that verifies under
	// the expected public key.
	ErrAdaptorDecryptMismatch = fmt.Errorf("adaptor: decrypted signature does not verify")

	// ErrRangeProofInvalid signals that the Grin Bulletproof round-2
	// verification failed.
	ErrRangeProofInvalid = fmt.Errorf("grin: bulletproof round 2 does not verify")

	// ErrReusedState signals that a one-shot protocol state was consumed
	// more than once (spec.md §4.4).
	ErrReusedState = fmt.Errorf("swap: state already consumed")

	// ErrProtocolAborted marks a swap instance aborted before reaching a
	// terminal state: the funder returns it when the redeemer's M4
	// carries a cleared OK flag.
	ErrProtocolAborted = fmt.Errorf("swap: protocol aborted")
)

// Wrap attaches a stack trace to err using go-errors/errors, annotating it
// with msg. Returns nil if err is nil. Used at package boundaries so a
// caller debugging a failed swap can print exactly where the sentinel
// originated.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return goerrors.WrapPrefix(err, msg, 1)
}
