package bitcoin

import (
	"fmt"

	"github.com/btcsuite/btcd/wire"
)

// SpendType determines how the fund output's witness is generated,
// one value per transaction that spends it.
//
// Adapted from lnwallet/witnessgen.go's WitnessType/WitnessGenerator
// abstraction, narrowed from the teacher's commitment-sweep cases
// (CommitmentTimeLock/NoDelay/Revoke) to this module's three fund-output
// spends.
type SpendType uint16

const (
	// SpendRefund spends the fund output back to the funder after
	// expiry, using both parties' pre-signed refund signatures.
	SpendRefund SpendType = 0

	// SpendRedeem spends the fund output to the redeemer, using the
	// funder's decrypted adaptor signature plus the redeemer's own.
	SpendRedeem SpendType = 1
)

// WitnessGenerator produces the final witness stack for the fund
// output's sole input.
type WitnessGenerator func(redeemScript []byte, pubA, sigA, pubB, sigB []byte) [][]byte

// GenWitnessFunc returns the WitnessGenerator for st. Both spend types
// share the same 2-of-2 witness shape; the distinction matters to
// callers choosing which pair of signatures to supply, not to the
// witness assembly itself.
func (st SpendType) GenWitnessFunc() (WitnessGenerator, error) {
	switch st {
	case SpendRefund, SpendRedeem:
		return spendMultiSig, nil
	default:
		return nil, fmt.Errorf("bitcoin: unknown spend type: %v", st)
	}
}

// ApplyWitness assembles and attaches the witness for spending the fund
// output to tx's sole input, returning a copy so the caller's unsigned
// transaction template remains reusable.
func ApplyWitness(st SpendType, tx *wire.MsgTx, redeemScript, pubA, sigA, pubB, sigB []byte) (*wire.MsgTx, error) {
	gen, err := st.GenWitnessFunc()
	if err != nil {
		return nil, err
	}

	out := tx.Copy()
	out.TxIn[0].Witness = gen(redeemScript, pubA, sigA, pubB, sigB)
	return out, nil
}
