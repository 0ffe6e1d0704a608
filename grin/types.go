// Package grin implements the Grin (alpha) leg of the swap: a 2-of-2
// Schnorr-aggregated kernel signature over a fund, refund and redeem
// kernel, with a two-round Bulletproof range-proof exchange on the
// shared output commitment.
//
// Grounded on original_source/src/setup_parameters.rs and the kernel/
// output model it assumes; the signing ceremony itself follows the same
// commit-then-reveal shape as the Bitcoin leg (package bitcoin), adapted
// from lnwallet's funding-flow state machine (lnwallet/reservation.go).
package grin

import (
	"github.com/grinswap/atomicswap/keypair"
	"github.com/grinswap/atomicswap/setup"
)

// SKs is the secret-key bundle a party holds for the Grin leg: a blinding
// key used in the shared output commitment, and one nonce key per kernel
// that requires an aggregate signature (refund, redeem). A fresh nonce
// per kernel is mandatory: reusing one nonce to sign two different
// kernel messages with the same blinding key leaks the key outright.
type SKs struct {
	Blind        keypair.KeyPair
	NonceRefund  keypair.KeyPair
	NonceRedeem  keypair.KeyPair
}

// GenerateSKs draws a fresh Grin secret-key bundle.
func GenerateSKs(rand func() (keypair.KeyPair, error)) (SKs, error) {
	blind, err := rand()
	if err != nil {
		return SKs{}, err
	}
	nonceRefund, err := rand()
	if err != nil {
		return SKs{}, err
	}
	nonceRedeem, err := rand()
	if err != nil {
		return SKs{}, err
	}
	return SKs{Blind: blind, NonceRefund: nonceRefund, NonceRedeem: nonceRedeem}, nil
}

// Public projects sks down to its PKs, the half the swap ceremony
// exchanges in messages M2 (redeemer) and M3 (funder).
func (sks SKs) Public() PKs {
	return PKs{
		Blind:       sks.Blind.Public,
		NonceRefund: sks.NonceRefund.Public,
		NonceRedeem: sks.NonceRedeem.Public,
	}
}

// PKs is the public projection of SKs.
type PKs struct {
	Blind       keypair.Point
	NonceRefund keypair.Point
	NonceRedeem keypair.Point
}

// Offer is the Grin-visible subset of setup.GrinParams.
type Offer struct {
	Params setup.GrinParams
}

// Kernel is a signed Grin transaction kernel: an excess commitment and
// its aggregate Schnorr signature.
type Kernel struct {
	Excess    keypair.Point
	Signature Signature
	Fee       uint64
	LockHeight uint64
}

// Signature is an aggregate Schnorr signature (R, s) over a kernel.
type Signature struct {
	R keypair.Point
	S keypair.Scalar
}

// PartialSignature is one party's contribution to an aggregate kernel
// signature, sent across the wire and combined by the other party.
type PartialSignature struct {
	S keypair.Scalar
}

// RangeProofRound1 is the first round of the Bulletproof exchange: each
// party's contribution to the joint nonce commitment needed before the
// real proof can be assembled. Treated as an opaque blob, since the
// Bulletproof arithmetic itself is out of this module's scope; only the
// two-round commit/reveal shape is modeled.
type RangeProofRound1 struct {
	T1, T2 keypair.Point
}

// RangeProofRound2 is the second round: the prover's share of the taux
// and mu blinding scalars.
type RangeProofRound2 struct {
	TauX keypair.Scalar
	Mu   keypair.Scalar
}

// RangeProof is the final, verifiable Bulletproof over the shared output
// commitment.
type RangeProof struct {
	Round1 RangeProofRound1
	Round2 RangeProofRound2
}
