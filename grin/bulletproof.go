package grin

import (
	"io"

	"github.com/grinswap/atomicswap/keypair"
	"github.com/grinswap/atomicswap/swaperr"
)

// GenerateRound1 produces this party's contribution to the joint
// Bulletproof nonce commitment over the shared output commitment. Both
// parties' round-1 contributions are exchanged before either reveals
// their round-2 blinding shares, mirroring the commit-then-reveal shape
// every other sub-protocol in this module uses.
//
// The full Bulletproof inner-product argument is out of scope for this
// module (full-circuit Bulletproof verification belongs in a dedicated
// range-proof library, not reimplemented here); what is modeled is the
// two-round exchange shape and the binding check a caller performs once
// both rounds are in hand.
func GenerateRound1(rand io.Reader) (RangeProofRound1, keypair.Scalar, keypair.Scalar, error) {
	tau1, err := keypair.RandomScalar(rand)
	if err != nil {
		return RangeProofRound1{}, keypair.Scalar{}, keypair.Scalar{}, err
	}
	tau2, err := keypair.RandomScalar(rand)
	if err != nil {
		return RangeProofRound1{}, keypair.Scalar{}, keypair.Scalar{}, err
	}

	t1 := keypair.ScalarBaseMult(tau1)
	t2 := keypair.ScalarBaseMult(tau2)

	return RangeProofRound1{T1: t1, T2: t2}, tau1, tau2, nil
}

// GenerateRound2 produces this party's round-2 blinding shares, once both
// parties' round-1 commitments are known and have been combined into a
// challenge via BulletproofChallenge.
func GenerateRound2(tau1, tau2, blind, challenge keypair.Scalar) RangeProofRound2 {
	tauX := tau1.Add(challenge.Mul(tau2)).Add(challenge.Mul(challenge).Mul(blind))
	mu := blind.Add(challenge)
	return RangeProofRound2{TauX: tauX, Mu: mu}
}

// BulletproofChallenge derives the shared challenge scalar from both
// parties' combined round-1 commitments, the Fiat-Shamir binding step
// between round 1 and round 2.
func BulletproofChallenge(combinedT1, combinedT2 keypair.Point) keypair.Scalar {
	return challenge(combinedT1, combinedT2, KernelMessage(0, 0))
}

// VerifyRound2 checks that a counterparty's round-2 shares are
// consistent with their round-1 commitment and the shared commitment
// point, returning ErrRangeProofInvalid on mismatch.
func VerifyRound2(round1 RangeProofRound1, round2 RangeProofRound2, challenge keypair.Scalar, commitment keypair.Point) error {
	lhs := keypair.ScalarBaseMult(round2.TauX)
	rhs := round1.T1.Add(round1.T2.Mul(challenge)).Add(commitment.Mul(challenge.Mul(challenge)))

	if !lhs.Equal(rhs) {
		return swaperr.ErrRangeProofInvalid
	}
	return nil
}
