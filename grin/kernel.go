package grin

import (
	"golang.org/x/crypto/blake2b"

	"github.com/grinswap/atomicswap/keypair"
	"github.com/grinswap/atomicswap/swaperr"
)

// challenge computes the Fiat-Shamir challenge e = H(R || excess || msg)
// for a 2-of-2 aggregate Schnorr kernel signature, binding the nonce
// commitment and the excess commitment into the signed message the same
// way a Grin kernel's signature message does. Hashed with blake2b-256,
// Grin's own native hash, rather than sha256.
func challenge(aggR, excess keypair.Point, msg [32]byte) keypair.Scalar {
	h, _ := blake2b.New256(nil)
	rBytes := aggR.SerializeCompressed()
	eBytes := excess.SerializeCompressed()
	h.Write(rBytes[:])
	h.Write(eBytes[:])
	h.Write(msg[:])

	e, _ := keypair.ScalarFromDigest(h.Sum(nil))
	return e
}

// SignPartial produces this party's contribution to a 2-of-2 aggregate
// Schnorr signature: s_i = r_i + e * x_i, where r_i is the party's nonce
// secret and x_i its blinding secret.
func SignPartial(nonceSecret, blindSecret keypair.Scalar, aggR, aggExcess keypair.Point, msg [32]byte) PartialSignature {
	e := challenge(aggR, aggExcess, msg)
	s := nonceSecret.Add(e.Mul(blindSecret))
	return PartialSignature{S: s}
}

// VerifyPartial checks a counterparty's partial signature against their
// public nonce and public blinding key, without needing either secret.
func VerifyPartial(partial PartialSignature, pubNonce, pubBlind, aggR, aggExcess keypair.Point, msg [32]byte) error {
	e := challenge(aggR, aggExcess, msg)

	lhs := keypair.ScalarBaseMult(partial.S)
	rhs := pubNonce.Add(pubBlind.Mul(e))

	if !lhs.Equal(rhs) {
		log.Errorf("partial signature failed verification against public nonce/blind")
		return swaperr.ErrAlphaSigInvalid
	}
	return nil
}

// AggregateSignatures combines both parties' partial signatures into the
// final kernel signature.
func AggregateSignatures(aggR keypair.Point, ours, theirs PartialSignature) Signature {
	return Signature{R: aggR, S: ours.S.Add(theirs.S)}
}

// VerifyKernel checks a fully-aggregated kernel signature against the
// kernel's excess commitment.
func VerifyKernel(sig Signature, excess keypair.Point, msg [32]byte) error {
	e := challenge(sig.R, excess, msg)

	lhs := keypair.ScalarBaseMult(sig.S)
	rhs := sig.R.Add(excess.Mul(e))

	if !lhs.Equal(rhs) {
		log.Errorf("aggregate kernel signature failed verification, excess=%x",
			excess.SerializeCompressed())
		return swaperr.ErrAlphaSigInvalid
	}
	return nil
}

// KernelMessage derives the 32-byte message a kernel's signature commits
// to, from its fee and lock height, matching the fields a real Grin
// kernel signs over.
func KernelMessage(fee, lockHeight uint64) [32]byte {
	h, _ := blake2b.New256(nil)
	h.Write(uint64LE(fee))
	h.Write(uint64LE(lockHeight))

	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func uint64LE(v uint64) []byte {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * uint(i)))
	}
	return b
}
