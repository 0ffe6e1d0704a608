// Package dleq implements a non-interactive discrete-logarithm-equality
// proof: given two generators G, H and points Gx = x*G, Hx = x*H, a prover
// convinces a verifier that the same scalar x relates both pairs, without
// revealing x (spec.md §4.2).
//
// Both chains addressed by this module use secp256k1. The proof is used by
// package bitcoin's adaptor signatures, with H set to the adaptor point Y,
// to show that R = k*G and RHat = k*Y share the same nonce k.
//
// Grounded on original_source/src/dleq.rs.
package dleq

import (
	"crypto/sha256"
	"io"

	"github.com/grinswap/atomicswap/keypair"
	"github.com/grinswap/atomicswap/swaperr"
)

// Proof is a non-interactive Schnorr-style DLEQ proof (s, c).
type Proof struct {
	S keypair.Scalar
	C keypair.Scalar
}

// Prove constructs a proof that the same scalar x satisfies Gx = x*G and
// Hx = x*H.
func Prove(rand io.Reader, g, gx, h, hx keypair.Point, x keypair.Scalar) (Proof, error) {
	r, err := keypair.RandomScalar(rand)
	if err != nil {
		return Proof{}, err
	}

	gr := g.Mul(r)
	hr := h.Mul(r)

	c := challenge(g, gx, h, hx, gr, hr)

	// s = r + c*x mod n
	s := r.Add(c.Mul(x))

	return Proof{S: s, C: c}, nil
}

// Verify checks proof against (G, Gx, H, Hx). It rejects immediately if
// any point is the identity or fails to decode on-curve — callers are
// expected to have parsed these points with keypair.ParsePoint, which
// already enforces this, but the check is repeated here since Verify is
// the boundary spec.md §4.2 calls out explicitly ("reject if any point is
// identity or off-curve").
func Verify(g, gx, h, hx keypair.Point, proof Proof) bool {
	// The identity is held as (0, 0), which is not on the curve, so one
	// on-curve check covers both cases.
	for _, p := range []keypair.Point{g, gx, h, hx} {
		if !p.Secp256k1().IsOnCurve() {
			log.Debugf("dleq proof rejected: point is the identity or off-curve")
			return false
		}
	}

	negC := proof.C.Negate()

	// Gr' = s*G - c*Gx
	grPrime := g.Mul(proof.S).Add(gx.Mul(negC))
	// Hr' = s*H - c*Hx
	hrPrime := h.Mul(proof.S).Add(hx.Mul(negC))

	cPrime := challenge(g, gx, h, hx, grPrime, hrPrime)

	ok := cPrime.Equal(proof.C)
	if !ok {
		log.Debugf("dleq proof failed verification")
	}
	return ok
}

// VerifyErr is the swaperr-tagged variant of Verify, used by callers
// (grin and bitcoin signing ceremonies) that need to return the protocol
// error taxonomy rather than a bare bool.
func VerifyErr(g, gx, h, hx keypair.Point, proof Proof) error {
	if !Verify(g, gx, h, hx, proof) {
		return swaperr.ErrDleqInvalid
	}
	return nil
}

// challenge computes c = H(G || Gx || H || Hx || Gr || Hr) over the
// canonical compressed encodings, exactly as original_source/src/dleq.rs.
func challenge(g, gx, h, hx, gr, hr keypair.Point) keypair.Scalar {
	hasher := sha256.New()
	for _, p := range []keypair.Point{g, gx, h, hx, gr, hr} {
		enc := p.SerializeCompressed()
		hasher.Write(enc[:])
	}
	digest := hasher.Sum(nil)

	// A 32-byte SHA-256 digest reduced mod the group order is
	// overwhelmingly likely to already be in range; on the rare overflow
	// ParseScalar would reject a zero digest, which cannot occur here
	// since SHA-256 has a statistically zero chance of hitting exactly
	// zero mod n. We bypass ParseScalar's non-zero/range rejection by
	// constructing directly from the reduced representation.
	c, _ := keypair.ScalarFromDigest(digest)
	return c
}
