package keypair

import (
	"fmt"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// ScalarSize is the length in bytes of a canonically encoded Scalar.
const ScalarSize = 32

// Scalar is an integer modulo the order of the secp256k1 group. It backs
// both secret keys and the individual terms (nonces, challenges, adaptor
// offsets) that the commit, DLEQ and per-chain signing protocols pass
// around.
type Scalar struct {
	n secp256k1.ModNScalar
}

// ParseScalar decodes a 32-byte big-endian integer into a Scalar. It
// rejects the zero scalar, since every Scalar in this package is either a
// secret key or a nonce, and either being zero is a fatal precondition
// violation rather than a recoverable error.
func ParseScalar(b []byte) (Scalar, error) {
	if len(b) != ScalarSize {
		return Scalar{}, fmt.Errorf("keypair: scalar must be %d bytes, got %d",
			ScalarSize, len(b))
	}

	var s Scalar
	if overflow := s.n.SetByteSlice(b); overflow {
		return Scalar{}, fmt.Errorf("keypair: scalar overflows group order")
	}
	if s.n.IsZero() {
		return Scalar{}, fmt.Errorf("keypair: scalar must be non-zero")
	}

	return s, nil
}

// RandomScalar draws a uniformly random non-zero Scalar from rand,
// retrying on the (astronomically unlikely) event of a zero or
// out-of-range draw.
func RandomScalar(rand io.Reader) (Scalar, error) {
	for {
		var buf [ScalarSize]byte
		if _, err := io.ReadFull(rand, buf[:]); err != nil {
			return Scalar{}, fmt.Errorf("keypair: reading randomness: %w", err)
		}

		s, err := ParseScalar(buf[:])
		if err != nil {
			continue
		}
		return s, nil
	}
}

// Bytes returns the canonical big-endian encoding of x.
func (x Scalar) Bytes() [ScalarSize]byte {
	return x.n.Bytes()
}

// IsZero reports whether x is the additive identity. Only used internally;
// every externally constructed Scalar is guaranteed non-zero by
// ParseScalar/RandomScalar.
func (x Scalar) IsZero() bool {
	return x.n.IsZero()
}

// Equal reports whether x and y represent the same residue.
func (x Scalar) Equal(y Scalar) bool {
	return x.n.Equals(&y.n)
}

// Add returns x + y mod n.
func (x Scalar) Add(y Scalar) Scalar {
	var out Scalar
	out.n.Set(&x.n)
	out.n.Add(&y.n)
	return out
}

// Sub returns x - y mod n.
func (x Scalar) Sub(y Scalar) Scalar {
	return x.Add(y.Negate())
}

// Mul returns x * y mod n.
func (x Scalar) Mul(y Scalar) Scalar {
	var out Scalar
	out.n.Mul2(&x.n, &y.n)
	return out
}

// Negate returns -x mod n.
func (x Scalar) Negate() Scalar {
	var out Scalar
	out.n.Set(&x.n)
	out.n.Negate()
	return out
}

// Invert returns x^-1 mod n. x must be non-zero.
func (x Scalar) Invert() Scalar {
	var out Scalar
	out.n.Set(&x.n)
	out.n.InverseNonConst()
	return out
}

// modNScalar exposes the underlying decred representation for use inside
// the keypair package's Point arithmetic (scalar multiplication).
func (x Scalar) modNScalar() *secp256k1.ModNScalar {
	return &x.n
}

// Secp256k1 returns the underlying decred/btcec ModNScalar representation.
// btcec/v2 type-aliases the same type, so this lets bitcoin's adaptor
// signature code build btcec/v2/ecdsa.Signature values directly without
// this package leaking its internal representation for ordinary use.
func (x Scalar) Secp256k1() secp256k1.ModNScalar {
	return x.n
}

// ScalarFromDigest reduces a hash digest of up to 32 bytes mod the group
// order (a longer input is truncated to its first 32 bytes), for use as a
// Fiat-Shamir challenge (dleq.challenge). Unlike
// ParseScalar it accepts values that require modular reduction and does
// not reject a zero result, since a hash output is not itself a secret
// key and a zero challenge, while statistically near-impossible, is not a
// protocol violation.
func ScalarFromDigest(digest []byte) (Scalar, error) {
	var s Scalar
	s.n.SetByteSlice(digest)
	return s, nil
}
