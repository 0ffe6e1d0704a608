package keypair

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// PointSize is the length in bytes of a compressed Point.
const PointSize = 33

// Point is a non-identity element of the secp256k1 group, always held in
// compressed-serializable (affine) form. G denotes the standard generator.
type Point struct {
	p *secp256k1.PublicKey
}

// G is the secp256k1 base point.
var G = basePoint()

func basePoint() Point {
	var j secp256k1.JacobianPoint
	var one secp256k1.ModNScalar
	one.SetInt(1)
	secp256k1.ScalarBaseMultNonConst(&one, &j)
	j.ToAffine()
	return Point{p: secp256k1.NewPublicKey(&j.X, &j.Y)}
}

// ParsePoint decodes a 33-byte compressed point, rejecting the point at
// infinity and any encoding that does not lie on the curve.
func ParsePoint(b []byte) (Point, error) {
	if len(b) != PointSize {
		return Point{}, fmt.Errorf("keypair: point must be %d bytes, got %d",
			PointSize, len(b))
	}

	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return Point{}, fmt.Errorf("keypair: invalid point: %w", err)
	}

	return Point{p: pub}, nil
}

// SerializeCompressed returns the 33-byte compressed encoding of p, the
// canonical wire form used throughout commit, dleq and the message
// encodings in swap.
func (p Point) SerializeCompressed() [PointSize]byte {
	var out [PointSize]byte
	copy(out[:], p.p.SerializeCompressed())
	return out
}

// Equal reports whether p and q are the same group element.
func (p Point) Equal(q Point) bool {
	return p.p.IsEqual(q.p)
}

// jacobian returns p's Jacobian representation for use in Add/Mul.
func (p Point) jacobian() secp256k1.JacobianPoint {
	var j secp256k1.JacobianPoint
	p.p.AsJacobian(&j)
	return j
}

func fromJacobian(j *secp256k1.JacobianPoint) Point {
	j.ToAffine()
	return Point{p: secp256k1.NewPublicKey(&j.X, &j.Y)}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	pj, qj := p.jacobian(), q.jacobian()
	var sum secp256k1.JacobianPoint
	secp256k1.AddNonConst(&pj, &qj, &sum)
	return fromJacobian(&sum)
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return p.Add(q.Negate())
}

// Negate returns -p.
func (p Point) Negate() Point {
	j := p.jacobian()
	j.Y.Negate(1).Normalize()
	return fromJacobian(&j)
}

// Mul returns x*p.
func (p Point) Mul(x Scalar) Point {
	pj := p.jacobian()
	var result secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(x.modNScalar(), &pj, &result)
	return fromJacobian(&result)
}

// Secp256k1 returns the underlying decred/btcec PublicKey representation.
// btcec/v2 type-aliases the same type, so packages that need to call into
// txscript/ecdsa verification routines directly can do so without this
// package leaking its internal representation for ordinary use.
func (p Point) Secp256k1() *secp256k1.PublicKey {
	return p.p
}

// XScalar returns the x-coordinate of p reduced modulo the group order,
// the construction ECDSA uses for its r value and that this module reuses
// to derive the adaptor-encrypted r from the shifted nonce point.
func (p Point) XScalar() Scalar {
	b := p.SerializeCompressed()
	s, _ := ScalarFromDigest(b[1:])
	return s
}

// ScalarBaseMult returns x*G, the public key corresponding to secret x.
func ScalarBaseMult(x Scalar) Point {
	var j secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(x.modNScalar(), &j)
	return fromJacobian(&j)
}
