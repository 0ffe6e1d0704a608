// Package commit implements the binding, hiding commitment a funder sends
// ahead of the public keys and adaptor point it reveals later: a
// commitment to (alpha, beta, y) precedes their disclosure, so that
// neither party can grind its own keys or secret against the other's.
package commit

import (
	"crypto/sha256"
	"io"

	"github.com/btcsuite/btclog"

	"github.com/grinswap/atomicswap/build"
	"github.com/grinswap/atomicswap/keypair"
	"github.com/grinswap/atomicswap/swaperr"
)

var log = build.NewSubLogger(build.Backend, build.SubsystemCommit)

// UseLogger sets the package-wide logger, called from a daemon entry
// point (cmd/swapd) to redirect output from the default no-op backend.
func UseLogger(l btclog.Logger) {
	log = l
}

// Size is the length in bytes of a Commitment.
const Size = sha256.Size

// NonceSize is the length in bytes of the hiding randomness.
const NonceSize = 32

// Commitment is the 32-byte digest H(alpha || beta || y || nonce).
type Commitment [Size]byte

// Opening carries the preimage of a Commitment: the three points being
// committed to, plus the randomness that makes the commitment hiding.
type Opening struct {
	Alpha keypair.Point
	Beta  keypair.Point
	Y     keypair.Point
	Nonce [NonceSize]byte
}

// Commit samples fresh hiding randomness and returns both the commitment
// to (alpha, beta, y) and its Opening. The caller sends the Commitment
// early in the ceremony and the Opening once it is ready to reveal y.
func Commit(rand io.Reader, alpha, beta, y keypair.Point) (Commitment, Opening, error) {
	var nonce [NonceSize]byte
	if _, err := io.ReadFull(rand, nonce[:]); err != nil {
		return Commitment{}, Opening{}, err
	}

	opening := Opening{Alpha: alpha, Beta: beta, Y: y, Nonce: nonce}
	return opening.digest(), opening, nil
}

// digest computes H(alpha || beta || y || nonce) over the canonical
// compressed encodings, in that fixed order.
func (o Opening) digest() Commitment {
	h := sha256.New()

	a := o.Alpha.SerializeCompressed()
	b := o.Beta.SerializeCompressed()
	y := o.Y.SerializeCompressed()

	h.Write(a[:])
	h.Write(b[:])
	h.Write(y[:])
	h.Write(o.Nonce[:])

	var out Commitment
	copy(out[:], h.Sum(nil))
	return out
}

// Open verifies that o is a valid preimage of expect, returning the three
// committed points on success. CommitmentMismatch signals either a
// tampered opening or a dishonest committer; the caller must abort the
// swap in either case.
func (o Opening) Open(expect Commitment) (alpha, beta, y keypair.Point, err error) {
	if o.digest() != expect {
		log.Errorf("commitment mismatch: opening does not hash to the expected commitment")
		return keypair.Point{}, keypair.Point{}, keypair.Point{}, swaperr.ErrCommitmentMismatch
	}
	return o.Alpha, o.Beta, o.Y, nil
}
