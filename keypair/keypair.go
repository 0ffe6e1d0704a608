package keypair

import (
	"crypto/rand"
	"io"
)

// KeyPair is a secret scalar and its corresponding public point, the unit
// of secret material every per-chain signing bundle (grin.SKs,
// bitcoin.SKs) and the adaptor secret y are built from.
type KeyPair struct {
	Secret Scalar
	Public Point
}

// Generate draws a fresh KeyPair from rand. Production callers must pass
// NewCSPRNG(); deterministic readers are reserved for tests.
func Generate(rand io.Reader) (KeyPair, error) {
	secret, err := RandomScalar(rand)
	if err != nil {
		return KeyPair{}, err
	}
	return FromScalar(secret), nil
}

// FromScalar derives the KeyPair for an already-known secret, used when
// restoring a KeyPair from a previously generated Scalar (e.g. the
// adaptor secret y once it has been decided upon).
func FromScalar(secret Scalar) KeyPair {
	return KeyPair{
		Secret: secret,
		Public: ScalarBaseMult(secret),
	}
}

// Zero overwrites the in-memory representation of the secret half of kp.
// Best-effort: Go gives no hard guarantee against later copies made by the
// garbage collector or register spills, but this mirrors the zeroization
// lnd performs on ephemeral ECDH secrets in its noise handshake.
func (kp *KeyPair) Zero() {
	kp.Secret = Scalar{}
}

// NewCSPRNG returns the process-wide cryptographically secure randomness
// source. Passed explicitly rather than referenced as a package global so
// that tests can substitute a seeded reader (spec.md §4.5).
func NewCSPRNG() io.Reader {
	return rand.Reader
}
