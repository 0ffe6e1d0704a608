package bitcoin

import (
	"io"

	"github.com/grinswap/atomicswap/dleq"
	"github.com/grinswap/atomicswap/keypair"
	"github.com/grinswap/atomicswap/swaperr"
)

// EncryptSign produces an EncryptedSignature over msgHash under signer's
// secret key, encrypted to the adaptor point y (so that only whoever
// learns the discrete log y can turn it into a spendable signature).
//
// Grounded on original_source/src/dleq.rs: the link between the plain
// nonce commitment R = k*G and the adaptor-shifted commitment RHat = k*Y
// is exactly a DLEQ statement, so this reuses package dleq rather than
// inventing a bespoke proof.
func EncryptSign(
	rand io.Reader,
	signer keypair.KeyPair,
	y keypair.Point,
	msgHash [32]byte,
) (EncryptedSignature, error) {

	k, err := keypair.RandomScalar(rand)
	if err != nil {
		return EncryptedSignature{}, err
	}

	r := keypair.ScalarBaseMult(k)
	rHat := y.Mul(k)

	proof, err := dleq.Prove(rand, keypair.G, r, y, rHat, k)
	if err != nil {
		return EncryptedSignature{}, err
	}

	h, _ := keypair.ScalarFromDigest(msgHash[:])
	rScalar := rHat.XScalar()
	sPrime := k.Invert().Mul(h.Add(rScalar.Mul(signer.Secret)))

	return EncryptedSignature{R: r, RHat: rHat, SPrime: sPrime, Proof: proof}, nil
}

// VerifyEncrypted checks that es is a validly formed encryption, under
// adaptor point y, of a signature over msgHash that would verify against
// pub. It does not require knowledge of y's discrete log.
func VerifyEncrypted(es EncryptedSignature, pub keypair.Point, y keypair.Point, msgHash [32]byte) error {
	if !dleq.Verify(keypair.G, es.R, y, es.RHat, es.Proof) {
		return swaperr.ErrBetaSigInvalid
	}

	r := es.RHat.XScalar()
	h, _ := keypair.ScalarFromDigest(msgHash[:])

	sInv := es.SPrime.Invert()
	u1 := h.Mul(sInv)
	u2 := r.Mul(sInv)

	rCheck := keypair.ScalarBaseMult(u1).Add(pub.Mul(u2))
	if !rCheck.Equal(es.R) {
		return swaperr.ErrBetaSigInvalid
	}
	return nil
}

// Decrypt turns es into a plain signature using the adaptor secret y,
// verifying the result against pub and msgHash before returning it.
// ErrAdaptorDecryptMismatch signals that y does not correspond to the
// point es was encrypted under.
func Decrypt(es EncryptedSignature, y keypair.Scalar, pub keypair.Point, msgHash [32]byte) (DecryptedSignature, error) {
	sig := DecryptedSignature{
		R: es.RHat.XScalar(),
		S: es.SPrime.Mul(y.Invert()),
	}

	if !verifyECDSA(sig, pub, msgHash) {
		return DecryptedSignature{}, swaperr.ErrAdaptorDecryptMismatch
	}
	return sig, nil
}

// Recover extracts the adaptor secret y from a decrypted signature and
// the EncryptedSignature it was decrypted from: the redeemer's half of
// the protocol, once the counterparty's redeem transaction confirms
// on-chain, recovers y this way to unlock the other chain's leg. The
// on-chain DER encoding may carry the negated (low-S) form of s, so the
// result is checked against y*R = RHat and negated when it does not match.
func Recover(es EncryptedSignature, sig DecryptedSignature) keypair.Scalar {
	y := es.SPrime.Mul(sig.S.Invert())
	if !es.R.Mul(y).Equal(es.RHat) {
		y = y.Negate()
	}
	return y
}

func verifyECDSA(sig DecryptedSignature, pub keypair.Point, msgHash [32]byte) bool {
	h, _ := keypair.ScalarFromDigest(msgHash[:])

	sInv := sig.S.Invert()
	u1 := h.Mul(sInv)
	u2 := sig.R.Mul(sInv)

	rCheck := keypair.ScalarBaseMult(u1).Add(pub.Mul(u2))
	return rCheck.XScalar().Equal(sig.R)
}
