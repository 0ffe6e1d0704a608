package grin

import (
	"github.com/grinswap/atomicswap/keypair"
	"github.com/grinswap/atomicswap/swaperr"
)

// EncryptedPartialSignature is a Schnorr partial signature blinded by the
// shared adaptor point Y = y*G: s' = r + e*x - y. Unlike the Bitcoin
// (ECDSA) adaptor construction in package bitcoin, Schnorr's linearity
// means encrypting directly against the adaptor secret's point needs no
// extra DLEQ proof at this layer. Both legs use the very same point Y on
// the same curve, so no cross-chain proof is made; package dleq appears
// only inside the Bitcoin adaptor construction.
type EncryptedPartialSignature struct {
	SPrime keypair.Scalar
}

// EncryptPartial produces an adaptor-encrypted partial signature. Only a
// party that already knows y's discrete log (the funder, who generated y)
// can call this; a party holding only the point Y cannot.
func EncryptPartial(nonceSecret, blindSecret, y keypair.Scalar, aggR, aggExcess keypair.Point, msg [32]byte) EncryptedPartialSignature {
	e := challenge(aggR, aggExcess, msg)
	s := nonceSecret.Add(e.Mul(blindSecret)).Sub(y)
	return EncryptedPartialSignature{SPrime: s}
}

// VerifyEncryptedPartial checks an encrypted partial signature against
// the signer's public nonce and blinding key and the public adaptor
// point Y, without needing y's discrete log.
func VerifyEncryptedPartial(encSig EncryptedPartialSignature, pubNonce, pubBlind, y, aggR, aggExcess keypair.Point, msg [32]byte) error {
	e := challenge(aggR, aggExcess, msg)

	lhs := keypair.ScalarBaseMult(encSig.SPrime).Add(y)
	rhs := pubNonce.Add(pubBlind.Mul(e))

	if !lhs.Equal(rhs) {
		return swaperr.ErrAlphaSigInvalid
	}
	return nil
}

// DecryptPartial recovers the plain partial signature share from an
// encrypted one, given the adaptor secret y.
func DecryptPartial(encSig EncryptedPartialSignature, y keypair.Scalar) PartialSignature {
	return PartialSignature{S: encSig.SPrime.Add(y)}
}

// RecoverSecret extracts the adaptor secret y by comparing an encrypted
// partial signature against the plain one it decrypts to once observed
// on-chain, the Grin-side counterpart to bitcoin.Recover.
func RecoverSecret(encSig EncryptedPartialSignature, decrypted PartialSignature) keypair.Scalar {
	return decrypted.S.Sub(encSig.SPrime)
}
