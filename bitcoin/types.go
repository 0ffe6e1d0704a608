// Package bitcoin implements the Bitcoin (beta) leg of the swap: a 2-of-2
// segwit fund output, a timelocked refund transaction, and an
// adaptor-encrypted redeem transaction.
//
// Script and transaction assembly is grounded on lnwallet/script_utils.go;
// the BIP-143 sighash is grounded on original_source/src/bitcoin/event.rs's
// use of SighashComponents (the modern btcsuite/btcd equivalent is
// txscript.CalcWitnessSigHash).
package bitcoin

import (
	"github.com/btcsuite/btcd/wire"

	"github.com/grinswap/atomicswap/dleq"
	"github.com/grinswap/atomicswap/keypair"
	"github.com/grinswap/atomicswap/setup"
)

// SKs is the secret-key bundle a party holds for the Bitcoin leg: a single
// key used in the 2-of-2 fund output, matching the per-party key that
// original_source/src/bitcoin/event.rs reads off both parties' bundles.
type SKs struct {
	X keypair.KeyPair
}

// GenerateSKs draws a fresh Bitcoin secret-key bundle.
func GenerateSKs(rand func() (keypair.KeyPair, error)) (SKs, error) {
	kp, err := rand()
	if err != nil {
		return SKs{}, err
	}
	return SKs{X: kp}, nil
}

// Public projects sks down to its PKs, the half the swap ceremony
// exchanges in messages M2 (redeemer) and M3 (funder).
func (sks SKs) Public() PKs {
	return PKs{X: sks.X.Public}
}

// PKs is the public projection of SKs.
type PKs struct {
	X keypair.Point
}

// Offer is the Bitcoin-visible subset of setup.BitcoinParams: every field
// both parties must agree on bit-for-bit before signing begins.
type Offer struct {
	Params setup.BitcoinParams
}

// WalletOutputs is the opaque reservation handle the external wallet
// integration produces: the selected inputs, plus where change should be
// delivered if this party ends up the funder. UTXO selection itself is out
// of scope; this package only consumes the already-resolved set.
type WalletOutputs struct {
	Inputs     []wire.TxIn
	InputValue []int64
}

// Signature is a DER-encoded ECDSA signature, the form used for the
// redeemer's pre-signed refund partial.
type Signature []byte

// DecryptedSignature is a plain ECDSA signature in scalar form, the result
// of decrypting an EncryptedSignature with the adaptor secret y.
type DecryptedSignature struct {
	R keypair.Scalar
	S keypair.Scalar
}

// EncryptedSignature is an adaptor-encrypted ECDSA signature: verifiable
// as a commitment to a real signature over a given message and public
// key, but not itself a valid signature until decrypted with the adaptor
// secret y (see adaptor.go).
//
// The construction follows the DLEQ-linked ECDSA adaptor scheme: a nonce
// k produces both the ordinary commitment R = k*G and the
// encryption-point-shifted commitment RHat = k*Y; Proof demonstrates
// (grounded on original_source/src/dleq.rs, reusing package dleq) that
// both share the discrete log k without revealing it.
type EncryptedSignature struct {
	R      keypair.Point
	RHat   keypair.Point
	SPrime keypair.Scalar
	Proof  dleq.Proof
}
