package bitcoin

import (
	"io"

	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/wire"

	"github.com/grinswap/atomicswap/keypair"
	"github.com/grinswap/atomicswap/swaperr"
)

// SignRefund produces the plain (non-adaptor) DER signature over the
// refund transaction's sole input, used by both parties since the refund
// path requires an ordinary 2-of-2 multisig spend once the timelock
// elapses.
func SignRefund(
	rand io.Reader,
	signer keypair.KeyPair,
	refundTx *wire.MsgTx,
	redeemScript []byte,
	fundValue int64,
) (Signature, error) {
	return SignPlainInput(rand, signer, refundTx, redeemScript, fundValue)
}

// SignPlainInput produces an ordinary (non-adaptor) DER signature over
// tx's sole input. Used for both the refund spend and the redeemer's own
// half of the redeem spend, neither of which need to be encrypted since
// they never expose a party's secret to the counterparty.
func SignPlainInput(
	rand io.Reader,
	signer keypair.KeyPair,
	tx *wire.MsgTx,
	redeemScript []byte,
	fundValue int64,
) (Signature, error) {

	hash, err := SigHash(tx, redeemScript, fundValue)
	if err != nil {
		return nil, err
	}

	var h [32]byte
	copy(h[:], hash)

	sig, err := signPlain(rand, signer, h)
	if err != nil {
		return nil, err
	}
	return sigToDER(sig), nil
}

// signPlain produces an ordinary ECDSA signature with a fresh random
// nonce, via the same scalar arithmetic EncryptSign uses with the adaptor
// point fixed to the generator G (RHat collapses to R, so the DLEQ proof
// is a no-op and elided entirely for the plain-signature path).
func signPlain(rand io.Reader, signer keypair.KeyPair, msgHash [32]byte) (DecryptedSignature, error) {
	k, err := keypair.RandomScalar(rand)
	if err != nil {
		return DecryptedSignature{}, err
	}

	r := keypair.ScalarBaseMult(k)
	h, _ := keypair.ScalarFromDigest(msgHash[:])
	rScalar := r.XScalar()
	s := k.Invert().Mul(h.Add(rScalar.Mul(signer.Secret)))

	return DecryptedSignature{R: rScalar, S: s}, nil
}

// EncryptRedeem produces the adaptor-encrypted signature over the redeem
// transaction's sole input, encrypted under the shared adaptor point y.
// Only the party that later learns y's discrete log can turn this into a
// broadcastable redeem transaction.
func EncryptRedeem(
	rand io.Reader,
	signer keypair.KeyPair,
	y keypair.Point,
	redeemTx *wire.MsgTx,
	redeemScript []byte,
	fundValue int64,
) (EncryptedSignature, error) {

	hash, err := SigHash(redeemTx, redeemScript, fundValue)
	if err != nil {
		return EncryptedSignature{}, err
	}

	var h [32]byte
	copy(h[:], hash)

	return EncryptSign(rand, signer, y, h)
}

// VerifyEncryptedRedeem checks a counterparty's EncryptRedeem output
// against the redeem transaction both parties independently computed.
func VerifyEncryptedRedeem(
	es EncryptedSignature,
	pub keypair.Point,
	y keypair.Point,
	redeemTx *wire.MsgTx,
	redeemScript []byte,
	fundValue int64,
) error {
	hash, err := SigHash(redeemTx, redeemScript, fundValue)
	if err != nil {
		return swaperr.Wrap(err, "computing redeem sighash")
	}

	var h [32]byte
	copy(h[:], hash)

	return VerifyEncrypted(es, pub, y, h)
}

// sigToDER lowers a DecryptedSignature to the DER encoding the Bitcoin
// witness stack expects, appended with the SIGHASH_ALL byte.
func sigToDER(sig DecryptedSignature) Signature {
	r := sig.R.Secp256k1()
	s := sig.S.Secp256k1()
	der := ecdsa.NewSignature(&r, &s).Serialize()
	return append(der, byte(1)) // txscript.SigHashAll
}
