package bitcoin

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/wire"

	"github.com/grinswap/atomicswap/keypair"
	"github.com/grinswap/atomicswap/swaperr"
)

// CounterpartySignatureFromWitness extracts theirPub's DER signature (with
// its trailing sighash-type byte) from an observed, fully-witnessed spend
// of the fund output, redoing spendMultiSig's lexicographic ordering to
// locate the right witness item. The party that handed out an
// EncryptedSignature passes its own key as theirPub: the signature under
// that key is the decrypted form of its EncryptedSignature, from which
// Recover extracts the adaptor secret y once the counterparty's redeem
// transaction confirms on-chain.
func CounterpartySignatureFromWitness(tx *wire.MsgTx, ourPub, theirPub keypair.Point) (Signature, error) {
	if len(tx.TxIn) == 0 || len(tx.TxIn[0].Witness) != 4 {
		return nil, fmt.Errorf("bitcoin: observed transaction is not a 2-of-2 witness spend")
	}

	witness := tx.TxIn[0].Witness
	our, their := compressed(ourPub), compressed(theirPub)

	if bytes.Compare(our, their) == -1 {
		return Signature(witness[1]), nil
	}
	return Signature(witness[2]), nil
}

// ParseSignatureDER decodes a strict-DER ECDSA signature, as produced by
// sigToDER with its trailing sighash-type byte still attached, back into
// raw (R, S) scalars. This is the reverse of sigToDER, needed only when
// recovering a counterparty's signature from an observed transaction
// rather than constructing one locally.
func ParseSignatureDER(sig Signature) (DecryptedSignature, error) {
	if len(sig) < 1 {
		return DecryptedSignature{}, swaperr.ErrBetaSigInvalid
	}
	der := sig[:len(sig)-1] // drop the sighash-type byte

	rRaw, sRaw, err := splitDERComponents(der)
	if err != nil {
		return DecryptedSignature{}, swaperr.Wrap(err, "parsing DER signature")
	}

	r, err := keypair.ScalarFromDigest(rRaw)
	if err != nil {
		return DecryptedSignature{}, err
	}
	s, err := keypair.ScalarFromDigest(sRaw)
	if err != nil {
		return DecryptedSignature{}, err
	}
	return DecryptedSignature{R: r, S: s}, nil
}

// splitDERComponents parses a minimal SEQUENCE{INTEGER r, INTEGER s} DER
// encoding, stripping any leading zero-padding byte ASN.1 requires on
// integers whose top bit is set. secp256k1 scalars are always short
// enough for single-byte ASN.1 length fields.
func splitDERComponents(der []byte) (r, s []byte, err error) {
	if len(der) < 8 || der[0] != 0x30 {
		return nil, nil, fmt.Errorf("not a DER sequence")
	}
	i := 2 // skip tag + sequence length

	readInt := func() ([]byte, error) {
		if i+2 > len(der) || der[i] != 0x02 {
			return nil, fmt.Errorf("expected DER integer")
		}
		i++
		n := int(der[i])
		i++
		if i+n > len(der) {
			return nil, fmt.Errorf("truncated DER integer")
		}
		v := der[i : i+n]
		i += n
		for len(v) > 1 && v[0] == 0x00 {
			v = v[1:]
		}
		return v, nil
	}

	r, err = readInt()
	if err != nil {
		return nil, nil, err
	}
	s, err = readInt()
	if err != nil {
		return nil, nil, err
	}
	return r, s, nil
}
