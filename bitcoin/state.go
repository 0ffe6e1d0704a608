package bitcoin

import (
	"io"

	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/wire"
	"github.com/davecgh/go-spew/spew"

	"github.com/grinswap/atomicswap/build"
	"github.com/grinswap/atomicswap/keypair"
	"github.com/grinswap/atomicswap/swaperr"
)

// Both parties independently derive the fund, refund and redeem
// transactions from Offer plus both parties' PKs: since the fund output
// is P2WSH, txid is unaffected by witness data, so FundOutpoint can be
// predicted before either party signs anything.

// FunderState0 holds the local Bitcoin leg key material before the
// counterparty's public key is known. The funder is whichever party's
// wallet inputs back the 2-of-2 fund output.
type FunderState0 struct {
	SKs   SKs
	Offer Offer
}

// NewFunder samples a fresh Bitcoin leg keypair for the funder role.
func NewFunder(rand io.Reader, offer Offer) (FunderState0, error) {
	sks, err := GenerateSKs(func() (keypair.KeyPair, error) { return keypair.Generate(rand) })
	if err != nil {
		return FunderState0{}, err
	}
	return FunderState0{SKs: sks, Offer: offer}, nil
}

// PublicKey returns the public half to send to the counterparty.
func (f FunderState0) PublicKey() PKs {
	return f.SKs.Public()
}

// ReceiveRefundSignature verifies the redeemer's pre-signed refund
// signature and derives the fund/refund/redeem transactions.
func (f FunderState0) ReceiveRefundSignature(theirPub PKs, theirRefundSig Signature) (FunderState1, error) {
	redeemScript, fundTx, refundTx, redeemTx, err := deriveTransactions(f.Offer, f.SKs.Public(), theirPub)
	if err != nil {
		return FunderState1{}, err
	}

	fundValue := int64(f.Offer.Params.FundOutputAmount())
	if err := verifyDER(theirRefundSig, theirPub.X, refundTx, redeemScript, fundValue); err != nil {
		return FunderState1{}, err
	}

	return FunderState1{
		SKs:            f.SKs,
		Offer:          f.Offer,
		TheirPub:       theirPub,
		RedeemScript:   redeemScript,
		FundTx:         fundTx,
		RefundTx:       refundTx,
		RedeemTx:       redeemTx,
		TheirRefundSig: theirRefundSig,
	}, nil
}

// FunderState1 holds the derived transactions plus the redeemer's refund
// signature, ready to broadcast the fund transaction.
type FunderState1 struct {
	SKs            SKs
	Offer          Offer
	TheirPub       PKs
	RedeemScript   []byte
	FundTx         *wire.MsgTx
	RefundTx       *wire.MsgTx
	RedeemTx       *wire.MsgTx
	TheirRefundSig Signature
}

// Fund packages the unsigned fund transaction for broadcast. Signing the
// wallet inputs themselves is delegated to the external wallet
// integration, consistent with this module's UTXO-selection boundary.
func (f FunderState1) Fund() (FunderState2, FundAction) {
	log.Infof("assembled fund transaction, txid=%s", f.FundTx.TxHash())
	log.Tracef("fund transaction: %v", build.NewLogClosure(func() string {
		return spew.Sdump(f.FundTx)
	}))
	return FunderState2{FunderState1: f}, FundAction{Tx: f.FundTx, RedeemScript: f.RedeemScript}
}

// FunderState2 is reached once the fund transaction has been broadcast.
type FunderState2 struct {
	FunderState1
}

// EncryptRedeemSignature produces the adaptor-encrypted redeem signature
// to hand to the redeemer, encrypted under the shared adaptor point y.
func (f FunderState2) EncryptRedeemSignature(rand io.Reader, y keypair.Point) (EncryptedSignature, error) {
	fundValue := int64(f.Offer.Params.FundOutputAmount())
	return EncryptRedeem(rand, f.SKs.X, y, f.RedeemTx, f.RedeemScript, fundValue)
}

// Refund assembles the fully-signed refund transaction, broadcastable
// once its nLockTime elapses.
func (f FunderState2) Refund(rand io.Reader) (RefundAction, error) {
	fundValue := int64(f.Offer.Params.FundOutputAmount())
	ourSig, err := SignRefund(rand, f.SKs.X, f.RefundTx, f.RedeemScript, fundValue)
	if err != nil {
		return RefundAction{}, err
	}

	tx, err := ApplyWitness(
		SpendRefund, f.RefundTx, f.RedeemScript,
		compressed(f.SKs.Public().X), ourSig,
		compressed(f.TheirPub.X), f.TheirRefundSig,
	)
	if err != nil {
		return RefundAction{}, err
	}
	return RefundAction{Tx: tx}, nil
}

// RedeemerState0 holds the local Bitcoin leg key material for the
// redeemer role: the party that does not fund the 2-of-2 output but
// ultimately claims it once the adaptor secret y is revealed.
type RedeemerState0 struct {
	SKs   SKs
	Offer Offer
}

// NewRedeemer samples a fresh Bitcoin leg keypair for the redeemer role.
func NewRedeemer(rand io.Reader, offer Offer) (RedeemerState0, error) {
	sks, err := GenerateSKs(func() (keypair.KeyPair, error) { return keypair.Generate(rand) })
	if err != nil {
		return RedeemerState0{}, err
	}
	return RedeemerState0{SKs: sks, Offer: offer}, nil
}

// PublicKey returns the public half to send to the counterparty.
func (r RedeemerState0) PublicKey() PKs {
	return r.SKs.Public()
}

// SignRefund derives the shared transactions and pre-signs the refund
// transaction for the funder, guaranteeing the funder can always recover
// their coins after expiry regardless of how the protocol proceeds.
func (r RedeemerState0) SignRefund(rand io.Reader, theirPub PKs) (RedeemerState1, Signature, error) {
	redeemScript, fundTx, refundTx, redeemTx, err := deriveTransactions(r.Offer, theirPub, r.SKs.Public())
	if err != nil {
		return RedeemerState1{}, nil, err
	}

	fundValue := int64(r.Offer.Params.FundOutputAmount())
	ourSig, err := SignRefund(rand, r.SKs.X, refundTx, redeemScript, fundValue)
	if err != nil {
		return RedeemerState1{}, nil, err
	}

	return RedeemerState1{
		SKs:          r.SKs,
		Offer:        r.Offer,
		TheirPub:     theirPub,
		RedeemScript: redeemScript,
		FundTx:       fundTx,
		RefundTx:     refundTx,
		RedeemTx:     redeemTx,
	}, ourSig, nil
}

// RedeemerState1 holds the derived transactions, awaiting the funder's
// encrypted redeem signature.
type RedeemerState1 struct {
	SKs          SKs
	Offer        Offer
	TheirPub     PKs
	RedeemScript []byte
	FundTx       *wire.MsgTx
	RefundTx     *wire.MsgTx
	RedeemTx     *wire.MsgTx
}

// FundOutpoint returns the predicted fund output location, computable
// without the funder having broadcast anything yet.
func (r RedeemerState1) FundOutpoint() wire.OutPoint {
	script, err := witnessScriptHash(r.RedeemScript)
	if err != nil {
		panic(err)
	}
	found, index := findScriptOutputIndex(r.FundTx, script)
	if !found {
		panic("bitcoin: derived fund transaction missing its own fund output")
	}
	return wire.OutPoint{Hash: r.FundTx.TxHash(), Index: index}
}

// ReceiveEncryptedRedeem verifies the funder's adaptor-encrypted redeem
// signature against the shared adaptor point y.
func (r RedeemerState1) ReceiveEncryptedRedeem(es EncryptedSignature, y keypair.Point) (RedeemerState2, error) {
	fundValue := int64(r.Offer.Params.FundOutputAmount())
	if err := VerifyEncryptedRedeem(es, r.TheirPub.X, y, r.RedeemTx, r.RedeemScript, fundValue); err != nil {
		return RedeemerState2{}, err
	}
	return RedeemerState2{RedeemerState1: r, EncSig: es}, nil
}

// RedeemerState2 holds the verified encrypted redeem signature, awaiting
// the adaptor secret y.
type RedeemerState2 struct {
	RedeemerState1
	EncSig EncryptedSignature
}

// Redeem decrypts the funder's encrypted signature with y, combines it
// with the redeemer's own signature, and assembles the fully-signed
// redeem transaction.
func (r RedeemerState2) Redeem(rand io.Reader, y keypair.Scalar) (RedeemAction, error) {
	fundValue := int64(r.Offer.Params.FundOutputAmount())

	var h [32]byte
	hash, err := SigHash(r.RedeemTx, r.RedeemScript, fundValue)
	if err != nil {
		return RedeemAction{}, err
	}
	copy(h[:], hash)

	theirSig, err := Decrypt(r.EncSig, y, r.TheirPub.X, h)
	if err != nil {
		return RedeemAction{}, err
	}

	ourSig, err := SignPlainInput(rand, r.SKs.X, r.RedeemTx, r.RedeemScript, fundValue)
	if err != nil {
		return RedeemAction{}, err
	}

	tx, err := ApplyWitness(
		SpendRedeem, r.RedeemTx, r.RedeemScript,
		compressed(r.TheirPub.X), sigToDER(theirSig),
		compressed(r.SKs.Public().X), ourSig,
	)
	if err != nil {
		return RedeemAction{}, err
	}
	log.Tracef("redeem transaction: %v", build.NewLogClosure(func() string {
		return spew.Sdump(tx)
	}))
	return RedeemAction{Tx: tx}, nil
}

// deriveTransactions builds the redeem script and the fund, refund and
// redeem transactions from the shared offer and both parties' public
// keys. Both parties call this independently and always reach the same
// result, since none of these transactions depend on witness data.
func deriveTransactions(offer Offer, funderPub, redeemerPub PKs) (
	redeemScript []byte, fundTx, refundTx, redeemTx *wire.MsgTx, err error,
) {
	fundTx, redeemScript, err = FundTransaction(offer, funderPub, redeemerPub)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	fundScript, err := witnessScriptHash(redeemScript)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	found, index := findScriptOutputIndex(fundTx, fundScript)
	if !found {
		return nil, nil, nil, nil, swaperr.ErrInvalidAmounts
	}
	fundOutpoint := wire.OutPoint{Hash: fundTx.TxHash(), Index: index}

	refundTx, err = RefundTransaction(offer.Params, fundOutpoint)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	redeemTx, err = RedeemTransaction(offer.Params, fundOutpoint)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	return redeemScript, fundTx, refundTx, redeemTx, nil
}

// verifyDER checks a plain DER signature (with trailing sighash-type
// byte) against pub over tx's sole input.
func verifyDER(sig Signature, pub keypair.Point, tx *wire.MsgTx, redeemScript []byte, value int64) error {
	if len(sig) == 0 {
		return swaperr.ErrBetaSigInvalid
	}

	hash, err := SigHash(tx, redeemScript, value)
	if err != nil {
		return swaperr.Wrap(err, "computing refund sighash")
	}

	parsed, err := ecdsa.ParseDERSignature(sig[:len(sig)-1])
	if err != nil {
		return swaperr.Wrap(err, "parsing refund signature")
	}

	if !parsed.Verify(hash, pub.Secp256k1()) {
		return swaperr.ErrBetaSigInvalid
	}
	return nil
}
