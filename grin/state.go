package grin

import (
	"io"

	"github.com/grinswap/atomicswap/keypair"
)

// Both refund and redeem kernels spend the shared output whose blinding
// factor is Blind_F + Blind_R; each therefore needs a 2-of-2 aggregate
// signature. The fund kernel, by contrast, is signed solely by the
// funder from their own existing inputs' excess — the redeemer's
// contribution to it is purely the public half of their blinding key,
// needed to compute the shared output's commitment, never a signature.

// FunderState0 holds the local Grin leg key material before the
// counterparty's public key is known. The funder is the party that
// already owns the Grin output being escrowed, and the party that
// generates the shared adaptor secret y.
type FunderState0 struct {
	SKs   SKs
	Offer Offer
}

// NewFunder samples a fresh Grin leg keypair bundle for the funder role.
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
// partial signature, the Grin-side guarantee that the funder can always
// recover their escrowed output after expiry.
func (f FunderState0) ReceiveRefundSignature(theirPub PKs, theirRefundPartial PartialSignature) (FunderState1, error) {
	excess := f.SKs.Blind.Public.Add(theirPub.Blind)
	aggR := f.SKs.NonceRefund.Public.Add(theirPub.NonceRefund)
	msg := KernelMessage(f.Offer.Params.Fee, f.Offer.Params.ExpiryHeight)

	if err := VerifyPartial(theirRefundPartial, theirPub.NonceRefund, theirPub.Blind, aggR, excess, msg); err != nil {
		return FunderState1{}, err
	}

	return FunderState1{
		SKs:                f.SKs,
		Offer:              f.Offer,
		TheirPub:           theirPub,
		Excess:             excess,
		TheirRefundPartial: theirRefundPartial,
	}, nil
}

// FunderState1 holds the shared kernel excess and the redeemer's refund
// partial signature, ready to publish the fund kernel.
type FunderState1 struct {
	SKs                SKs
	Offer              Offer
	TheirPub           PKs
	Excess             keypair.Point
	TheirRefundPartial PartialSignature
}

// Fund signs the fund kernel solely with the funder's own key material
// and returns it for broadcast. Construction of the underlying Grin
// transaction (spending the funder's existing inputs) is delegated to
// the external wallet integration.
func (f FunderState1) Fund(rand io.Reader, soloExcess keypair.Point, soloSecret keypair.Scalar) (FunderState2, Kernel, error) {
	msg := KernelMessage(f.Offer.Params.Fee, 0)

	nonce, err := keypair.RandomScalar(rand)
	if err != nil {
		return FunderState2{}, Kernel{}, err
	}
	r := keypair.ScalarBaseMult(nonce)

	partial := SignPartial(nonce, soloSecret, r, soloExcess, msg)
	kernel := Kernel{
		Excess:    soloExcess,
		Signature: Signature{R: r, S: partial.S},
		Fee:       f.Offer.Params.Fee,
	}

	log.Infof("signed fund kernel, excess=%x fee=%d", soloExcess.SerializeCompressed(), f.Offer.Params.Fee)
	return FunderState2{FunderState1: f}, kernel, nil
}

// FunderState2 is reached once the fund kernel has been broadcast.
type FunderState2 struct {
	FunderState1
}

// aggRedeemNonce returns the public nonce commitment both parties use
// for the redeem kernel.
func (f FunderState1) aggRedeemNonce() keypair.Point {
	return f.TheirPub.NonceRedeem.Add(f.SKs.NonceRedeem.Public)
}

// aggRefundNonce returns the public nonce commitment both parties use
// for the refund kernel.
func (f FunderState1) aggRefundNonce() keypair.Point {
	return f.TheirPub.NonceRefund.Add(f.SKs.NonceRefund.Public)
}

// EncryptRedeemSignature produces the adaptor-encrypted redeem partial
// signature to hand to the redeemer, encrypted under the shared adaptor
// point Y = y*G. The funder, who generated y, is the only party able to
// produce this.
func (f FunderState2) EncryptRedeemSignature(y keypair.Scalar) EncryptedPartialSignature {
	aggR := f.aggRedeemNonce()
	msg := KernelMessage(f.Offer.Params.Fee, 0)
	return EncryptPartial(f.SKs.NonceRedeem.Secret, f.SKs.Blind.Secret, y, aggR, f.Excess, msg)
}

// Refund assembles and signs the fully-aggregated refund kernel signature.
func (f FunderState2) Refund() Kernel {
	aggR := f.aggRefundNonce()
	msg := KernelMessage(f.Offer.Params.Fee, f.Offer.Params.ExpiryHeight)
	ours := SignPartial(f.SKs.NonceRefund.Secret, f.SKs.Blind.Secret, aggR, f.Excess, msg)
	sig := AggregateSignatures(aggR, ours, f.TheirRefundPartial)
	return Kernel{Excess: f.Excess, Signature: sig, Fee: f.Offer.Params.Fee, LockHeight: f.Offer.Params.ExpiryHeight}
}

// RedeemerState0 holds the local Grin leg key material for the redeemer
// role: the party that does not own the escrowed Grin output but
// ultimately claims it once the adaptor secret y is revealed.
type RedeemerState0 struct {
	SKs   SKs
	Offer Offer
}

// NewRedeemer samples a fresh Grin leg keypair bundle for the redeemer role.
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

// SignRefund derives the shared excess and pre-signs the refund kernel's
// partial signature for the funder.
func (r RedeemerState0) SignRefund(theirPub PKs) (RedeemerState1, PartialSignature) {
	excess := theirPub.Blind.Add(r.SKs.Blind.Public)
	aggR := theirPub.NonceRefund.Add(r.SKs.NonceRefund.Public)
	msg := KernelMessage(r.Offer.Params.Fee, r.Offer.Params.ExpiryHeight)

	partial := SignPartial(r.SKs.NonceRefund.Secret, r.SKs.Blind.Secret, aggR, excess, msg)

	return RedeemerState1{
		SKs:      r.SKs,
		Offer:    r.Offer,
		TheirPub: theirPub,
		Excess:   excess,
	}, partial
}

// RedeemerState1 holds the shared kernel excess, awaiting the funder's
// encrypted redeem partial signature.
type RedeemerState1 struct {
	SKs      SKs
	Offer    Offer
	TheirPub PKs
	Excess   keypair.Point
}

// AggregateRedeemNonce returns the public nonce commitment both parties
// use for the redeem kernel, needed by both sides before the funder can
// encrypt their share.
func (r RedeemerState1) AggregateRedeemNonce() keypair.Point {
	return r.TheirPub.NonceRedeem.Add(r.SKs.NonceRedeem.Public)
}

// ReceiveEncryptedRedeem verifies the funder's adaptor-encrypted redeem
// partial signature against the shared adaptor point Y.
func (r RedeemerState1) ReceiveEncryptedRedeem(encSig EncryptedPartialSignature, y keypair.Point) (RedeemerState2, error) {
	aggR := r.AggregateRedeemNonce()
	msg := KernelMessage(r.Offer.Params.Fee, 0)

	if err := VerifyEncryptedPartial(encSig, r.TheirPub.NonceRedeem, r.TheirPub.Blind, y, aggR, r.Excess, msg); err != nil {
		return RedeemerState2{}, err
	}
	return RedeemerState2{RedeemerState1: r, EncSig: encSig}, nil
}

// RedeemerState2 holds the verified encrypted redeem partial signature,
// awaiting the adaptor secret y.
type RedeemerState2 struct {
	RedeemerState1
	EncSig EncryptedPartialSignature
}

// Redeem decrypts the funder's partial signature with y, combines it
// with the redeemer's own partial signature, and assembles the final
// redeem kernel.
func (r RedeemerState2) Redeem(y keypair.Scalar) Kernel {
	aggR := r.AggregateRedeemNonce()
	msg := KernelMessage(r.Offer.Params.Fee, 0)

	theirs := DecryptPartial(r.EncSig, y)
	ours := SignPartial(r.SKs.NonceRedeem.Secret, r.SKs.Blind.Secret, aggR, r.Excess, msg)

	sig := AggregateSignatures(aggR, ours, theirs)
	return Kernel{Excess: r.Excess, Signature: sig, Fee: r.Offer.Params.Fee}
}
