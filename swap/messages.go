// Package swap orchestrates the six-message ceremony that binds the
// Grin (alpha) and Bitcoin (beta) legs together under one shared adaptor
// secret y, using package commit for the initial binding commitment,
// package dleq inside the Bitcoin adaptor construction, and packages
// grin/bitcoin for each chain's own fund/refund/redeem signing.
//
// Message framing follows lnwire's Message/MsgType convention
// (originally lnwire/message.go, since folded entirely into this
// package's six message types — see DESIGN.md), encoded as small
// lnd/tlv streams rather than lnwire's large reflection-driven
// read/writeElement dispatch, since this protocol has a fixed, small
// message set.
package swap

import (
	"io"

	"github.com/lightningnetwork/lnd/tlv"

	"github.com/grinswap/atomicswap/bitcoin"
	"github.com/grinswap/atomicswap/commit"
	"github.com/grinswap/atomicswap/dleq"
	"github.com/grinswap/atomicswap/grin"
	"github.com/grinswap/atomicswap/keypair"
	"github.com/grinswap/atomicswap/setup"
)

// MsgType identifies one of the six ceremony messages on the wire.
type MsgType uint8

const (
	MsgTypeSetup     MsgType = 0
	MsgTypeCommit    MsgType = 1
	MsgTypePubkeys   MsgType = 2
	MsgTypeOpen      MsgType = 3
	MsgTypeRefundSig MsgType = 4
	MsgTypeRedeem    MsgType = 5
)

// Message is a single ceremony message.
type Message interface {
	MsgType() MsgType
	Encode(w io.Writer) error
	Decode(r io.Reader) error
}

const (
	tlvAlphaAmount tlv.Type = iota
	tlvAlphaFee
	tlvAlphaExpiry
	tlvBetaAsset
	tlvBetaFee
	tlvBetaExpiry
	tlvGrinBlind
	tlvGrinNonceRefund
	tlvGrinNonceRedeem
	tlvBtcX
	tlvCommitment
	tlvGrinRefundPartial
	tlvBtcRefundSig
	tlvOpenAlpha
	tlvOpenBeta
	tlvOpenY
	tlvOpenNonce
	tlvDleqS
	tlvDleqC
	tlvGrinEncSPrime
	tlvBtcEncR
	tlvBtcEncRHat
	tlvBtcEncSPrime
	tlvBtcEncDleqS
	tlvBtcEncDleqC
	tlvAckOK
)

// Message flow. The funder generates the shared adaptor secret y and
// commits to its own public keys and y before revealing anything, so
// that the redeemer's own key choice in M2 cannot be made with knowledge
// of the funder's real keys — the rogue-key defense a naive (non-MuSig2)
// 2-of-2 Schnorr aggregate excess depends on:
//
//	M0 funder->redeemer:   swap parameters
//	M1 funder->redeemer:   commitment to (alpha, beta, y) ONLY
//	M2 redeemer->funder:   redeemer's own public keys for both legs
//	M3 funder->redeemer:   opening (funder's real keys + y), Grin nonce
//	                       pubkeys, Bitcoin refund signature
//	M4 redeemer->funder:   Grin refund partial, Bitcoin encrypted redeem, ack
//	M5 funder->redeemer:   Grin encrypted redeem partial
//
// M3's Bitcoin refund signature is only possible once M2 has revealed the
// redeemer's real Bitcoin public key; M4's Grin refund partial is only
// possible once M3 has opened the funder's real Grin public key. M5's
// Grin encrypted redeem partial requires nothing from M4 but is sent last
// regardless, since the funder has no reason to hand it over before
// confirming (via M4's ack) that the redeemer intends to proceed.

// Message0 proposes the swap's immutable parameters. Sent Funder to
// Redeemer.
type Message0 struct {
	Params setup.Parameters
}

func (m Message0) MsgType() MsgType { return MsgTypeSetup }

func (m Message0) Encode(w io.Writer) error {
	alphaAmount, alphaFee, alphaExpiry := m.Params.Alpha.Amount, m.Params.Alpha.Fee, m.Params.Alpha.ExpiryHeight
	betaAsset, betaFee, betaExpiry := m.Params.Beta.Asset, m.Params.Beta.Fee, uint64(m.Params.Beta.ExpiryAbsTimestamp)

	stream, err := tlv.NewStream(
		tlv.MakePrimitiveRecord(tlvAlphaAmount, &alphaAmount),
		tlv.MakePrimitiveRecord(tlvAlphaFee, &alphaFee),
		tlv.MakePrimitiveRecord(tlvAlphaExpiry, &alphaExpiry),
		tlv.MakePrimitiveRecord(tlvBetaAsset, &betaAsset),
		tlv.MakePrimitiveRecord(tlvBetaFee, &betaFee),
		tlv.MakePrimitiveRecord(tlvBetaExpiry, &betaExpiry),
	)
	if err != nil {
		return err
	}
	return stream.Encode(w)
}

func (m *Message0) Decode(r io.Reader) error {
	var alphaAmount, alphaFee, alphaExpiry, betaAsset, betaFee, betaExpiry uint64

	stream, err := tlv.NewStream(
		tlv.MakePrimitiveRecord(tlvAlphaAmount, &alphaAmount),
		tlv.MakePrimitiveRecord(tlvAlphaFee, &alphaFee),
		tlv.MakePrimitiveRecord(tlvAlphaExpiry, &alphaExpiry),
		tlv.MakePrimitiveRecord(tlvBetaAsset, &betaAsset),
		tlv.MakePrimitiveRecord(tlvBetaFee, &betaFee),
		tlv.MakePrimitiveRecord(tlvBetaExpiry, &betaExpiry),
	)
	if err != nil {
		return err
	}
	if err := stream.Decode(r); err != nil {
		return err
	}

	m.Params.Alpha = setup.GrinParams{Amount: alphaAmount, Fee: alphaFee, ExpiryHeight: alphaExpiry}
	m.Params.Beta.Asset = betaAsset
	m.Params.Beta.Fee = betaFee
	m.Params.Beta.ExpiryAbsTimestamp = uint32(betaExpiry)
	return nil
}

// Message1 carries ONLY the funder's binding commitment to (alpha, beta,
// y) — none of the real public keys or points it commits to. Sent
// Funder to Redeemer, before the redeemer has chosen or revealed
// anything, so the redeemer's own key choice in M2 cannot be influenced
// by the funder's real keys.
type Message1 struct {
	Commitment commit.Commitment
}

func (m Message1) MsgType() MsgType { return MsgTypeCommit }

func (m Message1) Encode(w io.Writer) error {
	c := [32]byte(m.Commitment)

	stream, err := tlv.NewStream(
		tlv.MakePrimitiveRecord(tlvCommitment, &c),
	)
	if err != nil {
		return err
	}
	return stream.Encode(w)
}

func (m *Message1) Decode(r io.Reader) error {
	var c [32]byte

	stream, err := tlv.NewStream(
		tlv.MakePrimitiveRecord(tlvCommitment, &c),
	)
	if err != nil {
		return err
	}
	if err := stream.Decode(r); err != nil {
		return err
	}

	m.Commitment = commit.Commitment(c)
	return nil
}

// Message2 carries the redeemer's own public keys for both legs, chosen
// with no knowledge of the funder's real keys since only M1's opaque
// commitment has been seen so far. Sent Redeemer to Funder.
type Message2 struct {
	GrinPub grin.PKs
	BtcPub  bitcoin.PKs
}

func (m Message2) MsgType() MsgType { return MsgTypePubkeys }

func (m Message2) Encode(w io.Writer) error {
	blind := m.GrinPub.Blind.SerializeCompressed()
	nr := m.GrinPub.NonceRefund.SerializeCompressed()
	nd := m.GrinPub.NonceRedeem.SerializeCompressed()
	x := m.BtcPub.X.SerializeCompressed()

	stream, err := tlv.NewStream(
		tlv.MakePrimitiveRecord(tlvGrinBlind, &blind),
		tlv.MakePrimitiveRecord(tlvGrinNonceRefund, &nr),
		tlv.MakePrimitiveRecord(tlvGrinNonceRedeem, &nd),
		tlv.MakePrimitiveRecord(tlvBtcX, &x),
	)
	if err != nil {
		return err
	}
	return stream.Encode(w)
}

func (m *Message2) Decode(r io.Reader) error {
	var blind, nr, nd, x [33]byte

	stream, err := tlv.NewStream(
		tlv.MakePrimitiveRecord(tlvGrinBlind, &blind),
		tlv.MakePrimitiveRecord(tlvGrinNonceRefund, &nr),
		tlv.MakePrimitiveRecord(tlvGrinNonceRedeem, &nd),
		tlv.MakePrimitiveRecord(tlvBtcX, &x),
	)
	if err != nil {
		return err
	}
	if err := stream.Decode(r); err != nil {
		return err
	}

	var decodeErr error
	parsePoint := func(b [33]byte) keypair.Point {
		p, err := keypair.ParsePoint(b[:])
		if err != nil && decodeErr == nil {
			decodeErr = err
		}
		return p
	}

	m.GrinPub = grin.PKs{
		Blind:       parsePoint(blind),
		NonceRefund: parsePoint(nr),
		NonceRedeem: parsePoint(nd),
	}
	m.BtcPub = bitcoin.PKs{X: parsePoint(x)}
	return decodeErr
}

// Message3 opens the commitment from M1 — revealing the funder's real
// Grin blinding key, Bitcoin key and the adaptor point y — plus the
// funder's Grin nonce public keys (not covered by the commitment, but
// only safe to reveal now that the redeemer's own keys from M2 are
// fixed) and the funder's Bitcoin refund signature, now possible since
// M2 revealed the redeemer's real Bitcoin public key. Sent Funder to
// Redeemer.
type Message3 struct {
	Opening         commit.Opening
	GrinNonceRefund keypair.Point
	GrinNonceRedeem keypair.Point
	BtcRefundSig    bitcoin.Signature
}

func (m Message3) MsgType() MsgType { return MsgTypeOpen }

func (m Message3) Encode(w io.Writer) error {
	alpha := m.Opening.Alpha.SerializeCompressed()
	beta := m.Opening.Beta.SerializeCompressed()
	y := m.Opening.Y.SerializeCompressed()
	nonce := m.Opening.Nonce
	nr := m.GrinNonceRefund.SerializeCompressed()
	nd := m.GrinNonceRedeem.SerializeCompressed()
	btcSig := []byte(m.BtcRefundSig)

	stream, err := tlv.NewStream(
		tlv.MakePrimitiveRecord(tlvOpenAlpha, &alpha),
		tlv.MakePrimitiveRecord(tlvOpenBeta, &beta),
		tlv.MakePrimitiveRecord(tlvOpenY, &y),
		tlv.MakePrimitiveRecord(tlvOpenNonce, &nonce),
		tlv.MakePrimitiveRecord(tlvGrinNonceRefund, &nr),
		tlv.MakePrimitiveRecord(tlvGrinNonceRedeem, &nd),
		tlv.MakePrimitiveRecord(tlvBtcRefundSig, &btcSig),
	)
	if err != nil {
		return err
	}
	return stream.Encode(w)
}

func (m *Message3) Decode(r io.Reader) error {
	var alpha, beta, y, nr, nd [33]byte
	var nonce [32]byte
	var btcSig []byte

	stream, err := tlv.NewStream(
		tlv.MakePrimitiveRecord(tlvOpenAlpha, &alpha),
		tlv.MakePrimitiveRecord(tlvOpenBeta, &beta),
		tlv.MakePrimitiveRecord(tlvOpenY, &y),
		tlv.MakePrimitiveRecord(tlvOpenNonce, &nonce),
		tlv.MakePrimitiveRecord(tlvGrinNonceRefund, &nr),
		tlv.MakePrimitiveRecord(tlvGrinNonceRedeem, &nd),
		tlv.MakePrimitiveRecord(tlvBtcRefundSig, &btcSig),
	)
	if err != nil {
		return err
	}
	if err := stream.Decode(r); err != nil {
		return err
	}

	var decodeErr error
	parsePoint := func(b [33]byte) keypair.Point {
		p, err := keypair.ParsePoint(b[:])
		if err != nil && decodeErr == nil {
			decodeErr = err
		}
		return p
	}

	m.Opening = commit.Opening{
		Alpha: parsePoint(alpha),
		Beta:  parsePoint(beta),
		Y:     parsePoint(y),
		Nonce: nonce,
	}
	m.GrinNonceRefund = parsePoint(nr)
	m.GrinNonceRedeem = parsePoint(nd)
	m.BtcRefundSig = bitcoin.Signature(btcSig)
	return decodeErr
}

// Message4 carries the redeemer's Grin refund partial signature —
// producible only once M3 revealed the funder's real Grin keys — plus
// the redeemer's Bitcoin encrypted redeem signature and a final
// acknowledgement. Sent Redeemer to Funder.
type Message4 struct {
	GrinRefundPartial grin.PartialSignature
	BtcEncryptedSig   bitcoin.EncryptedSignature
	OK                bool
}

func (m Message4) MsgType() MsgType { return MsgTypeRefundSig }

func (m Message4) Encode(w io.Writer) error {
	partial := m.GrinRefundPartial.S.Bytes()
	btcR := m.BtcEncryptedSig.R.SerializeCompressed()
	btcRHat := m.BtcEncryptedSig.RHat.SerializeCompressed()
	btcSPrime := m.BtcEncryptedSig.SPrime.Bytes()
	dleqS := m.BtcEncryptedSig.Proof.S.Bytes()
	dleqC := m.BtcEncryptedSig.Proof.C.Bytes()
	var ok uint8
	if m.OK {
		ok = 1
	}

	stream, err := tlv.NewStream(
		tlv.MakePrimitiveRecord(tlvGrinRefundPartial, &partial),
		tlv.MakePrimitiveRecord(tlvBtcEncR, &btcR),
		tlv.MakePrimitiveRecord(tlvBtcEncRHat, &btcRHat),
		tlv.MakePrimitiveRecord(tlvBtcEncSPrime, &btcSPrime),
		tlv.MakePrimitiveRecord(tlvBtcEncDleqS, &dleqS),
		tlv.MakePrimitiveRecord(tlvBtcEncDleqC, &dleqC),
		tlv.MakePrimitiveRecord(tlvAckOK, &ok),
	)
	if err != nil {
		return err
	}
	return stream.Encode(w)
}

func (m *Message4) Decode(r io.Reader) error {
	var partial [32]byte
	var btcR, btcRHat [33]byte
	var btcSPrime, dleqS, dleqC [32]byte
	var ok uint8

	stream, err := tlv.NewStream(
		tlv.MakePrimitiveRecord(tlvGrinRefundPartial, &partial),
		tlv.MakePrimitiveRecord(tlvBtcEncR, &btcR),
		tlv.MakePrimitiveRecord(tlvBtcEncRHat, &btcRHat),
		tlv.MakePrimitiveRecord(tlvBtcEncSPrime, &btcSPrime),
		tlv.MakePrimitiveRecord(tlvBtcEncDleqS, &dleqS),
		tlv.MakePrimitiveRecord(tlvBtcEncDleqC, &dleqC),
		tlv.MakePrimitiveRecord(tlvAckOK, &ok),
	)
	if err != nil {
		return err
	}
	if err := stream.Decode(r); err != nil {
		return err
	}

	var decodeErr error
	parsePoint := func(b [33]byte) keypair.Point {
		p, err := keypair.ParsePoint(b[:])
		if err != nil && decodeErr == nil {
			decodeErr = err
		}
		return p
	}
	parseScalar := func(b [32]byte) keypair.Scalar {
		s, err := keypair.ParseScalar(b[:])
		if err != nil && decodeErr == nil {
			decodeErr = err
		}
		return s
	}

	m.GrinRefundPartial = grin.PartialSignature{S: parseScalar(partial)}
	m.BtcEncryptedSig = bitcoin.EncryptedSignature{
		R:      parsePoint(btcR),
		RHat:   parsePoint(btcRHat),
		SPrime: parseScalar(btcSPrime),
		Proof:  dleq.Proof{S: parseScalar(dleqS), C: parseScalar(dleqC)},
	}
	m.OK = ok == 1
	return decodeErr
}

// Message5 carries the Grin leg's adaptor-encrypted redeem partial
// signature. Sent Funder to Redeemer, the ceremony's final message.
type Message5 struct {
	GrinEncryptedSig grin.EncryptedPartialSignature
}

func (m Message5) MsgType() MsgType { return MsgTypeRedeem }

func (m Message5) Encode(w io.Writer) error {
	grinSPrime := m.GrinEncryptedSig.SPrime.Bytes()

	stream, err := tlv.NewStream(
		tlv.MakePrimitiveRecord(tlvGrinEncSPrime, &grinSPrime),
	)
	if err != nil {
		return err
	}
	return stream.Encode(w)
}

func (m *Message5) Decode(r io.Reader) error {
	var grinSPrime [32]byte

	stream, err := tlv.NewStream(
		tlv.MakePrimitiveRecord(tlvGrinEncSPrime, &grinSPrime),
	)
	if err != nil {
		return err
	}
	if err := stream.Decode(r); err != nil {
		return err
	}

	var decodeErr error
	parseScalar := func(b [32]byte) keypair.Scalar {
		s, err := keypair.ParseScalar(b[:])
		if err != nil && decodeErr == nil {
			decodeErr = err
		}
		return s
	}

	m.GrinEncryptedSig = grin.EncryptedPartialSignature{SPrime: parseScalar(grinSPrime)}
	return decodeErr
}
