package swap

import (
	"io"

	"github.com/btcsuite/btcd/wire"

	"github.com/grinswap/atomicswap/bitcoin"
	"github.com/grinswap/atomicswap/commit"
	"github.com/grinswap/atomicswap/grin"
	"github.com/grinswap/atomicswap/keypair"
	"github.com/grinswap/atomicswap/setup"
)

// Redeemer is the party that owns the Bitcoin escrow and ultimately
// claims the Grin output: bitcoin.Funder on the beta leg, grin.Redeemer
// on the alpha leg. Unlike Funder, it never learns y directly — it
// recovers it by observing Funder's own Bitcoin redeem transaction
// on-chain.
//
// The redeemer only ever sees the funder's M1 commitment before choosing
// its own keys in M2 (see messages.go): it never learns the funder's
// real keys until M3 opens them, so its own key choice cannot be
// influenced by — and cannot be used to rogue-key against — the
// funder's real Grin blinding key.
type Redeemer0 struct {
	params setup.Parameters
	grin   grin.RedeemerState0
	btc    bitcoin.FunderState0
	guard  *guard
}

// NewRedeemer samples fresh leg keypairs for the redeemer role.
func NewRedeemer(rand io.Reader, params setup.Parameters) (Redeemer0, error) {
	grinState, err := grin.NewRedeemer(rand, grin.Offer{Params: params.Alpha})
	if err != nil {
		return Redeemer0{}, err
	}
	btcState, err := bitcoin.NewFunder(rand, bitcoin.Offer{Params: params.Beta})
	if err != nil {
		return Redeemer0{}, err
	}

	return Redeemer0{params: params, grin: grinState, btc: btcState, guard: newGuard()}, nil
}

// Params returns the swap's immutable parameters.
func (r Redeemer0) Params() setup.Parameters { return r.params }

// ReceiveCommitment consumes the funder's M1 — a bare commitment, with no
// real keys yet revealed — and returns M2: the redeemer's own public
// keys, chosen independently of anything the funder holds.
func (r Redeemer0) ReceiveCommitment(msg Message1) (Redeemer1, Message2, error) {
	if err := r.guard.consume(); err != nil {
		return Redeemer1{}, Message2{}, err
	}

	state := Redeemer1{
		params:     r.params,
		grin:       r.grin,
		btc:        r.btc,
		commitment: msg.Commitment,
		guard:      newGuard(),
	}
	out := Message2{
		GrinPub: r.grin.PublicKey(),
		BtcPub:  r.btc.PublicKey(),
	}
	log.Debugf("redeemer: accepted commitment, sent own pubkeys")
	return state, out, nil
}

// Redeemer1 awaits the funder's opening, Grin nonce public keys and
// Bitcoin refund signature in M3.
type Redeemer1 struct {
	params     setup.Parameters
	grin       grin.RedeemerState0
	btc        bitcoin.FunderState0
	commitment commit.Commitment
	guard      *guard
}

// ReceiveOpen consumes M3: opens the commitment from M1 to learn the
// funder's real keys, pre-signs the Grin refund now that those keys are
// known, accepts the Bitcoin refund signature, returns the Bitcoin fund
// transaction for the caller to broadcast, and produces the Bitcoin
// encrypted redeem signature for M4.
func (r Redeemer1) ReceiveOpen(rand io.Reader, msg Message3) (Redeemer2, bitcoin.FundAction, Message4, error) {
	if err := r.guard.consume(); err != nil {
		return Redeemer2{}, bitcoin.FundAction{}, Message4{}, err
	}

	alpha, beta, y, err := msg.Opening.Open(r.commitment)
	if err != nil {
		return Redeemer2{}, bitcoin.FundAction{}, Message4{}, err
	}

	funderGrinPub := grin.PKs{
		Blind:       alpha,
		NonceRefund: msg.GrinNonceRefund,
		NonceRedeem: msg.GrinNonceRedeem,
	}
	funderBtcPub := bitcoin.PKs{X: beta}

	grin1, grinRefundPartial := r.grin.SignRefund(funderGrinPub)

	btc1, err := r.btc.ReceiveRefundSignature(funderBtcPub, msg.BtcRefundSig)
	if err != nil {
		return Redeemer2{}, bitcoin.FundAction{}, Message4{}, err
	}
	btc2, fundAction := btc1.Fund()

	encSig, err := btc2.EncryptRedeemSignature(rand, y)
	if err != nil {
		return Redeemer2{}, bitcoin.FundAction{}, Message4{}, err
	}

	state := Redeemer2{
		grin:      grin1,
		btc:       btc2,
		y:         y,
		encSig:    encSig,
		funderBtc: funderBtcPub,
		guard:     newGuard(),
	}
	log.Infof("redeemer: opened commitment, broadcasting bitcoin fund transaction")
	out := Message4{GrinRefundPartial: grinRefundPartial, BtcEncryptedSig: encSig, OK: true}
	return state, fundAction, out, nil
}

// Redeemer2 holds the shared Grin kernel excess and the Bitcoin
// encrypted redeem signature already handed to the funder, awaiting the
// funder's Grin encrypted redeem partial in M5.
type Redeemer2 struct {
	grin      grin.RedeemerState1
	btc       bitcoin.FunderState2
	y         keypair.Point
	encSig    bitcoin.EncryptedSignature
	funderBtc bitcoin.PKs
	guard     *guard
}

// RefundBitcoin assembles the fully-signed Bitcoin refund transaction
// once the Bitcoin leg's expiry has elapsed, available as a fallback
// regardless of whether M5 ever arrives.
func (r Redeemer2) RefundBitcoin(rand io.Reader) (bitcoin.RefundAction, error) {
	return r.btc.Refund(rand)
}

// ReceiveEncryptedRedeem consumes the funder's M5, verifying the Grin
// adaptor-encrypted redeem partial signature against the shared adaptor
// point Y learned from M3's opening.
func (r Redeemer2) ReceiveEncryptedRedeem(msg Message5) (Redeemer3, error) {
	if err := r.guard.consume(); err != nil {
		return Redeemer3{}, err
	}

	grin2, err := r.grin.ReceiveEncryptedRedeem(msg.GrinEncryptedSig, r.y)
	if err != nil {
		return Redeemer3{}, err
	}

	log.Debugf("redeemer: grin encrypted redeem verified, ready once y leaks on-chain")
	return Redeemer3{grin: grin2, btc: r.btc, encSig: r.encSig, funderBtc: r.funderBtc, guard: newGuard()}, nil
}

// Redeemer3 is the terminal state before y leaks on-chain: the Grin leg
// is ready to redeem as soon as y is known, and the Bitcoin fund
// transaction is broadcast, awaiting either redeem or refund.
type Redeemer3 struct {
	grin      grin.RedeemerState2
	btc       bitcoin.FunderState2
	encSig    bitcoin.EncryptedSignature
	funderBtc bitcoin.PKs
	guard     *guard
}

// RecoverSecret extracts the adaptor secret y from the funder's observed
// Bitcoin redeem transaction, comparing its signature against the
// EncryptedSignature this party handed out in M4.
func (r Redeemer3) RecoverSecret(observedRedeemTx *wire.MsgTx) (keypair.Scalar, error) {
	// The witness signature that decrypts r.encSig is the one made under
	// this party's own key, so that key is the one looked up.
	der, err := bitcoin.CounterpartySignatureFromWitness(observedRedeemTx, r.funderBtc.X, r.btc.SKs.Public().X)
	if err != nil {
		return keypair.Scalar{}, err
	}
	decrypted, err := bitcoin.ParseSignatureDER(der)
	if err != nil {
		return keypair.Scalar{}, err
	}
	y := bitcoin.Recover(r.encSig, decrypted)
	log.Infof("redeemer: recovered adaptor secret from bitcoin redeem transaction")
	return y, nil
}

// RedeemGrin assembles the final Grin redeem kernel once y has been
// recovered from the Bitcoin leg.
func (r Redeemer3) RedeemGrin(y keypair.Scalar) grin.Kernel {
	return r.grin.Redeem(y)
}

// RefundBitcoin assembles the fully-signed Bitcoin refund transaction
// once the Bitcoin leg's expiry has elapsed and redeem never occurred.
func (r Redeemer3) RefundBitcoin(rand io.Reader) (bitcoin.RefundAction, error) {
	return r.btc.Refund(rand)
}
