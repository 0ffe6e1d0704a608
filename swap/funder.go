package swap

import (
	"io"

	"github.com/grinswap/atomicswap/bitcoin"
	"github.com/grinswap/atomicswap/commit"
	"github.com/grinswap/atomicswap/grin"
	"github.com/grinswap/atomicswap/keypair"
	"github.com/grinswap/atomicswap/setup"
	"github.com/grinswap/atomicswap/swaperr"
)

// Funder is the party that generates the shared adaptor secret y and
// owns the Grin output being escrowed: grin.Funder on the alpha leg,
// bitcoin.Redeemer on the beta leg. It pre-funds the Grin side and, once
// the redeemer's Bitcoin fund transaction confirms and y leaks on-chain
// from its own redeem, never needs to — it already holds y outright.
//
// The funder commits to its own real public keys and y in M1 before the
// redeemer reveals anything in M2 (see messages.go): the redeemer's key
// choice must never be influenced by the funder's real keys, since the
// Grin leg's 2-of-2 Schnorr excess aggregates raw public keys with no
// proof-of-possession, and a key chosen after seeing the counterparty's
// real key can rogue-key that aggregate.
type Funder0 struct {
	params  setup.Parameters
	y       keypair.KeyPair
	grin    grin.FunderState0
	btc     bitcoin.RedeemerState0
	opening commit.Opening
	guard   *guard
}

// NewFunder samples fresh leg keypairs and the shared adaptor secret y,
// and returns the first two messages of the ceremony: M0's swap
// parameters and M1's bare commitment to (alpha, beta, y). The funder's
// real public keys are not sent until M3.
func NewFunder(rand io.Reader, params setup.Parameters) (Funder0, Message0, Message1, error) {
	y, err := keypair.Generate(rand)
	if err != nil {
		return Funder0{}, Message0{}, Message1{}, err
	}

	grinState, err := grin.NewFunder(rand, grin.Offer{Params: params.Alpha})
	if err != nil {
		return Funder0{}, Message0{}, Message1{}, err
	}
	btcState, err := bitcoin.NewRedeemer(rand, bitcoin.Offer{Params: params.Beta})
	if err != nil {
		return Funder0{}, Message0{}, Message1{}, err
	}

	commitment, opening, err := commit.Commit(rand, grinState.PublicKey().Blind, btcState.PublicKey().X, y.Public)
	if err != nil {
		return Funder0{}, Message0{}, Message1{}, err
	}

	state := Funder0{
		params:  params,
		y:       y,
		grin:    grinState,
		btc:     btcState,
		opening: opening,
		guard:   newGuard(),
	}
	msg0 := Message0{Params: params}
	msg1 := Message1{Commitment: commitment}
	log.Debugf("funder: started swap, grin amount=%d btc asset=%d", params.Alpha.Amount, params.Beta.Asset)
	return state, msg0, msg1, nil
}

// Params returns the swap's immutable parameters.
func (f Funder0) Params() setup.Parameters { return f.params }

// ReceivePubkeys consumes the redeemer's M2 — its own public keys,
// chosen with no knowledge of the funder's real keys — and pre-signs
// the Bitcoin refund for the redeemer now that their Bitcoin public key
// is known, returning M3: the opening of M1's commitment, the funder's
// Grin nonce public keys, and the Bitcoin refund signature.
func (f Funder0) ReceivePubkeys(rand io.Reader, msg Message2) (Funder1, Message3, error) {
	if err := f.guard.consume(); err != nil {
		return Funder1{}, Message3{}, err
	}

	btc1, btcRefundSig, err := f.btc.SignRefund(rand, msg.BtcPub)
	if err != nil {
		return Funder1{}, Message3{}, err
	}

	state := Funder1{
		y:            f.y,
		grin:         f.grin,
		btc:          btc1,
		theirGrinPub: msg.GrinPub,
		guard:        newGuard(),
	}
	msg3 := Message3{
		Opening:         f.opening,
		GrinNonceRefund: f.grin.PublicKey().NonceRefund,
		GrinNonceRedeem: f.grin.PublicKey().NonceRedeem,
		BtcRefundSig:    btcRefundSig,
	}
	log.Debugf("funder: accepted redeemer pubkeys, opening commitment")
	return state, msg3, nil
}

// Funder1 holds the redeemer's real public keys, awaiting the Grin
// refund partial signature and Bitcoin encrypted redeem signature in M4.
type Funder1 struct {
	y            keypair.KeyPair
	grin         grin.FunderState0
	btc          bitcoin.RedeemerState1
	theirGrinPub grin.PKs
	guard        *guard
}

// ReceiveRefundSig consumes the redeemer's M4: verifies the Grin refund
// partial signature (only possible for the redeemer now that M3 revealed
// the funder's real Grin keys) and the Bitcoin encrypted redeem
// signature against the shared adaptor point.
func (f Funder1) ReceiveRefundSig(msg Message4) (Funder2, error) {
	if err := f.guard.consume(); err != nil {
		return Funder2{}, err
	}
	if !msg.OK {
		return Funder2{}, swaperr.ErrProtocolAborted
	}

	grin1, err := f.grin.ReceiveRefundSignature(f.theirGrinPub, msg.GrinRefundPartial)
	if err != nil {
		return Funder2{}, err
	}

	btc2, err := f.btc.ReceiveEncryptedRedeem(msg.BtcEncryptedSig, f.y.Public)
	if err != nil {
		return Funder2{}, err
	}

	log.Debugf("funder: accepted refund/encrypted-redeem signatures, ready to fund grin leg")
	return Funder2{y: f.y, grin: grin1, btc: btc2, guard: newGuard()}, nil
}

// Funder2 holds the shared Grin kernel excess and the verified Bitcoin
// encrypted redeem signature, awaiting the Grin fund kernel.
type Funder2 struct {
	y     keypair.KeyPair
	grin  grin.FunderState1
	btc   bitcoin.RedeemerState2
	guard *guard
}

// FundGrin signs the Grin fund kernel from the funder's own wallet-held
// excess (soloExcess/soloSecret model the out-of-scope wallet boundary)
// and returns it for broadcast.
func (f Funder2) FundGrin(rand io.Reader, soloExcess keypair.Point, soloSecret keypair.Scalar) (Funder3, grin.Kernel, error) {
	if err := f.guard.consume(); err != nil {
		return Funder3{}, grin.Kernel{}, err
	}

	grin2, kernel, err := f.grin.Fund(rand, soloExcess, soloSecret)
	if err != nil {
		return Funder3{}, grin.Kernel{}, err
	}

	log.Infof("funder: broadcasting grin fund kernel, excess=%x", kernel.Excess.SerializeCompressed())
	return Funder3{y: f.y, grin: grin2, btc: f.btc, guard: newGuard()}, kernel, nil
}

// Funder3 is reached once the Grin fund kernel has been broadcast, the
// redeemer's Bitcoin fund transaction is assumed broadcast, and the
// funder already holds a verified Bitcoin encrypted redeem signature.
type Funder3 struct {
	y     keypair.KeyPair
	grin  grin.FunderState2
	btc   bitcoin.RedeemerState2
	guard *guard
}

// RefundGrin assembles the Grin refund kernel once the Grin leg's expiry
// has elapsed.
func (f Funder3) RefundGrin() grin.Kernel {
	return f.grin.Refund()
}

// EncryptRedeem produces the Grin adaptor-encrypted redeem partial
// signature for M5, the ceremony's final message.
func (f Funder3) EncryptRedeem() (Funder4, Message5, error) {
	if err := f.guard.consume(); err != nil {
		return Funder4{}, Message5{}, err
	}

	grinEncSig := f.grin.EncryptRedeemSignature(f.y.Secret)

	msg5 := Message5{GrinEncryptedSig: grinEncSig}
	return Funder4{grin: f.grin, btc: f.btc, y: f.y, guard: newGuard()}, msg5, nil
}

// Funder4 is the terminal state: the funder already holds y outright and
// may redeem the Bitcoin leg whenever it chooses, revealing y on-chain in
// the process.
type Funder4 struct {
	grin  grin.FunderState2
	btc   bitcoin.RedeemerState2
	y     keypair.KeyPair
	guard *guard
}

// RedeemBitcoin assembles the fully-signed Bitcoin redeem transaction,
// the action that first exposes y publicly.
func (f Funder4) RedeemBitcoin(rand io.Reader) (bitcoin.RedeemAction, error) {
	if err := f.guard.consume(); err != nil {
		return bitcoin.RedeemAction{}, err
	}
	return f.btc.Redeem(rand, f.y.Secret)
}

// RefundGrin assembles the Grin refund kernel once the Grin leg's expiry
// has elapsed, the fallback available at this stage too.
func (f Funder4) RefundGrin() grin.Kernel {
	return f.grin.Refund()
}
