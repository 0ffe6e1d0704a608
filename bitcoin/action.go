package bitcoin

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// Broadcaster is a trusted source for publishing transactions onto the
// Bitcoin network and for being notified once a targeted outpoint is
// spent. The interface is intentionally minimal so it can be backed by
// btcd's RPC client, Bitcoin Core's RPC/ZMQ interface, an Electrum
// server, or a neutrino light client.
//
// Adapted from chainntfs/chainntfs.go's ChainNotifier: this module only
// ever needs to publish its own fund/refund/redeem transactions and wait
// for the counterparty's redeem to appear, so RegisterConfirmationsNtfn
// and RegisterBlockEpochNtfn are dropped in favor of the single
// RegisterSpendNtfn primitive plus Broadcast.
type Broadcaster interface {
	// Broadcast submits tx to the network.
	Broadcast(tx *wire.MsgTx) error

	// RegisterSpendNtfn registers an intent to be notified once outpoint
	// is spent within a confirmed transaction. The returned SpendEvent
	// fires once, delivering the spending transaction.
	RegisterSpendNtfn(outpoint *wire.OutPoint) (*SpendEvent, error)
}

// SpendDetail carries the spending transaction delivered by a SpendEvent.
type SpendDetail struct {
	SpenderTxHash     chainhash.Hash
	SpendingTx        *wire.MsgTx
	SpenderInputIndex uint32
}

// SpendEvent encapsulates a one-shot spentness notification.
type SpendEvent struct {
	Spend chan *SpendDetail // MUST be buffered.
}

// FundAction is the fund transaction as assembled by FunderState1.Fund.
// Its wallet inputs are unsigned; the external wallet signs them (see
// ExportPSBT) before it can be published.
type FundAction struct {
	Tx           *wire.MsgTx
	RedeemScript []byte
}

// Broadcast publishes the fund transaction via b.
func (a FundAction) Broadcast(b Broadcaster) error {
	return b.Broadcast(a.Tx)
}

// FundOutpoint returns the outpoint of a's 2-of-2 fund output, for use by
// RefundAction and RedeemAction.
func (a FundAction) FundOutpoint() wire.OutPoint {
	found, index := findScriptOutputIndex(a.Tx, a.fundPkScript())
	if !found {
		panic("bitcoin: fund transaction missing its own fund output")
	}
	return wire.OutPoint{Hash: a.Tx.TxHash(), Index: index}
}

func (a FundAction) fundPkScript() []byte {
	script, err := witnessScriptHash(a.RedeemScript)
	if err != nil {
		panic(err)
	}
	return script
}

// RefundAction is the fully-signed refund transaction, broadcastable only
// once its nLockTime has elapsed.
type RefundAction struct {
	Tx *wire.MsgTx
}

// Broadcast publishes the refund transaction via b.
func (a RefundAction) Broadcast(b Broadcaster) error {
	return b.Broadcast(a.Tx)
}

// RedeemAction is the fully-signed redeem transaction.
type RedeemAction struct {
	Tx *wire.MsgTx
}

// Broadcast publishes the redeem transaction via b.
func (a RedeemAction) Broadcast(b Broadcaster) error {
	return b.Broadcast(a.Tx)
}
