package bitcoin

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"

	"github.com/grinswap/atomicswap/keypair"
	"github.com/grinswap/atomicswap/setup"
)

// compressed returns the slice form of p's compressed encoding, the form
// genMultiSigScript/txscript expect.
func compressed(p keypair.Point) []byte {
	b := p.SerializeCompressed()
	return b[:]
}

// txOutScript derives the pkScript paying to addr.
func txOutScript(addr btcutil.Address) ([]byte, error) {
	return txscript.PayToAddrScript(addr)
}

// FundTransaction assembles the unsigned fund transaction: it spends
// offer.Params.Inputs and creates a single 2-of-2 P2WSH output locking
// FundOutputAmount() satoshis to ourPub and theirPub, plus a change output
// back to Params.ChangeAddr when Change() is non-zero.
//
// Grounded on original_source/src/bitcoin/event.rs's fund_transaction,
// using genFundingPkScript (lnwallet/script_utils.go) for the output
// script.
func FundTransaction(offer Offer, ourPub, theirPub PKs) (*wire.MsgTx, []byte, error) {
	params := offer.Params

	redeemScript, fundOut, err := genFundingPkScript(
		compressed(ourPub.X),
		compressed(theirPub.X),
		int64(params.FundOutputAmount()),
	)
	if err != nil {
		return nil, nil, err
	}

	tx := wire.NewMsgTx(wire.TxVersion)
	for _, in := range params.Inputs {
		outpoint := in.OutPoint
		tx.AddTxIn(wire.NewTxIn(&outpoint, nil, nil))
	}
	tx.AddTxOut(fundOut)

	if change := params.Change(); change > 0 {
		changeScript, err := txOutScript(params.ChangeAddr)
		if err != nil {
			return nil, nil, err
		}
		tx.AddTxOut(wire.NewTxOut(int64(change), changeScript))
	}

	return tx, redeemScript, nil
}

// RefundTransaction assembles the unsigned refund transaction spending the
// fund output back to Params.RefundAddr, valid only once nLockTime has
// elapsed.
//
// Grounded on original_source/src/bitcoin/event.rs's refund_transaction.
func RefundTransaction(params setup.BitcoinParams, fundOutpoint wire.OutPoint) (*wire.MsgTx, error) {
	return spendFundOutput(params, fundOutpoint, params.RefundAddr, params.ExpiryAbsTimestamp)
}

// RedeemTransaction assembles the unsigned redeem transaction spending the
// fund output to Params.RedeemAddr, with no locktime restriction.
//
// Grounded on original_source/src/bitcoin/event.rs's redeem_transaction.
func RedeemTransaction(params setup.BitcoinParams, fundOutpoint wire.OutPoint) (*wire.MsgTx, error) {
	return spendFundOutput(params, fundOutpoint, params.RedeemAddr, 0)
}

func spendFundOutput(
	params setup.BitcoinParams,
	fundOutpoint wire.OutPoint,
	dest btcutil.Address,
	lockTime uint32,
) (*wire.MsgTx, error) {

	tx := wire.NewMsgTx(wire.TxVersion)
	tx.LockTime = lockTime

	txIn := wire.NewTxIn(&fundOutpoint, nil, nil)
	txIn.Sequence = lockTimeToSequence()
	tx.AddTxIn(txIn)

	destScript, err := txOutScript(dest)
	if err != nil {
		return nil, err
	}
	tx.AddTxOut(wire.NewTxOut(int64(params.RedeemOutputAmount()), destScript))

	return tx, nil
}
