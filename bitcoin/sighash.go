package bitcoin

import (
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// SigHash computes the BIP-143 witness program signature hash for tx's
// sole input spending an output carrying redeemScript and value satoshis.
//
// Grounded on original_source/src/bitcoin/event.rs's use of
// SighashComponents; the current btcsuite/btcd equivalent is
// txscript.CalcWitnessSigHash over a txscript.TxSigHashes cache.
func SigHash(tx *wire.MsgTx, redeemScript []byte, value int64) ([]byte, error) {
	prevOutFetcher := txscript.NewCannedPrevOutputFetcher(nil, value)
	hashCache := txscript.NewTxSigHashes(tx, prevOutFetcher)

	return txscript.CalcWitnessSigHash(
		redeemScript, hashCache, txscript.SigHashAll, tx, 0, value,
	)
}
