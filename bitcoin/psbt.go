package bitcoin

import (
	"github.com/btcsuite/btcd/btcutil/psbt"
)

// ExportPSBT wraps a's unsigned fund transaction in a PSBT packet so an
// external wallet holding the spent inputs' signing keys can attach its
// own witnesses without this package ever touching wallet key material —
// the 2-of-2 escrow output itself needs no signature to create, only the
// funder's own wallet inputs do, and those are explicitly out of this
// module's scope. Optional: a funder that signs its inputs some other
// way never needs to call this.
func (a FundAction) ExportPSBT() (*psbt.Packet, error) {
	return psbt.NewFromUnsignedTx(a.Tx)
}
