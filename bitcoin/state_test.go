package bitcoin_test

import (
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"

	"github.com/grinswap/atomicswap/bitcoin"
	"github.com/grinswap/atomicswap/keypair"
	"github.com/grinswap/atomicswap/setup"
)

func testOffer(t *testing.T) bitcoin.Offer {
	t.Helper()
	addr, err := btcutil.NewAddressPubKeyHash(make([]byte, 20), &chaincfg.RegressionNetParams)
	require.NoError(t, err)

	params, err := setup.NewBitcoinParams(
		100_000, 1_000, 1_700_000_000,
		[]setup.OutPointAmount{{OutPoint: wire.OutPoint{Index: 0}, Amount: 200_000}},
		addr, addr, addr,
	)
	require.NoError(t, err)

	return bitcoin.Offer{Params: params}
}

// TestFunderRedeemerHappyPath mirrors the fund/redeem path of scenario 1:
// both parties derive identical transactions, the redeemer pre-signs
// refund, the funder funds and hands over an encrypted redeem signature,
// and once y leaks the redeemer assembles a valid redeem transaction.
func TestFunderRedeemerHappyPath(t *testing.T) {
	rand := keypair.NewCSPRNG()
	offer := testOffer(t)

	funder, err := bitcoin.NewFunder(rand, offer)
	require.NoError(t, err)
	redeemer, err := bitcoin.NewRedeemer(rand, offer)
	require.NoError(t, err)

	y, err := keypair.Generate(rand)
	require.NoError(t, err)

	redeemer1, refundSig, err := redeemer.SignRefund(rand, funder.PublicKey())
	require.NoError(t, err)

	funder1, err := funder.ReceiveRefundSignature(redeemer.PublicKey(), refundSig)
	require.NoError(t, err)

	funder2, fundAction := funder1.Fund()
	require.NotNil(t, fundAction.Tx)

	encSig, err := funder2.EncryptRedeemSignature(rand, y.Public)
	require.NoError(t, err)

	redeemer2, err := redeemer1.ReceiveEncryptedRedeem(encSig, y.Public)
	require.NoError(t, err)

	redeemAction, err := redeemer2.Redeem(rand, y.Secret)
	require.NoError(t, err)
	require.NotNil(t, redeemAction.Tx)
	require.Len(t, redeemAction.Tx.TxIn[0].Witness, 4)

	refundAction, err := funder2.Refund(rand)
	require.NoError(t, err)
	require.NotNil(t, refundAction.Tx)
}

// TestReceiveRefundSignatureRejectsTampered mirrors scenario 4: a
// tampered partial signature must be rejected before funding proceeds.
func TestReceiveRefundSignatureRejectsTampered(t *testing.T) {
	rand := keypair.NewCSPRNG()
	offer := testOffer(t)

	funder, err := bitcoin.NewFunder(rand, offer)
	require.NoError(t, err)
	redeemer, err := bitcoin.NewRedeemer(rand, offer)
	require.NoError(t, err)

	_, refundSig, err := redeemer.SignRefund(rand, funder.PublicKey())
	require.NoError(t, err)

	tampered := append([]byte(nil), refundSig...)
	tampered[10] ^= 0xff

	_, err = funder.ReceiveRefundSignature(redeemer.PublicKey(), tampered)
	require.Error(t, err)
}
