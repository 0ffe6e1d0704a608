package grin_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grinswap/atomicswap/grin"
	"github.com/grinswap/atomicswap/keypair"
	"github.com/grinswap/atomicswap/setup"
)

func testOffer() grin.Offer {
	return grin.Offer{Params: setup.GrinParams{Amount: 100_000, Fee: 1_000, ExpiryHeight: 50_000}}
}

// TestFunderRedeemerHappyPath mirrors scenario 1's Grin leg: the
// redeemer pre-signs refund, the funder funds and hands over an
// encrypted redeem partial signature, and once y leaks the redeemer
// assembles a valid redeem kernel.
func TestFunderRedeemerHappyPath(t *testing.T) {
	rand := keypair.NewCSPRNG()
	offer := testOffer()

	funder, err := grin.NewFunder(rand, offer)
	require.NoError(t, err)
	redeemer, err := grin.NewRedeemer(rand, offer)
	require.NoError(t, err)

	y, err := keypair.Generate(rand)
	require.NoError(t, err)

	redeemer1, refundPartial := redeemer.SignRefund(funder.PublicKey())

	funder1, err := funder.ReceiveRefundSignature(redeemer.PublicKey(), refundPartial)
	require.NoError(t, err)

	// Simplified stand-in for the funder's own wallet-held excess; see
	// FunderState1.Fund's doc on the out-of-scope boundary for
	// input/output assembly.
	soloKP, err := keypair.Generate(rand)
	require.NoError(t, err)

	funder2, fundKernel, err := funder1.Fund(rand, soloKP.Public, soloKP.Secret)
	require.NoError(t, err)
	require.NoError(t, grin.VerifyKernel(fundKernel.Signature, fundKernel.Excess, grin.KernelMessage(offer.Params.Fee, 0)))

	encSig := funder2.EncryptRedeemSignature(y.Secret)

	redeemer2, err := redeemer1.ReceiveEncryptedRedeem(encSig, y.Public)
	require.NoError(t, err)

	redeemKernel := redeemer2.Redeem(y.Secret)
	msg := grin.KernelMessage(offer.Params.Fee, 0)
	require.NoError(t, grin.VerifyKernel(redeemKernel.Signature, redeemKernel.Excess, msg))

	refundKernel := funder2.Refund()
	refundMsg := grin.KernelMessage(offer.Params.Fee, offer.Params.ExpiryHeight)
	require.NoError(t, grin.VerifyKernel(refundKernel.Signature, refundKernel.Excess, refundMsg))
}

// TestReceiveRefundSignatureRejectsTampered mirrors scenario 4 on the
// Grin leg: a tampered partial signature must be rejected.
func TestReceiveRefundSignatureRejectsTampered(t *testing.T) {
	rand := keypair.NewCSPRNG()
	offer := testOffer()

	funder, err := grin.NewFunder(rand, offer)
	require.NoError(t, err)
	redeemer, err := grin.NewRedeemer(rand, offer)
	require.NoError(t, err)

	_, refundPartial := redeemer.SignRefund(funder.PublicKey())

	other, err := keypair.RandomScalar(keypair.NewCSPRNG())
	require.NoError(t, err)
	refundPartial.S = refundPartial.S.Add(other)

	_, err = funder.ReceiveRefundSignature(redeemer.PublicKey(), refundPartial)
	require.Error(t, err)
}

// TestReceiveEncryptedRedeemRejectsWrongAdaptorPoint mirrors scenario 5.
func TestReceiveEncryptedRedeemRejectsWrongAdaptorPoint(t *testing.T) {
	rand := keypair.NewCSPRNG()
	offer := testOffer()

	funder, err := grin.NewFunder(rand, offer)
	require.NoError(t, err)
	redeemer, err := grin.NewRedeemer(rand, offer)
	require.NoError(t, err)

	y, err := keypair.Generate(rand)
	require.NoError(t, err)
	wrongY, err := keypair.Generate(rand)
	require.NoError(t, err)

	redeemer1, refundPartial := redeemer.SignRefund(funder.PublicKey())
	funder1, err := funder.ReceiveRefundSignature(redeemer.PublicKey(), refundPartial)
	require.NoError(t, err)

	soloKP, err := keypair.Generate(rand)
	require.NoError(t, err)
	funder2, _, err := funder1.Fund(rand, soloKP.Public, soloKP.Secret)
	require.NoError(t, err)

	encSig := funder2.EncryptRedeemSignature(y.Secret)

	_, err = redeemer1.ReceiveEncryptedRedeem(encSig, wrongY.Public)
	require.Error(t, err)
}
