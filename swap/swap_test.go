package swap_test

import (
	"io"
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"

	"github.com/grinswap/atomicswap/grin"
	"github.com/grinswap/atomicswap/keypair"
	"github.com/grinswap/atomicswap/setup"
	"github.com/grinswap/atomicswap/swap"
)

func testParams(t *testing.T) setup.Parameters {
	t.Helper()
	addr, err := btcutil.NewAddressPubKeyHash(make([]byte, 20), &chaincfg.RegressionNetParams)
	require.NoError(t, err)

	btcParams, err := setup.NewBitcoinParams(
		100_000, 1_000, 1_700_000_000,
		[]setup.OutPointAmount{{OutPoint: wire.OutPoint{Index: 0}, Amount: 200_000}},
		addr, addr, addr,
	)
	require.NoError(t, err)

	return setup.Parameters{
		Alpha: setup.GrinParams{Amount: 100_000, Fee: 1_000, ExpiryHeight: 50_000},
		Beta:  btcParams,
	}
}

// driveToEncryptedRedeem runs the ceremony from M0 through M5, leaving the
// funder ready to redeem Bitcoin (Funder4) and the redeemer ready to
// recover y from that redeem (Redeemer3).
func driveToEncryptedRedeem(t *testing.T, rand io.Reader, params setup.Parameters) (
	swap.Funder4, swap.Redeemer3, grin.Kernel,
) {
	t.Helper()

	funder0, _, msg1, err := swap.NewFunder(rand, params)
	require.NoError(t, err)
	redeemer0, err := swap.NewRedeemer(rand, params)
	require.NoError(t, err)

	redeemer1, msg2, err := redeemer0.ReceiveCommitment(msg1)
	require.NoError(t, err)

	funder1, msg3, err := funder0.ReceivePubkeys(rand, msg2)
	require.NoError(t, err)

	redeemer2, fundAction, msg4, err := redeemer1.ReceiveOpen(rand, msg3)
	require.NoError(t, err)
	require.NotNil(t, fundAction.Tx)

	funder2, err := funder1.ReceiveRefundSig(msg4)
	require.NoError(t, err)

	soloKP, err := keypair.Generate(rand)
	require.NoError(t, err)
	funder3, fundKernel, err := funder2.FundGrin(rand, soloKP.Public, soloKP.Secret)
	require.NoError(t, err)
	require.NoError(t, grin.VerifyKernel(fundKernel.Signature, fundKernel.Excess, grin.KernelMessage(params.Alpha.Fee, 0)))

	funder4, msg5, err := funder3.EncryptRedeem()
	require.NoError(t, err)

	redeemer3, err := redeemer2.ReceiveEncryptedRedeem(msg5)
	require.NoError(t, err)

	return funder4, redeemer3, fundKernel
}

// TestFullSwapHappyPath exercises scenario 1 end to end: the complete
// six-message ceremony, both fund broadcasts, the funder's Bitcoin
// redeem, the redeemer recovering y from it, and the redeemer's Grin
// redeem.
func TestFullSwapHappyPath(t *testing.T) {
	rand := keypair.NewCSPRNG()
	params := testParams(t)

	funder4, redeemer3, _ := driveToEncryptedRedeem(t, rand, params)

	redeemAction, err := funder4.RedeemBitcoin(rand)
	require.NoError(t, err)
	require.NotNil(t, redeemAction.Tx)

	y, err := redeemer3.RecoverSecret(redeemAction.Tx)
	require.NoError(t, err)

	redeemKernel := redeemer3.RedeemGrin(y)
	require.NoError(t, grin.VerifyKernel(redeemKernel.Signature, redeemKernel.Excess, grin.KernelMessage(params.Alpha.Fee, 0)))
}

// TestReceiveOpenRejectsTamperedOpening mirrors scenario 3 at the
// ceremony level: an opening that does not hash back to the commitment
// sent in M1 must be rejected before any refund signature is issued.
func TestReceiveOpenRejectsTamperedOpening(t *testing.T) {
	rand := keypair.NewCSPRNG()
	params := testParams(t)

	funder0, _, msg1, err := swap.NewFunder(rand, params)
	require.NoError(t, err)
	redeemer0, err := swap.NewRedeemer(rand, params)
	require.NoError(t, err)

	redeemer1, msg2, err := redeemer0.ReceiveCommitment(msg1)
	require.NoError(t, err)

	_, msg3, err := funder0.ReceivePubkeys(rand, msg2)
	require.NoError(t, err)

	other, err := keypair.Generate(rand)
	require.NoError(t, err)
	msg3.Opening.Alpha = other.Public

	_, _, _, err = redeemer1.ReceiveOpen(rand, msg3)
	require.Error(t, err)
}

// TestStateReuseRejected checks the one-shot transition invariant:
// consuming a one-shot state twice must fail the second time.
func TestStateReuseRejected(t *testing.T) {
	rand := keypair.NewCSPRNG()
	params := testParams(t)

	funder0, _, msg1, err := swap.NewFunder(rand, params)
	require.NoError(t, err)
	redeemer0, err := swap.NewRedeemer(rand, params)
	require.NoError(t, err)

	_, msg2, err := redeemer0.ReceiveCommitment(msg1)
	require.NoError(t, err)

	_, _, err = funder0.ReceivePubkeys(rand, msg2)
	require.NoError(t, err)

	_, _, err = funder0.ReceivePubkeys(rand, msg2)
	require.Error(t, err)
}

// TestReceiveRefundSigRejectsAbort checks that an explicit abort
// acknowledgement in M4 surfaces as a protocol error rather than
// silently proceeding to fund the Grin leg.
func TestReceiveRefundSigRejectsAbort(t *testing.T) {
	rand := keypair.NewCSPRNG()
	params := testParams(t)

	funder0, _, msg1, err := swap.NewFunder(rand, params)
	require.NoError(t, err)
	redeemer0, err := swap.NewRedeemer(rand, params)
	require.NoError(t, err)

	redeemer1, msg2, err := redeemer0.ReceiveCommitment(msg1)
	require.NoError(t, err)
	funder1, msg3, err := funder0.ReceivePubkeys(rand, msg2)
	require.NoError(t, err)

	_, _, msg4, err := redeemer1.ReceiveOpen(rand, msg3)
	require.NoError(t, err)
	msg4.OK = false

	_, err = funder1.ReceiveRefundSig(msg4)
	require.Error(t, err)
}

// TestFullSwapMirroredRoles mirrors scenario 2: the protocol is symmetric
// per spec.md §1, so running the identical ceremony with a second,
// independently-keyed pair of parties (standing in for the funder/redeemer
// assignment being swapped between the same two physical counterparties)
// must complete exactly as scenario 1 does, including the Bitcoin refund
// fallback available to the redeemer at any point after M4.
func TestFullSwapMirroredRoles(t *testing.T) {
	rand := keypair.NewCSPRNG()
	params := testParams(t)

	funder4, redeemer3, _ := driveToEncryptedRedeem(t, rand, params)

	redeemAction, err := funder4.RedeemBitcoin(rand)
	require.NoError(t, err)

	y, err := redeemer3.RecoverSecret(redeemAction.Tx)
	require.NoError(t, err)

	redeemKernel := redeemer3.RedeemGrin(y)
	require.NoError(t, grin.VerifyKernel(redeemKernel.Signature, redeemKernel.Excess, grin.KernelMessage(params.Alpha.Fee, 0)))

	refundAction, err := redeemer3.RefundBitcoin(rand)
	require.NoError(t, err)
	require.NotNil(t, refundAction.Tx)
}
