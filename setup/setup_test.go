package setup_test

import (
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/wire"
	"github.com/lightningnetwork/lnd/clock"
	"github.com/stretchr/testify/require"

	"github.com/grinswap/atomicswap/setup"
)

func testAddr(t *testing.T) btcutil.Address {
	t.Helper()
	addr, err := btcutil.NewAddressPubKeyHash(make([]byte, 20), &chaincfg.RegressionNetParams)
	require.NoError(t, err)
	return addr
}

// TestHappyPathAmounts mirrors spec.md §8 scenario 1's Bitcoin leg.
func TestHappyPathAmounts(t *testing.T) {
	addr := testAddr(t)
	inputs := []setup.OutPointAmount{
		{OutPoint: wire.OutPoint{Index: 0}, Amount: 200_000},
	}

	params, err := setup.NewBitcoinParams(100_000, 1_000, 1_700_000_000, inputs, addr, addr, addr)
	require.NoError(t, err)
	require.Equal(t, uint64(98_000), params.Change())
	require.Equal(t, uint64(101_000), params.FundOutputAmount())
	require.Equal(t, uint64(100_000), params.RedeemOutputAmount())
}

// TestInsufficientInputs mirrors spec.md §8 scenario 6.
func TestInsufficientInputs(t *testing.T) {
	addr := testAddr(t)
	inputs := []setup.OutPointAmount{
		{OutPoint: wire.OutPoint{Index: 0}, Amount: 101_000}, // asset + 1 fee, missing 2nd fee
	}

	_, err := setup.NewBitcoinParams(100_000, 1_000, 1_700_000_000, inputs, addr, addr, addr)
	require.Error(t, err)
}

func TestValidateRejectsElapsedExpiry(t *testing.T) {
	addr := testAddr(t)
	inputs := []setup.OutPointAmount{{OutPoint: wire.OutPoint{Index: 0}, Amount: 102_000}}

	beta, err := setup.NewBitcoinParams(100_000, 1_000, 1, inputs, addr, addr, addr)
	require.NoError(t, err)

	params := setup.Parameters{
		Alpha: setup.GrinParams{Amount: 1, Fee: 1, ExpiryHeight: 10_000},
		Beta:  beta,
	}

	err = params.Validate(clock.NewDefaultClock(), 1)
	require.Error(t, err)
}
