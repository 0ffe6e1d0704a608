package dleq_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grinswap/atomicswap/dleq"
	"github.com/grinswap/atomicswap/keypair"
	"github.com/grinswap/atomicswap/swaperr"
)

func TestProveAndVerify(t *testing.T) {
	rand := keypair.NewCSPRNG()

	x, err := keypair.RandomScalar(rand)
	require.NoError(t, err)

	g := keypair.G
	gx := g.Mul(x)

	hSecret, err := keypair.RandomScalar(rand)
	require.NoError(t, err)
	h := keypair.G.Mul(hSecret)
	hx := h.Mul(x)

	proof, err := dleq.Prove(rand, g, gx, h, hx, x)
	require.NoError(t, err)

	require.True(t, dleq.Verify(g, gx, h, hx, proof))
}

func TestVerifyRejectsMismatchedSecrets(t *testing.T) {
	rand := keypair.NewCSPRNG()

	x, err := keypair.RandomScalar(rand)
	require.NoError(t, err)
	xPrime, err := keypair.RandomScalar(rand)
	require.NoError(t, err)
	require.False(t, x.Equal(xPrime))

	g := keypair.G
	gx := g.Mul(x)

	hSecret, err := keypair.RandomScalar(rand)
	require.NoError(t, err)
	h := keypair.G.Mul(hSecret)

	// Hx is built from a different secret than Gx.
	hxPrime := h.Mul(xPrime)

	proof, err := dleq.Prove(rand, g, gx, h, hxPrime, x)
	require.NoError(t, err)

	require.False(t, dleq.Verify(g, gx, h, hxPrime, proof))
}

func TestVerifyErrWrapsSentinel(t *testing.T) {
	rand := keypair.NewCSPRNG()
	x, err := keypair.RandomScalar(rand)
	require.NoError(t, err)
	g := keypair.G
	gx := g.Mul(x)
	h := keypair.G
	hx := g.Mul(x)

	badProof := dleq.Proof{}
	err = dleq.VerifyErr(g, gx, h, hx, badProof)
	require.ErrorIs(t, err, swaperr.ErrDleqInvalid)
}
