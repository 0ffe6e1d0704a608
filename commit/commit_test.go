package commit_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grinswap/atomicswap/commit"
	"github.com/grinswap/atomicswap/keypair"
)

func randPoint(t *testing.T) keypair.Point {
	t.Helper()
	kp, err := keypair.Generate(keypair.NewCSPRNG())
	require.NoError(t, err)
	return kp.Public
}

func TestCommitOpenRoundTrip(t *testing.T) {
	alpha, beta, y := randPoint(t), randPoint(t), randPoint(t)

	c, opening, err := commit.Commit(keypair.NewCSPRNG(), alpha, beta, y)
	require.NoError(t, err)

	gotAlpha, gotBeta, gotY, err := opening.Open(c)
	require.NoError(t, err)
	require.True(t, alpha.Equal(gotAlpha))
	require.True(t, beta.Equal(gotBeta))
	require.True(t, y.Equal(gotY))
}

func TestOpenRejectsTamperedOpening(t *testing.T) {
	alpha, beta, y := randPoint(t), randPoint(t), randPoint(t)

	c, opening, err := commit.Commit(keypair.NewCSPRNG(), alpha, beta, y)
	require.NoError(t, err)

	// Tamper with the opening's Y point (simulates spec.md §8 scenario 3:
	// one byte of opening.Y flipped in transit).
	tampered := opening
	tampered.Y = randPoint(t)

	_, _, _, err = tampered.Open(c)
	require.Error(t, err)
}

func TestDistinctInputsProduceDistinctCommitments(t *testing.T) {
	alpha, beta, y := randPoint(t), randPoint(t), randPoint(t)

	c1, _, err := commit.Commit(keypair.NewCSPRNG(), alpha, beta, y)
	require.NoError(t, err)

	c2, _, err := commit.Commit(keypair.NewCSPRNG(), alpha, beta, y)
	require.NoError(t, err)

	// Same points, independent nonces: commitments must differ with
	// overwhelming probability (spec.md §8 invariant 2).
	require.NotEqual(t, c1, c2)
}
