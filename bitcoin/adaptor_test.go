package bitcoin_test

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grinswap/atomicswap/bitcoin"
	"github.com/grinswap/atomicswap/keypair"
)

func TestEncryptDecryptRecoverRoundTrip(t *testing.T) {
	rand := keypair.NewCSPRNG()

	signer, err := keypair.Generate(rand)
	require.NoError(t, err)

	adaptor, err := keypair.Generate(rand)
	require.NoError(t, err)

	msgHash := sha256.Sum256([]byte("redeem tx sighash"))

	es, err := bitcoin.EncryptSign(rand, signer, adaptor.Public, msgHash)
	require.NoError(t, err)

	require.NoError(t, bitcoin.VerifyEncrypted(es, signer.Public, adaptor.Public, msgHash))

	sig, err := bitcoin.Decrypt(es, adaptor.Secret, signer.Public, msgHash)
	require.NoError(t, err)

	recovered := bitcoin.Recover(es, sig)
	require.True(t, recovered.Equal(adaptor.Secret))
}

func TestVerifyEncryptedRejectsWrongAdaptorPoint(t *testing.T) {
	rand := keypair.NewCSPRNG()

	signer, err := keypair.Generate(rand)
	require.NoError(t, err)
	adaptor, err := keypair.Generate(rand)
	require.NoError(t, err)
	wrongAdaptor, err := keypair.Generate(rand)
	require.NoError(t, err)

	msgHash := sha256.Sum256([]byte("redeem tx sighash"))

	es, err := bitcoin.EncryptSign(rand, signer, adaptor.Public, msgHash)
	require.NoError(t, err)

	err = bitcoin.VerifyEncrypted(es, signer.Public, wrongAdaptor.Public, msgHash)
	require.Error(t, err)
}

func TestDecryptRejectsWrongSecret(t *testing.T) {
	rand := keypair.NewCSPRNG()

	signer, err := keypair.Generate(rand)
	require.NoError(t, err)
	adaptor, err := keypair.Generate(rand)
	require.NoError(t, err)
	wrong, err := keypair.Generate(rand)
	require.NoError(t, err)

	msgHash := sha256.Sum256([]byte("redeem tx sighash"))

	es, err := bitcoin.EncryptSign(rand, signer, adaptor.Public, msgHash)
	require.NoError(t, err)

	_, err = bitcoin.Decrypt(es, wrong.Secret, signer.Public, msgHash)
	require.Error(t, err)
}
