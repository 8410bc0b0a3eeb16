package signer_test

import (
	"crypto/ed25519"
	"encoding/hex"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/sapphire-relay/internal/wallet/signer"
)

const testContext = "oasis-core/consensus: tx for chain abc"

func TestPrepareMessageBindsContext(t *testing.T) {
	msg := []byte("payload")
	a := signer.PrepareMessage("ctx-a", msg)
	b := signer.PrepareMessage("ctx-b", msg)

	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, signer.PrepareMessage("ctx-a", msg))
}

func TestChainContexts(t *testing.T) {
	assert.Equal(t, "base for chain 00ff", signer.ChainContext("base", "00ff"))

	runtimeID, err := hex.DecodeString("000000000000000000000000000000000000000000000000f80306c9858e7279")
	require.NoError(t, err)

	rc := signer.RuntimeChainContext(runtimeID, "chain-a")
	assert.Len(t, rc, 64)
	assert.NotEqual(t, rc, signer.RuntimeChainContext(runtimeID, "chain-b"))
}

func TestEd25519Signer(t *testing.T) {
	key := ed25519.NewKeyFromSeed(make([]byte, ed25519.SeedSize))
	s, err := signer.NewEd25519Signer(key)
	require.NoError(t, err)

	assert.Equal(t, signer.SchemeEd25519, s.Scheme())
	assert.Len(t, s.Public(), ed25519.PublicKeySize)

	sig, err := s.ContextSign(testContext, []byte("tx"))
	require.NoError(t, err)
	assert.True(t, signer.VerifyEd25519(s.Public(), testContext, []byte("tx"), sig))
	assert.False(t, signer.VerifyEd25519(s.Public(), testContext+"x", []byte("tx"), sig))

	_, err = signer.NewEd25519Signer(key[:10])
	require.Error(t, err)
}

func TestSecp256k1Signer(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	s, err := signer.NewSecp256k1Signer(crypto.FromECDSA(key))
	require.NoError(t, err)

	assert.Equal(t, signer.SchemeSecp256k1Eth, s.Scheme())
	assert.Equal(t, crypto.CompressPubkey(&key.PublicKey), s.Public())

	sig, err := s.ContextSign(testContext, []byte("tx"))
	require.NoError(t, err)
	assert.True(t, signer.VerifySecp256k1(s.Public(), testContext, []byte("tx"), sig))
	assert.False(t, signer.VerifySecp256k1(s.Public(), testContext, []byte("other"), sig))

	_, err = signer.NewSecp256k1Signer([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestPersonalSignRoundTrip(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	msg := []byte("hello sapphire")

	sig, err := signer.SignPersonal(key, msg)
	require.NoError(t, err)
	require.Len(t, sig, 65)
	assert.Contains(t, []byte{27, 28}, sig[64])

	addr, err := signer.RecoverPersonal(msg, sig)
	require.NoError(t, err)
	assert.Equal(t, crypto.PubkeyToAddress(key.PublicKey), addr)

	other, err := signer.RecoverPersonal([]byte("tampered"), sig)
	if err == nil {
		assert.NotEqual(t, crypto.PubkeyToAddress(key.PublicKey), other)
	}

	_, err = signer.RecoverPersonal(msg, sig[:64])
	require.ErrorIs(t, err, signer.ErrInvalidPersonalSignature)
}
