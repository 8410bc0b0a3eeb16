package wallet_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/sapphire-relay/internal/wallet"
	"github/chapool/sapphire-relay/internal/wallet/keystore"
	"github/chapool/sapphire-relay/internal/wallet/seed"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func passwords(values ...string) wallet.PasswordReader {
	return func(string) (string, error) {
		v := values[0]
		values = values[1:]
		return v, nil
	}
}

func newKeystore(t *testing.T) keystore.Service {
	t.Helper()

	svc, err := keystore.NewService(filepath.Join(t.TempDir(), "keystore.json"), keystore.LightScryptParams())
	require.NoError(t, err)
	return svc
}

func TestInitializeKeystoreCreateThenUnlock(t *testing.T) {
	ctx := context.Background()
	ks := newKeystore(t)

	first := seed.NewManager()
	require.NoError(t, first.Initialize(testMnemonic))
	require.NoError(t, wallet.InitializeKeystore(ctx, first, ks, passwords("password1", "password1")))

	stored, err := ks.Load(ctx)
	require.NoError(t, err)
	expected, err := wallet.VerificationAddress(first)
	require.NoError(t, err)
	assert.Equal(t, expected, stored.Address)

	second := seed.NewManager()
	require.NoError(t, wallet.InitializeKeystore(ctx, second, ks, passwords("password1")))
	assert.Equal(t, testMnemonic, second.Mnemonic())
	assert.Equal(t, first.GetSeed(), second.GetSeed())
}

func TestInitializeKeystoreGeneratesMnemonic(t *testing.T) {
	ctx := context.Background()
	ks := newKeystore(t)

	manager := seed.NewManager()
	require.NoError(t, wallet.InitializeKeystore(ctx, manager, ks, passwords("password1", "password1")))
	assert.True(t, manager.IsInitialized())
	assert.Len(t, strings.Fields(manager.Mnemonic()), 24)
}

func TestInitializeKeystorePasswordRules(t *testing.T) {
	ctx := context.Background()

	manager := seed.NewManager()
	require.NoError(t, manager.Initialize(testMnemonic))

	err := wallet.InitializeKeystore(ctx, manager, newKeystore(t), passwords("short"))
	require.ErrorIs(t, err, wallet.ErrPasswordTooShort)

	err = wallet.InitializeKeystore(ctx, manager, newKeystore(t), passwords("password1", "password2"))
	require.ErrorIs(t, err, wallet.ErrPasswordMismatch)
}

func TestInitializeKeystoreWrongPassword(t *testing.T) {
	ctx := context.Background()
	ks := newKeystore(t)

	manager := seed.NewManager()
	require.NoError(t, manager.Initialize(testMnemonic))
	require.NoError(t, wallet.InitializeKeystore(ctx, manager, ks, passwords("password1", "password1")))

	err := wallet.InitializeKeystore(ctx, seed.NewManager(), ks, passwords("password2"))
	require.ErrorIs(t, err, keystore.ErrWrongPassword)
}

func TestVerifyAddress(t *testing.T) {
	manager := seed.NewManager()

	_, err := wallet.VerificationAddress(manager)
	require.ErrorIs(t, err, wallet.ErrSeedUninitialized)

	require.NoError(t, manager.Initialize(testMnemonic))
	derived, err := wallet.VerificationAddress(manager)
	require.NoError(t, err)
	assert.Regexp(t, `^oasis1`, derived)

	ok, err := wallet.VerifyAddress(manager, derived)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = wallet.VerifyAddress(manager, "oasis1qrd3mnzhhgst26hsp96uf45yhq6zlax0cuzdgcfc")
	require.NoError(t, err)
	assert.False(t, ok)
}
