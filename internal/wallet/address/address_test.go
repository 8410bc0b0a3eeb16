package address_test

import (
	"crypto/ed25519"
	"encoding/hex"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyler-smith/go-bip39"
	"github/chapool/sapphire-relay/internal/apperrors"
	"github/chapool/sapphire-relay/internal/wallet/address"
)

//nolint:dupword // well-known BIP-39 test vector
const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestDeriveSecp256k1KnownVector(t *testing.T) {
	seed := bip39.NewSeed(testMnemonic, "")

	key, err := address.DeriveSecp256k1(seed, address.EthereumPath)
	require.NoError(t, err)
	require.Len(t, key, 32)

	eth, err := address.EthAddressFromPrivateKey(key)
	require.NoError(t, err)
	assert.Equal(t, "0x9858EfFD232B4033E47d90003D41EC34EcaEda94", eth.Hex())
}

func TestDeriveEd25519SLIP10Vector(t *testing.T) {
	seed, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	require.NoError(t, err)

	master, err := address.DeriveEd25519(seed, "m")
	require.NoError(t, err)
	assert.Equal(t, "2b4be7f19ee27bbf30c667b642d5f4aa69fd169872f8fc3059c08ebae2eb19e7", hex.EncodeToString(master.Seed()))

	child, err := address.DeriveEd25519(seed, "m/0'")
	require.NoError(t, err)
	assert.Equal(t, "68e0fe46dfb67e368c75379acec591dad19df3cde26e63b93a8e704f1dade7a3", hex.EncodeToString(child.Seed()))
}

// ADR 0008 test mnemonic
const adr0008Mnemonic = "equip will roof matter pink blind book anxiety banner elbow sun young"

func TestDeriveEd25519OasisAccountVector(t *testing.T) {
	seed := bip39.NewSeed(adr0008Mnemonic, "")
	assert.Equal(t,
		"ed2f664e65b5ef0dd907ae15a2788cfc98e41970bc9fcb46f5900f6919862075e721f37212304a56505dab99b001cc8907ef093b7c5016a46b50c01cc3ec1cac",
		hex.EncodeToString(seed))

	key, err := address.DeriveEd25519(seed, address.OasisPath(0))
	require.NoError(t, err)

	assert.Equal(t, "4e9ca1a4c2ed90c90da93ea181557ef9f465f444c0b7de35daeb218f9390d985", hex.EncodeToString(key.Seed()))
	assert.Equal(t, "45601f761af17dba50243529e629732f1c58d08ffddaa8491238540475729d85", hex.EncodeToString(key.Public().(ed25519.PublicKey)))
	assert.Equal(t, "oasis1qqjkrr643qv7yzem6g4m8rrtceh42n46usfscpcf", address.FromEd25519(key.Public().(ed25519.PublicKey)).String())
}

func TestFromEthVector(t *testing.T) {
	a := address.FromEth(common.HexToAddress("0x60a6321eA71d37102Dbf923AAe2E08d005C4e403"))
	assert.Equal(t, "oasis1qpaqumrpewltmh9mr73hteycfzveus2rvvn8w5sp", a.String())
}

func TestDeriveEd25519RejectsNonHardened(t *testing.T) {
	_, err := address.DeriveEd25519([]byte("0123456789abcdef"), "m/44'/474'/0")
	require.Error(t, err)

	_, err = address.DeriveEd25519([]byte("0123456789abcdef"), "x/44'")
	require.Error(t, err)
}

func TestOasisPath(t *testing.T) {
	assert.Equal(t, "m/44'/474'/0'", address.OasisPath(0))
	assert.Equal(t, "m/44'/474'/7'", address.OasisPath(7))
}

func TestDifferentPathsDifferentKeys(t *testing.T) {
	seed := bip39.NewSeed(testMnemonic, "")

	k0, err := address.DeriveEd25519(seed, address.OasisPath(0))
	require.NoError(t, err)
	k1, err := address.DeriveEd25519(seed, address.OasisPath(1))
	require.NoError(t, err)

	assert.NotEqual(t, k0.Seed(), k1.Seed())
}

func TestParseRoundTrip(t *testing.T) {
	for _, s := range []string{
		"oasis1qrd3mnzhhgst26hsp96uf45yhq6zlax0cuzdgcfc",
		"oasis1qqczuf3x6glkgjuf0xgtcpjjw95r3crf7y2323xd",
	} {
		a, err := address.Parse(s)
		require.NoError(t, err)
		assert.Equal(t, s, a.String())

		raw, err := a.MarshalBinary()
		require.NoError(t, err)
		var back address.Address
		require.NoError(t, back.UnmarshalBinary(raw))
		assert.Equal(t, a, back)
	}
}

func TestParseRejects(t *testing.T) {
	for _, s := range []string{
		"",
		"oasis1qrd3mnzhhgst26hsp96uf45yhq6zlax0cuzdgcfd",
		"bc1qar0srrr7xfkvy5l643lydnw9re59gtzzwf5mdq",
	} {
		_, err := address.Parse(s)
		require.ErrorIs(t, err, address.ErrMalformedAddress, s)
	}
}

func TestToRuntimeAddress(t *testing.T) {
	eth := "0x9858EfFD232B4033E47d90003D41EC34EcaEda94"

	a, err := address.ToRuntimeAddress(eth)
	require.NoError(t, err)
	assert.Equal(t, address.FromEth(common.HexToAddress(eth)), a)
	assert.Equal(t, byte(0), a[0])

	lower, err := address.ToRuntimeAddress("0x9858effd232b4033e47d90003d41ec34ecaeda94")
	require.NoError(t, err)
	assert.Equal(t, a, lower, "mapping is case-insensitive")

	parsed, err := address.Parse(a.String())
	require.NoError(t, err)
	assert.Equal(t, a, parsed)
}

func TestToRuntimeAddressRejects(t *testing.T) {
	for _, s := range []string{
		"",
		"0x",
		"0x123",
		"9858EfFD232B4033E47d90003D41EC34EcaEda94",
		"0X9858EfFD232B4033E47d90003D41EC34EcaEda94",
		"0x9858EfFD232B4033E47d90003D41EC34EcaEda945",
		"0x9858EfFD232B4033E47d90003D41EC34EcaEdaZZ",
		" 0x9858EfFD232B4033E47d90003D41EC34EcaEda94",
		"oasis1qrd3mnzhhgst26hsp96uf45yhq6zlax0cuzdgcfc",
	} {
		_, err := address.ToRuntimeAddress(s)
		require.ErrorIs(t, err, address.ErrInvalidRuntimeAddress, s)
		assert.True(t, apperrors.IsConfig(err), s)
	}
}

func TestAddressContextsDiffer(t *testing.T) {
	data := common.HexToAddress("0x9858EfFD232B4033E47d90003D41EC34EcaEda94").Bytes()
	assert.NotEqual(t,
		address.NewAddress(address.StakingContext, data),
		address.NewAddress(address.Secp256k1EthContext, data),
	)
}
