package address

import (
	"crypto/ed25519"
	"crypto/sha512"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

const (
	// Size is the length of an Oasis address: version byte plus truncated hash.
	Size = 21
	// HRP is the bech32 human readable part of Oasis addresses.
	HRP = "oasis"
)

// Context binds an address to the kind of data it was derived from.
type Context struct {
	Identifier string
	Version    uint8
}

var (
	// StakingContext derives consensus addresses from ed25519 public keys.
	StakingContext = Context{Identifier: "oasis-core/address: staking", Version: 0}
	// Secp256k1EthContext derives runtime addresses from Ethereum addresses.
	Secp256k1EthContext = Context{Identifier: "oasis-runtime-sdk/address: secp256k1eth", Version: 0}
)

var ErrMalformedAddress = errors.New("malformed oasis address")

// Address is an Oasis account address, valid on both the consensus layer and runtimes.
type Address [Size]byte

// NewAddress derives an address from data within ctx.
func NewAddress(ctx Context, data []byte) Address {
	h := sha512.New512_256()
	h.Write([]byte(ctx.Identifier))
	h.Write([]byte{ctx.Version})
	h.Write(data)
	digest := h.Sum(nil)

	var a Address
	a[0] = ctx.Version
	copy(a[1:], digest[:Size-1])

	return a
}

// FromEd25519 returns the consensus address of an ed25519 public key.
func FromEd25519(pub ed25519.PublicKey) Address {
	return NewAddress(StakingContext, pub)
}

// FromEth returns the runtime address of an Ethereum address.
func FromEth(eth common.Address) Address {
	return NewAddress(Secp256k1EthContext, eth.Bytes())
}

// Parse decodes a bech32 "oasis1..." address.
func Parse(s string) (Address, error) {
	hrp, data, err := bech32.Decode(s)
	if err != nil {
		return Address{}, errors.Wrap(ErrMalformedAddress, err.Error())
	}
	if hrp != HRP {
		return Address{}, errors.Wrapf(ErrMalformedAddress, "unexpected prefix %q", hrp)
	}

	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return Address{}, errors.Wrap(ErrMalformedAddress, err.Error())
	}
	if len(raw) != Size {
		return Address{}, errors.Wrapf(ErrMalformedAddress, "unexpected length %d", len(raw))
	}

	var a Address
	copy(a[:], raw)
	return a, nil
}

func (a Address) String() string {
	data, err := bech32.ConvertBits(a[:], 8, 5, true)
	if err != nil {
		return "[malformed]"
	}

	s, err := bech32.Encode(HRP, data)
	if err != nil {
		return "[malformed]"
	}

	return s
}

// MarshalBinary encodes the address as raw bytes, which is also its CBOR form.
func (a Address) MarshalBinary() ([]byte, error) {
	return a[:], nil
}

func (a *Address) UnmarshalBinary(data []byte) error {
	if len(data) != Size {
		return errors.Wrapf(ErrMalformedAddress, "unexpected length %d", len(data))
	}
	copy(a[:], data)
	return nil
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
