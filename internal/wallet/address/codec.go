package address

import (
	"regexp"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github/chapool/sapphire-relay/internal/apperrors"
)

var (
	evmAddressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

	ErrInvalidRuntimeAddress = errors.New("invalid sapphire address")
)

// ParseEVMAddress validates a 0x-prefixed 20-byte hex address. Anything else is a
// configuration error.
func ParseEVMAddress(s string) (common.Address, error) {
	if !evmAddressPattern.MatchString(s) {
		return common.Address{}, apperrors.NewConfig("parse sapphire address", errors.Wrapf(ErrInvalidRuntimeAddress, "%q", s))
	}

	return common.HexToAddress(s), nil
}

// ToRuntimeAddress maps an EVM-style address to its runtime-native Oasis address.
func ToRuntimeAddress(s string) (Address, error) {
	eth, err := ParseEVMAddress(s)
	if err != nil {
		return Address{}, err
	}

	return FromEth(eth), nil
}
