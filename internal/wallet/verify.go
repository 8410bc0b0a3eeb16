package wallet

import (
	"crypto/ed25519"

	"github.com/pkg/errors"
	"github/chapool/sapphire-relay/internal/wallet/address"
	"github/chapool/sapphire-relay/internal/wallet/seed"
)

// VerificationAccountIndex is the consensus account index whose address guards the keystore
const VerificationAccountIndex = 0

// VerificationAddress derives the consensus source address that is stored next to the
// encrypted mnemonic.
func VerificationAddress(seedManager seed.Manager) (string, error) {
	seed := seedManager.GetSeed()
	if seed == nil {
		return "", ErrSeedUninitialized
	}

	key, err := address.DeriveEd25519(seed, address.OasisPath(VerificationAccountIndex))
	if err != nil {
		return "", errors.Wrap(err, "failed to derive verification address")
	}

	return address.FromEd25519(key.Public().(ed25519.PublicKey)).String(), nil
}

// VerifyAddress reports whether the seed manager derives stored. An empty stored address is
// accepted so keystores written without one still unlock.
func VerifyAddress(seedManager seed.Manager, stored string) (bool, error) {
	derived, err := VerificationAddress(seedManager)
	if err != nil {
		return false, err
	}

	if stored == "" {
		return true, nil
	}

	return derived == stored, nil
}
