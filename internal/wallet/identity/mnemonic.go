package identity

import (
	"context"
	"crypto/ed25519"

	"github.com/pkg/errors"
	"github/chapool/sapphire-relay/internal/apperrors"
	"github/chapool/sapphire-relay/internal/wallet/address"
	"github/chapool/sapphire-relay/internal/wallet/seed"
	"github/chapool/sapphire-relay/internal/wallet/signer"
)

// MnemonicProvider derives the two-hop identity from one BIP-39 mnemonic: an ed25519
// consensus source account (ADR-0008, m/44'/474'/0') and a secp256k1 intermediate runtime
// account (m/44'/60'/0'/0/0). Destination is the operator's 0x address.
type MnemonicProvider struct {
	Seeds       seed.Manager
	Destination string
}

func (p *MnemonicProvider) Derive(_ context.Context) (*Identity, error) {
	const op = "derive mnemonic identity"

	destination, err := address.ParseEVMAddress(p.Destination)
	if err != nil {
		return nil, apperrors.NewConfig(op, err)
	}

	if !p.Seeds.IsInitialized() {
		if _, err := p.Seeds.Generate(); err != nil {
			return nil, apperrors.NewConfig(op, err)
		}
	}

	seedBytes := p.Seeds.GetSeed()

	sourceKey, err := address.DeriveEd25519(seedBytes, address.OasisPath(0))
	if err != nil {
		return nil, apperrors.NewConfig(op, errors.Wrap(err, "consensus key"))
	}

	sourceSigner, err := signer.NewEd25519Signer(sourceKey)
	if err != nil {
		return nil, apperrors.NewConfig(op, err)
	}

	intermediateKey, err := address.DeriveSecp256k1(seedBytes, address.EthereumPath)
	if err != nil {
		return nil, apperrors.NewConfig(op, errors.Wrap(err, "runtime key"))
	}

	intermediateSigner, err := signer.NewSecp256k1Signer(intermediateKey)
	if err != nil {
		return nil, apperrors.NewConfig(op, err)
	}

	intermediateEth, err := address.EthAddressFromPrivateKey(intermediateKey)
	if err != nil {
		return nil, apperrors.NewConfig(op, err)
	}

	return &Identity{
		Source: Account{
			Role:    RoleSource,
			Address: address.FromEd25519(sourceKey.Public().(ed25519.PublicKey)),
			Signer:  sourceSigner,
		},
		Intermediate: &Account{
			Role:    RoleIntermediate,
			Address: address.FromEth(intermediateEth),
			Eth:     &intermediateEth,
			Signer:  intermediateSigner,
		},
		Destination: Account{
			Role:    RoleDestination,
			Address: address.FromEth(destination),
			Eth:     &destination,
		},
		Secret: NewSecret(SecretMnemonic, p.Seeds.Mnemonic()),
	}, nil
}
