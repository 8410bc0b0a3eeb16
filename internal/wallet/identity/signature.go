package identity

import (
	"context"
	"crypto/ed25519"
	"crypto/sha512"
	"encoding/base64"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github/chapool/sapphire-relay/internal/apperrors"
	"github/chapool/sapphire-relay/internal/wallet/address"
	"github/chapool/sapphire-relay/internal/wallet/signer"
)

var ErrSignatureMismatch = errors.New("signature does not recover to the wallet address")

// WalletSigner is an externally controlled Ethereum wallet.
type WalletSigner interface {
	// Address returns the wallet's selected account
	Address(ctx context.Context) (common.Address, error)

	// PersonalSign asks the wallet to sign message with account (EIP-191)
	PersonalSign(ctx context.Context, account common.Address, message []byte) ([]byte, error)
}

// SignatureProvider derives the direct identity from a wallet signature: the wallet signs a
// fixed sign-in message, the signature is hashed with SHA-512 and the first half seeds one
// ed25519 consensus key. Funds go straight to the wallet's own runtime account.
type SignatureProvider struct {
	Wallet  WalletSigner
	Origin  string
	ChainID uint64
}

func (p *SignatureProvider) Derive(ctx context.Context) (*Identity, error) {
	const op = "derive wallet identity"

	account, err := p.Wallet.Address(ctx)
	if err != nil {
		return nil, apperrors.NewConfig(op, errors.Wrap(err, "wallet account"))
	}

	message, err := SignInMessage(p.Origin, p.ChainID, account)
	if err != nil {
		return nil, apperrors.NewConfig(op, err)
	}

	sig, err := p.Wallet.PersonalSign(ctx, account, []byte(message))
	if err != nil {
		return nil, apperrors.NewConfig(op, errors.Wrap(err, "wallet signature"))
	}

	recovered, err := signer.RecoverPersonal([]byte(message), sig)
	if err != nil {
		return nil, apperrors.NewConfig(op, err)
	}

	if recovered != account {
		return nil, apperrors.NewConfig(op, errors.Wrapf(ErrSignatureMismatch, "recovered %s, wallet %s", recovered.Hex(), account.Hex()))
	}

	key := KeyFromSignature(sig)

	sourceSigner, err := signer.NewEd25519Signer(key)
	if err != nil {
		return nil, apperrors.NewConfig(op, err)
	}

	return &Identity{
		Source: Account{
			Role:    RoleSource,
			Address: address.FromEd25519(key.Public().(ed25519.PublicKey)),
			Signer:  sourceSigner,
		},
		Destination: Account{
			Role:    RoleDestination,
			Address: address.FromEth(account),
			Eth:     &account,
		},
		Secret: NewSecret(SecretPrivateKey, base64.StdEncoding.EncodeToString(key)),
	}, nil
}

// KeyFromSignature turns a wallet signature into the consensus key it controls.
func KeyFromSignature(sig []byte) ed25519.PrivateKey {
	digest := sha512.Sum512(sig)
	return ed25519.NewKeyFromSeed(digest[:ed25519.SeedSize])
}
