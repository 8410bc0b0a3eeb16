package signer

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

const (
	personalSignatureLength = crypto.SignatureLength
	// personalRecoveryOffset is added to the recovery id by wallets implementing personal_sign
	personalRecoveryOffset = 27
)

var ErrInvalidPersonalSignature = errors.New("invalid personal_sign signature")

// SignPersonal signs message the way wallets answer personal_sign (EIP-191), returning the
// 65 byte r || s || v signature with v in {27, 28}.
func SignPersonal(privateKey *ecdsa.PrivateKey, message []byte) ([]byte, error) {
	sig, err := crypto.Sign(accounts.TextHash(message), privateKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign message")
	}

	sig[crypto.RecoveryIDOffset] += personalRecoveryOffset
	return sig, nil
}

// RecoverPersonal returns the address that produced a personal_sign signature over message.
func RecoverPersonal(message, signature []byte) (common.Address, error) {
	if len(signature) != personalSignatureLength {
		return common.Address{}, errors.Wrapf(ErrInvalidPersonalSignature, "length %d", len(signature))
	}

	sig := make([]byte, personalSignatureLength)
	copy(sig, signature)
	if sig[crypto.RecoveryIDOffset] >= personalRecoveryOffset {
		sig[crypto.RecoveryIDOffset] -= personalRecoveryOffset
	}

	publicKey, err := crypto.SigToPub(accounts.TextHash(message), sig)
	if err != nil {
		return common.Address{}, errors.Wrap(ErrInvalidPersonalSignature, err.Error())
	}

	return crypto.PubkeyToAddress(*publicKey), nil
}
