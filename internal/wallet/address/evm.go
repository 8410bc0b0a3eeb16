package address

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip32"
)

// DeriveSecp256k1 derives a secp256k1 private key from seed and BIP44 path
// WARNING: Caller must clear the private key after use
func DeriveSecp256k1(seed []byte, path string) ([]byte, error) {
	// Create master key from seed
	masterKey, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create master key")
	}

	// Derive key from path
	derivedKey, err := deriveKeyFromPath(masterKey, path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive key from path")
	}

	// Return private key (32 bytes)
	return derivedKey.Key, nil
}

// EthAddressFromPrivateKey returns the Ethereum address controlled by a raw secp256k1 key
func EthAddressFromPrivateKey(privateKey []byte) (common.Address, error) {
	ecdsaPrivateKey, err := crypto.ToECDSA(privateKey)
	if err != nil {
		return common.Address{}, errors.Wrap(err, "failed to convert to ECDSA private key")
	}

	publicKeyECDSA, ok := ecdsaPrivateKey.Public().(*ecdsa.PublicKey)
	if !ok {
		return common.Address{}, errors.New("failed to cast public key to ECDSA")
	}

	return crypto.PubkeyToAddress(*publicKeyECDSA), nil
}

// deriveKeyFromPath derives a key from BIP44 path
// Path format: m/44'/60'/0'/0/{index}
func deriveKeyFromPath(masterKey *bip32.Key, path string) (*bip32.Key, error) {
	indices, err := parseBIP44Path(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse BIP44 path")
	}

	// Derive key step by step
	key := masterKey
	for _, index := range indices {
		key, err = key.NewChildKey(index)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to derive child key at index %d", index)
		}
	}

	return key, nil
}
