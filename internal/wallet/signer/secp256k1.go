package signer

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/pkg/errors"
)

const secp256k1KeySize = 32

// Secp256k1Signer signs runtime transactions for Ethereum-style accounts. Signatures are DER
// encoded ECDSA over the prepared message digest.
type Secp256k1Signer struct {
	key *secp256k1.PrivateKey
}

func NewSecp256k1Signer(privateKey []byte) (*Secp256k1Signer, error) {
	if len(privateKey) != secp256k1KeySize {
		return nil, errors.Errorf("invalid secp256k1 private key length %d", len(privateKey))
	}

	return &Secp256k1Signer{key: secp256k1.PrivKeyFromBytes(privateKey)}, nil
}

func (s *Secp256k1Signer) Scheme() Scheme {
	return SchemeSecp256k1Eth
}

// Public returns the compressed public key.
func (s *Secp256k1Signer) Public() []byte {
	return s.key.PubKey().SerializeCompressed()
}

func (s *Secp256k1Signer) ContextSign(context string, message []byte) ([]byte, error) {
	sig := ecdsa.Sign(s.key, PrepareMessage(context, message))
	return sig.Serialize(), nil
}

// VerifySecp256k1 checks a signature produced by ContextSign.
func VerifySecp256k1(public []byte, context string, message, signature []byte) bool {
	pub, err := secp256k1.ParsePubKey(public)
	if err != nil {
		return false
	}

	sig, err := ecdsa.ParseDERSignature(signature)
	if err != nil {
		return false
	}

	return sig.Verify(PrepareMessage(context, message), pub)
}
