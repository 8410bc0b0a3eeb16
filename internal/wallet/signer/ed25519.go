package signer

import (
	"crypto/ed25519"

	"github.com/pkg/errors"
)

type Ed25519Signer struct {
	key ed25519.PrivateKey
}

func NewEd25519Signer(key ed25519.PrivateKey) (*Ed25519Signer, error) {
	if len(key) != ed25519.PrivateKeySize {
		return nil, errors.Errorf("invalid ed25519 private key length %d", len(key))
	}

	return &Ed25519Signer{key: key}, nil
}

func (s *Ed25519Signer) Scheme() Scheme {
	return SchemeEd25519
}

func (s *Ed25519Signer) Public() []byte {
	pub, _ := s.key.Public().(ed25519.PublicKey)
	return []byte(pub)
}

func (s *Ed25519Signer) ContextSign(context string, message []byte) ([]byte, error) {
	return ed25519.Sign(s.key, PrepareMessage(context, message)), nil
}

// Verify checks a signature produced by ContextSign.
func VerifyEd25519(public []byte, context string, message, signature []byte) bool {
	if len(public) != ed25519.PublicKeySize {
		return false
	}

	return ed25519.Verify(public, PrepareMessage(context, message), signature)
}
