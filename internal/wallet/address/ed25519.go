package address

import (
	"crypto/ed25519"

	"github.com/anyproto/go-slip10"
	"github.com/pkg/errors"
)

// DeriveEd25519 derives an ed25519 key following SLIP-0010 (ADR 0008). Every path segment must be
// hardened.
func DeriveEd25519(seed []byte, path string) (ed25519.PrivateKey, error) {
	indices, err := parseBIP44Path(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse derivation path")
	}

	node, err := slip10.NewMasterNode(seed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive master key")
	}

	for _, index := range indices {
		if index < hardenedOffset {
			return nil, errors.Errorf("ed25519 derivation supports hardened segments only, got %d", index)
		}

		node, err = node.Derive(index)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to derive child %d", index-hardenedOffset)
		}
	}

	_, key := node.Keypair()

	return key, nil
}
