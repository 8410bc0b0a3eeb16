package identity

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

const (
	// siweNonce and siweIssuedAt are constant so the same wallet always signs the same
	// message and therefore always derives the same account.
	siweNonce    = "noReplayProtection"
	siweIssuedAt = "2000-01-01T00:00:00.000Z"

	siweStatement = "Derive a consensus account that relays ROSE into this Sapphire account."
)

var ErrInvalidOrigin = errors.New("invalid origin")

// SignInMessage renders the EIP-4361 message the wallet is asked to sign.
func SignInMessage(origin string, chainID uint64, account common.Address) (string, error) {
	u, err := url.Parse(origin)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", errors.Wrapf(ErrInvalidOrigin, "%q", origin)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s wants you to sign in with your Ethereum account:\n", u.Host)
	fmt.Fprintf(&b, "%s\n\n", account.Hex())
	fmt.Fprintf(&b, "%s\n\n", siweStatement)
	fmt.Fprintf(&b, "URI: %s\n", origin)
	b.WriteString("Version: 1\n")
	fmt.Fprintf(&b, "Chain ID: %d\n", chainID)
	fmt.Fprintf(&b, "Nonce: %s\n", siweNonce)
	fmt.Fprintf(&b, "Issued At: %s", siweIssuedAt)

	return b.String(), nil
}
