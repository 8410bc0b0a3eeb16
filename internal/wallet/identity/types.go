package identity

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github/chapool/sapphire-relay/internal/wallet/address"
	"github/chapool/sapphire-relay/internal/wallet/signer"
)

// Role names an account's position in the relay.
type Role string

const (
	RoleSource       Role = "source"
	RoleIntermediate Role = "intermediate"
	RoleDestination  Role = "destination"
)

// Account is one participant of the relay. Address is always the oasis1 form used on the
// consensus layer and in runtime transaction bodies; Eth is set for runtime accounts that
// are known by their 0x address. Signer is nil for accounts the relay does not control.
type Account struct {
	Role    Role
	Address address.Address
	Eth     *common.Address
	Signer  signer.ContextSigner
}

// Display returns the address the operator knows the account by.
func (a Account) Display() string {
	if a.Eth != nil {
		return a.Eth.Hex()
	}
	return a.Address.String()
}

// Identity is the resolved account set for one relay run.
type Identity struct {
	Source       Account
	Intermediate *Account
	Destination  Account
	Secret       Secret
}

// HasIntermediate reports whether funds hop through an intermediate runtime account.
func (i *Identity) HasIntermediate() bool {
	return i.Intermediate != nil
}

// Provider derives the relay identity. Implementations must be deterministic in their seed
// material so restarts resolve the same accounts.
type Provider interface {
	Derive(ctx context.Context) (*Identity, error)
}
