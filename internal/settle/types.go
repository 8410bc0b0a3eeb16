package settle

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github/chapool/sapphire-relay/internal/ledger/tx"
	"github/chapool/sapphire-relay/internal/wallet/address"
	"github/chapool/sapphire-relay/internal/wallet/identity"
)

// Gateway is everything the engine needs from the two ledgers.
type Gateway interface {
	// ConsensusBalance returns the general balance of account in consensus base units
	ConsensusBalance(ctx context.Context, account address.Address) (*big.Int, error)
	ConsensusNonce(ctx context.Context, account address.Address) (uint64, error)
	ConsensusAllowance(ctx context.Context, owner, beneficiary address.Address) (*big.Int, error)

	// RuntimeBalance returns the runtime balance of account in runtime base units
	RuntimeBalance(ctx context.Context, account common.Address) (*big.Int, error)
	RuntimeNonce(ctx context.Context, account address.Address) (uint64, error)

	ChainContext(ctx context.Context) (string, error)
	EstimateGas(ctx context.Context, signerPublicKey []byte, transaction *tx.Transaction) (uint64, error)

	SubmitConsensus(ctx context.Context, signed *tx.SignedTransaction) error
	SubmitRuntime(ctx context.Context, utx *tx.UnverifiedTransaction) error
}

// Reporter receives the engine's state. Implementations must not block for long; they are
// called from the loop.
type Reporter interface {
	// ReportSecret is called once, before the first cycle
	ReportSecret(secret identity.Secret)
	// ReportBalances is called after every successful observation
	ReportBalances(snapshot Snapshot)
	ReportAction(result Result)
	// ReportAlert is called for every failed cycle
	ReportAlert(err error)
}

type Action int

const (
	ActionIdle Action = iota
	ActionDrainSource
	ActionDrainIntermediate
)

func (a Action) String() string {
	switch a {
	case ActionIdle:
		return "idle"
	case ActionDrainSource:
		return "drain_source"
	case ActionDrainIntermediate:
		return "drain_intermediate"
	default:
		return "unknown"
	}
}

// Balance is one observed account balance. Decimals tells the unit of Amount.
type Balance struct {
	Role     identity.Role
	Address  string
	Amount   *big.Int
	Decimals int
}

// Snapshot is the observed state of one cycle.
type Snapshot struct {
	Cycle        uint64
	ObservedAt   time.Time
	Source       Balance
	Intermediate *Balance
	Destination  Balance
}

// Result describes what one cycle did.
type Result struct {
	Cycle  uint64
	Action Action
	// Amount moved, in the unit of the receiving ledger
	Amount *big.Int
	Fee    *big.Int
	// Skipped is set when the action was chosen but not carried out
	Skipped bool
	Delay   time.Duration
}
