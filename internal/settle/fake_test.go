package settle_test

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github/chapool/sapphire-relay/internal/ledger/tx"
	"github/chapool/sapphire-relay/internal/settle"
	"github/chapool/sapphire-relay/internal/wallet/address"
	"github/chapool/sapphire-relay/internal/wallet/identity"
)

var errUnavailable = errors.New("node unavailable")

// fakeGateway is an in-memory ledger pair. Balances do not move when transactions are
// submitted; tests set them per cycle.
type fakeGateway struct {
	mu sync.Mutex

	consensusBalances map[address.Address]*big.Int
	runtimeBalances   map[common.Address]*big.Int
	consensusNonce    uint64
	runtimeNonces     map[address.Address]uint64
	allowance         *big.Int
	gas               uint64
	chainContext      string

	// fail makes the named method return errUnavailable
	fail map[string]bool

	calls        []string
	consensusTxs []*tx.SignedTransaction
	runtimeTxs   []*tx.UnverifiedTransaction
}

var _ settle.Gateway = (*fakeGateway)(nil)

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		consensusBalances: map[address.Address]*big.Int{},
		runtimeBalances:   map[common.Address]*big.Int{},
		runtimeNonces:     map[address.Address]uint64{},
		allowance:         big.NewInt(0),
		gas:               1234,
		chainContext:      "test-chain-context",
		fail:              map[string]bool{},
	}
}

func (g *fakeGateway) record(method string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls = append(g.calls, method)
	if g.fail[method] {
		return errors.Wrap(errUnavailable, method)
	}
	return nil
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(v)
}

func (g *fakeGateway) ConsensusBalance(_ context.Context, account address.Address) (*big.Int, error) {
	if err := g.record("ConsensusBalance"); err != nil {
		return nil, err
	}
	return orZero(g.consensusBalances[account]), nil
}

func (g *fakeGateway) ConsensusNonce(context.Context, address.Address) (uint64, error) {
	if err := g.record("ConsensusNonce"); err != nil {
		return 0, err
	}
	return g.consensusNonce, nil
}

func (g *fakeGateway) ConsensusAllowance(context.Context, address.Address, address.Address) (*big.Int, error) {
	if err := g.record("ConsensusAllowance"); err != nil {
		return nil, err
	}
	return orZero(g.allowance), nil
}

func (g *fakeGateway) RuntimeBalance(_ context.Context, account common.Address) (*big.Int, error) {
	if err := g.record("RuntimeBalance"); err != nil {
		return nil, err
	}
	return orZero(g.runtimeBalances[account]), nil
}

func (g *fakeGateway) RuntimeNonce(_ context.Context, account address.Address) (uint64, error) {
	if err := g.record("RuntimeNonce"); err != nil {
		return 0, err
	}
	return g.runtimeNonces[account], nil
}

func (g *fakeGateway) ChainContext(context.Context) (string, error) {
	if err := g.record("ChainContext"); err != nil {
		return "", err
	}
	return g.chainContext, nil
}

func (g *fakeGateway) EstimateGas(context.Context, []byte, *tx.Transaction) (uint64, error) {
	if err := g.record("EstimateGas"); err != nil {
		return 0, err
	}
	return g.gas, nil
}

func (g *fakeGateway) SubmitConsensus(_ context.Context, signed *tx.SignedTransaction) error {
	if err := g.record("SubmitConsensus"); err != nil {
		return err
	}
	g.consensusTxs = append(g.consensusTxs, signed)
	return nil
}

func (g *fakeGateway) SubmitRuntime(_ context.Context, utx *tx.UnverifiedTransaction) error {
	if err := g.record("SubmitRuntime"); err != nil {
		return err
	}
	g.runtimeTxs = append(g.runtimeTxs, utx)
	return nil
}

type recordingReporter struct {
	secrets   []identity.Secret
	snapshots []settle.Snapshot
	results   []settle.Result
	alerts    []error
}

func (r *recordingReporter) ReportSecret(secret identity.Secret) {
	r.secrets = append(r.secrets, secret)
}

func (r *recordingReporter) ReportBalances(snapshot settle.Snapshot) {
	r.snapshots = append(r.snapshots, snapshot)
}

func (r *recordingReporter) ReportAction(result settle.Result) {
	r.results = append(r.results, result)
}

func (r *recordingReporter) ReportAlert(err error) {
	r.alerts = append(r.alerts, err)
}
