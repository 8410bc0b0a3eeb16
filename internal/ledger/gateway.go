package ledger

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github/chapool/sapphire-relay/internal/ledger/tx"
	"github/chapool/sapphire-relay/internal/wallet/address"
	"golang.org/x/time/rate"
)

// Observer is told about every gateway call.
type Observer interface {
	ObserveRPC(method string, took time.Duration, err error)
}

// Gateway is the relay's single view of both ledgers. Every call waits for the shared rate
// limiter, so a tight loop cannot flood the public endpoints.
type Gateway struct {
	node      *NodeClient
	evm       *EVMClient
	runtimeID []byte
	limiter   *rate.Limiter
	observer  Observer

	mu           sync.Mutex
	chainContext string
}

type GatewayOption func(*Gateway)

// WithEVMClient makes runtime balances fall back to Web3 when the node query fails.
func WithEVMClient(evm *EVMClient) GatewayOption {
	return func(g *Gateway) {
		g.evm = evm
	}
}

func WithObserver(observer Observer) GatewayOption {
	return func(g *Gateway) {
		g.observer = observer
	}
}

func NewGateway(node *NodeClient, runtimeID []byte, limiter *rate.Limiter, opts ...GatewayOption) *Gateway {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}

	g := &Gateway{
		node:      node,
		runtimeID: runtimeID,
		limiter:   limiter,
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

func (g *Gateway) call(ctx context.Context, method string, fn func(ctx context.Context) error) error {
	if err := g.limiter.Wait(ctx); err != nil {
		return errors.Wrap(err, "rate limiter")
	}

	start := time.Now()
	err := fn(ctx)
	if g.observer != nil {
		g.observer.ObserveRPC(method, time.Since(start), err)
	}

	return err
}

func (g *Gateway) ConsensusBalance(ctx context.Context, account address.Address) (*big.Int, error) {
	var balance *big.Int
	err := g.call(ctx, "consensus_balance", func(ctx context.Context) error {
		acct, err := g.node.Account(ctx, account)
		if err != nil {
			return err
		}
		balance = acct.General.Balance.BigInt()
		return nil
	})
	return balance, err
}

func (g *Gateway) ConsensusNonce(ctx context.Context, account address.Address) (uint64, error) {
	var nonce uint64
	err := g.call(ctx, "consensus_nonce", func(ctx context.Context) error {
		var err error
		nonce, err = g.node.SignerNonce(ctx, account)
		return err
	})
	return nonce, err
}

func (g *Gateway) ConsensusAllowance(ctx context.Context, owner, beneficiary address.Address) (*big.Int, error) {
	var allowance *big.Int
	err := g.call(ctx, "consensus_allowance", func(ctx context.Context) error {
		var err error
		allowance, err = g.node.Allowance(ctx, owner, beneficiary)
		return err
	})
	return allowance, err
}

// RuntimeBalance returns the runtime balance of an Ethereum-style account.
func (g *Gateway) RuntimeBalance(ctx context.Context, account common.Address) (*big.Int, error) {
	var balance *big.Int
	err := g.call(ctx, "runtime_balance", func(ctx context.Context) error {
		var err error
		balance, err = g.node.RuntimeBalance(ctx, g.runtimeID, address.FromEth(account))
		return err
	})
	if err == nil || g.evm == nil {
		return balance, err
	}

	log.Warn().Err(err).Str("account", account.Hex()).Msg("Runtime balance query failed, falling back to Web3")

	err = g.call(ctx, "web3_balance", func(ctx context.Context) error {
		var err error
		balance, err = g.evm.BalanceAt(ctx, account)
		return err
	})
	return balance, err
}

func (g *Gateway) RuntimeNonce(ctx context.Context, account address.Address) (uint64, error) {
	var nonce uint64
	err := g.call(ctx, "runtime_nonce", func(ctx context.Context) error {
		var err error
		nonce, err = g.node.RuntimeNonce(ctx, g.runtimeID, account)
		return err
	})
	return nonce, err
}

// ChainContext returns the consensus chain context. It never changes for a running network,
// so the first answer is cached.
func (g *Gateway) ChainContext(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.chainContext != "" {
		return g.chainContext, nil
	}

	var chainContext string
	err := g.call(ctx, "chain_context", func(ctx context.Context) error {
		var err error
		chainContext, err = g.node.ChainContext(ctx)
		return err
	})
	if err != nil {
		return "", err
	}

	if chainContext == "" {
		return "", errors.New("node returned an empty chain context")
	}

	g.chainContext = chainContext
	return chainContext, nil
}

// Ping asks the node for its chain context, bypassing the cache.
func (g *Gateway) Ping(ctx context.Context) error {
	return g.call(ctx, "ping", func(ctx context.Context) error {
		_, err := g.node.ChainContext(ctx)
		return err
	})
}

func (g *Gateway) EstimateGas(ctx context.Context, signerPublicKey []byte, transaction *tx.Transaction) (uint64, error) {
	var gas uint64
	err := g.call(ctx, "estimate_gas", func(ctx context.Context) error {
		var err error
		gas, err = g.node.EstimateGas(ctx, signerPublicKey, transaction)
		return err
	})
	return gas, err
}

func (g *Gateway) SubmitConsensus(ctx context.Context, signed *tx.SignedTransaction) error {
	return g.call(ctx, "submit_consensus", func(ctx context.Context) error {
		return g.node.SubmitTx(ctx, signed)
	})
}

func (g *Gateway) SubmitRuntime(ctx context.Context, utx *tx.UnverifiedTransaction) error {
	return g.call(ctx, "submit_runtime", func(ctx context.Context) error {
		return g.node.RuntimeSubmitTx(ctx, g.runtimeID, utx)
	})
}
