package ledger

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var ErrNoEndpoint = errors.New("all Web3 endpoints are unavailable")

// EVMClient reads runtime state through one or more Web3 JSON-RPC endpoints, failing over to
// the next endpoint when the current one stops answering.
type EVMClient struct {
	urls    []string
	chainID uint64
	clients []*ethclient.Client
	mu      sync.Mutex
	current int
}

// NewEVMClient connects to urls lazily; an endpoint that cannot be dialed now is retried on use.
// A non-zero chainID is checked against every endpoint before it is used.
func NewEVMClient(urls []string, chainID uint64) (*EVMClient, error) {
	if len(urls) == 0 {
		return nil, errors.New("at least one Web3 URL is required")
	}

	clients := make([]*ethclient.Client, len(urls))
	for i, url := range urls {
		client, err := ethclient.Dial(url)
		if err != nil {
			log.Warn().
				Str("url", url).
				Err(err).
				Msg("Failed to connect to Web3 endpoint, will retry on use")
			continue
		}
		clients[i] = client
	}

	return &EVMClient{
		urls:    urls,
		chainID: chainID,
		clients: clients,
	}, nil
}

// Close closes all endpoint connections
func (c *EVMClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, client := range c.clients {
		if client != nil {
			client.Close()
		}
	}
}

// BalanceAt returns the native balance of account at the latest block, in runtime units.
func (c *EVMClient) BalanceAt(ctx context.Context, account common.Address) (*big.Int, error) {
	client, err := c.getClient(ctx)
	if err != nil {
		return nil, err
	}

	balance, err := client.BalanceAt(ctx, account, nil)
	if err != nil {
		c.markFailed(client)
		return nil, errors.Wrap(err, "failed to get balance")
	}

	return balance, nil
}

// getClient returns the first healthy endpoint, starting from the last one that worked
func (c *EVMClient) getClient(ctx context.Context) (*ethclient.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.clients {
		idx := (c.current + i) % len(c.clients)

		if c.clients[idx] == nil {
			client, err := ethclient.DialContext(ctx, c.urls[idx])
			if err != nil {
				log.Warn().Str("url", c.urls[idx]).Err(err).Msg("Web3 endpoint unavailable")
				continue
			}
			c.clients[idx] = client
		}

		client := c.clients[idx]

		chainID, err := client.ChainID(ctx)
		if err != nil {
			log.Warn().
				Str("url", c.urls[idx]).
				Err(err).
				Msg("Web3 health check failed, trying next endpoint")
			continue
		}

		if c.chainID != 0 && chainID.Uint64() != c.chainID {
			log.Error().
				Str("url", c.urls[idx]).
				Uint64("expected", c.chainID).
				Str("actual", chainID.String()).
				Msg("Web3 endpoint serves another chain")
			continue
		}

		c.current = idx
		return client, nil
	}

	return nil, errors.Wrapf(ErrNoEndpoint, "tried %d", len(c.urls))
}

func (c *EVMClient) markFailed(client *ethclient.Client) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.clients[c.current] == client {
		c.current = (c.current + 1) % len(c.clients)
	}
}
