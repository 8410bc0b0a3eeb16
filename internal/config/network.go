package config

import (
	"math/big"
	"sort"

	"github.com/pkg/errors"
)

const (
	NetworkMainnet = "mainnet"
	NetworkTestnet = "testnet"
)

// Network describes one Oasis deployment with its Sapphire paratime.
type Network struct {
	Name string
	// GRPCEndpoint is the Oasis node gRPC endpoint (host:port, TLS).
	GRPCEndpoint string
	// Web3URLs are Sapphire JSON-RPC endpoints, tried in order.
	Web3URLs []string
	// RuntimeID is the hex encoded Sapphire runtime namespace.
	RuntimeID string
	// BridgeAddress is the consensus_accounts module address that receives allowances.
	BridgeAddress string
	// EVMChainID is the Sapphire EIP-155 chain id.
	EVMChainID int64
}

var networks = map[string]Network{
	NetworkMainnet: {
		Name:          NetworkMainnet,
		GRPCEndpoint:  "grpc.oasis.io:443",
		Web3URLs:      []string{"https://sapphire.oasis.io"},
		RuntimeID:     "000000000000000000000000000000000000000000000000f80306c9858e7279",
		BridgeAddress: "oasis1qrd3mnzhhgst26hsp96uf45yhq6zlax0cuzdgcfc",
		EVMChainID:    23294,
	},
	NetworkTestnet: {
		Name:          NetworkTestnet,
		GRPCEndpoint:  "testnet.grpc.oasis.io:443",
		Web3URLs:      []string{"https://testnet.sapphire.oasis.io"},
		RuntimeID:     "000000000000000000000000000000000000000000000000a6d1e3ebf60dff6c",
		BridgeAddress: "oasis1qqczuf3x6glkgjuf0xgtcpjjw95r3crf7y2323xd",
		EVMChainID:    23295,
	},
}

// LookupNetwork returns a copy of the named network preset.
func LookupNetwork(name string) (Network, error) {
	n, ok := networks[name]
	if !ok {
		return Network{}, errors.Errorf("unknown network %q (known: %v)", name, NetworkNames())
	}

	n.Web3URLs = append([]string(nil), n.Web3URLs...)
	return n, nil
}

func NetworkNames() []string {
	names := make([]string, 0, len(networks))
	for name := range networks {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Fees are the hardcoded fee parameters of the relay.
type Fees struct {
	// GasPrice is the runtime gas price in consensus base units.
	GasPrice uint64
	// FeeGas is the gas limit used for deposits and transfers.
	FeeGas            uint64
	ConsensusDecimals int
	RuntimeDecimals   int
}

func DefaultFees() Fees {
	return Fees{
		GasPrice:          100,
		FeeGas:            70_000,
		ConsensusDecimals: 9,
		RuntimeDecimals:   18,
	}
}

// ScalingFactor is the number of runtime base units per consensus base unit.
func (f Fees) ScalingFactor() *big.Int {
	const base = 10
	return new(big.Int).Exp(big.NewInt(base), big.NewInt(int64(f.RuntimeDecimals-f.ConsensusDecimals)), nil)
}
