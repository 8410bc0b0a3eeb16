package settle

import (
	"encoding/hex"
	"time"

	"github.com/pkg/errors"
	"github/chapool/sapphire-relay/internal/apperrors"
	"github/chapool/sapphire-relay/internal/config"
	"github/chapool/sapphire-relay/internal/wallet/address"
)

const runtimeIDSize = 32

// Params are the fixed inputs of the engine.
type Params struct {
	RuntimeID []byte
	// Bridge is the runtime's consensus_accounts address that receives the allowance
	Bridge        address.Address
	Fees          config.Fees
	PollInterval  time.Duration
	TransferDelay time.Duration
}

func ParamsFromConfig(cfg config.Relay) (Params, error) {
	const op = "settle params"

	runtimeID, err := hex.DecodeString(cfg.Network.RuntimeID)
	if err != nil || len(runtimeID) != runtimeIDSize {
		return Params{}, apperrors.NewConfig(op, errors.Errorf("invalid runtime id %q", cfg.Network.RuntimeID))
	}

	bridge, err := address.Parse(cfg.Network.BridgeAddress)
	if err != nil {
		return Params{}, apperrors.NewConfig(op, errors.Wrap(err, "bridge address"))
	}

	return Params{
		RuntimeID:     runtimeID,
		Bridge:        bridge,
		Fees:          cfg.Fees,
		PollInterval:  cfg.PollInterval,
		TransferDelay: cfg.TransferDelay,
	}, nil
}
