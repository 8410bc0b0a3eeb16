package settle

import (
	"math/big"

	"github/chapool/sapphire-relay/internal/config"
)

// State is what the decision depends on.
type State struct {
	Source          *big.Int
	Intermediate    *big.Int
	HasIntermediate bool
}

// Decide picks the next action. Draining the source always wins; the intermediate account is
// only considered once the source is empty.
func Decide(s State) Action {
	if s.Source != nil && s.Source.Sign() > 0 {
		return ActionDrainSource
	}
	if s.HasIntermediate && s.Intermediate != nil && s.Intermediate.Sign() > 0 {
		return ActionDrainIntermediate
	}
	return ActionIdle
}

// DepositAmount converts a consensus amount into runtime units.
func DepositAmount(consensusAmount *big.Int, fees config.Fees) *big.Int {
	return new(big.Int).Mul(consensusAmount, fees.ScalingFactor())
}

// TransferFee is gasPrice × feeGas × scalingFactor, in runtime units.
func TransferFee(fees config.Fees) *big.Int {
	fee := new(big.Int).SetUint64(fees.GasPrice)
	fee.Mul(fee, new(big.Int).SetUint64(fees.FeeGas))
	return fee.Mul(fee, fees.ScalingFactor())
}

// ComputeTransfer splits balance into the forwarded amount and the fee. ok is false when the
// balance does not exceed the fee, in which case nothing should be sent.
func ComputeTransfer(balance *big.Int, fees config.Fees) (amount, fee *big.Int, ok bool) {
	fee = TransferFee(fees)
	amount = new(big.Int).Sub(balance, fee)
	if amount.Sign() <= 0 {
		return big.NewInt(0), fee, false
	}
	return amount, fee, true
}
