package ledger

import (
	"math"

	"github.com/fxamacker/cbor/v2"
	"github/chapool/sapphire-relay/internal/ledger/tx"
	"github/chapool/sapphire-relay/internal/wallet/address"
)

const (
	// HeightLatest queries consensus state at the latest height
	HeightLatest int64 = 0
	// RoundLatest queries runtime state at the latest round
	RoundLatest uint64 = math.MaxUint64
)

const (
	methodGetChainContext = "/oasis-core.Consensus/GetChainContext"
	methodGetSignerNonce  = "/oasis-core.Consensus/GetSignerNonce"
	methodEstimateGas     = "/oasis-core.Consensus/EstimateGas"
	methodSubmitTx        = "/oasis-core.Consensus/SubmitTx"

	methodStakingAccount   = "/oasis-core.Staking/Account"
	methodStakingAllowance = "/oasis-core.Staking/Allowance"

	methodRuntimeQuery    = "/oasis-core.RuntimeClient/Query"
	methodRuntimeSubmitTx = "/oasis-core.RuntimeClient/SubmitTx"

	queryAccountsNonce    = "accounts.Nonce"
	queryConsensusBalance = "consensus.Balance"
)

type GetSignerNonceRequest struct {
	AccountAddress address.Address `cbor:"account_address"`
	Height         int64           `cbor:"height"`
}

type EstimateGasRequest struct {
	Signer      []byte          `cbor:"signer"`
	Transaction *tx.Transaction `cbor:"transaction"`
}

type OwnerQuery struct {
	Height int64           `cbor:"height"`
	Owner  address.Address `cbor:"owner"`
}

type AllowanceQuery struct {
	Height      int64           `cbor:"height"`
	Owner       address.Address `cbor:"owner"`
	Beneficiary address.Address `cbor:"beneficiary"`
}

type GeneralAccount struct {
	Balance tx.Quantity `cbor:"balance"`
	Nonce   uint64      `cbor:"nonce,omitempty"`
}

// Account is the part of a staking account the relay reads.
type Account struct {
	General GeneralAccount `cbor:"general"`
}

type RuntimeQueryRequest struct {
	RuntimeID []byte `cbor:"runtime_id"`
	Round     uint64 `cbor:"round"`
	Method    string `cbor:"method"`
	Args      []byte `cbor:"args"`
}

type RuntimeQueryResponse struct {
	Data []byte `cbor:"data"`
}

type RuntimeSubmitTxRequest struct {
	RuntimeID []byte `cbor:"runtime_id"`
	Data      []byte `cbor:"data"`
}

type AddressQuery struct {
	Address address.Address `cbor:"address"`
}

type AccountBalance struct {
	Balance tx.Quantity `cbor:"balance"`
}

type FailedCallResult struct {
	Module  string `cbor:"module"`
	Code    uint32 `cbor:"code"`
	Message string `cbor:"message,omitempty"`
}

// CallResult is the outcome of a runtime transaction.
type CallResult struct {
	Ok      cbor.RawMessage   `cbor:"ok,omitempty"`
	Failed  *FailedCallResult `cbor:"fail,omitempty"`
	Unknown cbor.RawMessage   `cbor:"unknown,omitempty"`
}
