package tx

import (
	"math/big"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
	"github/chapool/sapphire-relay/internal/wallet/address"
	"github/chapool/sapphire-relay/internal/wallet/signer"
)

const (
	// RuntimeTxContext is the signature context of runtime transactions, before chain separation.
	RuntimeTxContext = "oasis-runtime-sdk/tx: v0"

	LatestVersion = 1

	MethodDeposit  = "consensus.Deposit"
	MethodTransfer = "accounts.Transfer"
)

// Denomination names a runtime token. The empty denomination is the native token.
type Denomination string

const NativeDenomination Denomination = ""

func (d Denomination) MarshalBinary() ([]byte, error) {
	return []byte(d), nil
}

func (d *Denomination) UnmarshalBinary(data []byte) error {
	*d = Denomination(data)
	return nil
}

type BaseUnits struct {
	_ struct{} `cbor:",toarray"`

	Amount       Quantity
	Denomination Denomination
}

func NativeUnits(amount *big.Int) (BaseUnits, error) {
	q, err := NewQuantity(amount)
	if err != nil {
		return BaseUnits{}, err
	}
	return BaseUnits{Amount: q, Denomination: NativeDenomination}, nil
}

type Call struct {
	Method string          `cbor:"method"`
	Body   cbor.RawMessage `cbor:"body"`
}

type PublicKey struct {
	Ed25519      []byte `cbor:"ed25519,omitempty"`
	Secp256k1Eth []byte `cbor:"secp256k1eth,omitempty"`
}

type AddressSpec struct {
	Signature *PublicKey `cbor:"signature,omitempty"`
}

type SignerInfo struct {
	AddressSpec AddressSpec `cbor:"address_spec"`
	Nonce       uint64      `cbor:"nonce"`
}

type RuntimeFee struct {
	Amount            BaseUnits `cbor:"amount"`
	Gas               uint64    `cbor:"gas,omitempty"`
	ConsensusMessages uint32    `cbor:"consensus_messages,omitempty"`
}

type AuthInfo struct {
	SignerInfo []SignerInfo `cbor:"si"`
	Fee        RuntimeFee   `cbor:"fee"`
}

// RuntimeTransaction is an unsigned runtime transaction.
type RuntimeTransaction struct {
	Version  uint16   `cbor:"v"`
	Call     Call     `cbor:"call"`
	AuthInfo AuthInfo `cbor:"ai"`
}

type AuthProof struct {
	Signature []byte `cbor:"signature,omitempty"`
}

type UnverifiedTransaction struct {
	_ struct{} `cbor:",toarray"`

	Body       []byte
	AuthProofs []AuthProof
}

// Deposit moves consensus funds of the signer into To's runtime account.
type Deposit struct {
	To     *address.Address `cbor:"to,omitempty"`
	Amount BaseUnits        `cbor:"amount"`
}

// Transfer moves runtime funds of the signer to To.
type Transfer struct {
	To     address.Address `cbor:"to"`
	Amount BaseUnits       `cbor:"amount"`
}

// NewSignerInfo describes s as the single signer with the given runtime nonce.
func NewSignerInfo(s signer.ContextSigner, nonce uint64) (SignerInfo, error) {
	var pk PublicKey
	switch s.Scheme() {
	case signer.SchemeEd25519:
		pk.Ed25519 = s.Public()
	case signer.SchemeSecp256k1Eth:
		pk.Secp256k1Eth = s.Public()
	default:
		return SignerInfo{}, errors.Errorf("unsupported signature scheme %q", s.Scheme())
	}

	return SignerInfo{AddressSpec: AddressSpec{Signature: &pk}, Nonce: nonce}, nil
}

// NewRuntimeTx wraps a call body into a single-signer runtime transaction.
func NewRuntimeTx(method string, body any, si SignerInfo, fee RuntimeFee) (*RuntimeTransaction, error) {
	raw, err := Marshal(body)
	if err != nil {
		return nil, errors.Wrapf(err, "%s body", method)
	}

	return &RuntimeTransaction{
		Version: LatestVersion,
		Call: Call{
			Method: method,
			Body:   raw,
		},
		AuthInfo: AuthInfo{
			SignerInfo: []SignerInfo{si},
			Fee:        fee,
		},
	}, nil
}

// NewDeposit builds a consensus.Deposit of amount (runtime units) into to.
func NewDeposit(to address.Address, amount *big.Int, si SignerInfo, gas uint64) (*RuntimeTransaction, error) {
	units, err := NativeUnits(amount)
	if err != nil {
		return nil, errors.Wrap(err, "deposit amount")
	}

	return NewRuntimeTx(MethodDeposit, Deposit{To: &to, Amount: units}, si, RuntimeFee{
		Amount:            BaseUnits{Denomination: NativeDenomination},
		Gas:               gas,
		ConsensusMessages: 1,
	})
}

// NewTransfer builds an accounts.Transfer of amount to to, paying fee.
func NewTransfer(to address.Address, amount, fee *big.Int, si SignerInfo, gas uint64) (*RuntimeTransaction, error) {
	units, err := NativeUnits(amount)
	if err != nil {
		return nil, errors.Wrap(err, "transfer amount")
	}

	feeUnits, err := NativeUnits(fee)
	if err != nil {
		return nil, errors.Wrap(err, "transfer fee")
	}

	return NewRuntimeTx(MethodTransfer, Transfer{To: to, Amount: units}, si, RuntimeFee{
		Amount: feeUnits,
		Gas:    gas,
	})
}

// SignRuntime signs tx for the runtime runtimeID running on the consensus chain
// consensusChainContext.
func SignRuntime(s signer.ContextSigner, runtimeID []byte, consensusChainContext string, tx *RuntimeTransaction) (*UnverifiedTransaction, error) {
	raw, err := Marshal(tx)
	if err != nil {
		return nil, err
	}

	context := signer.ChainContext(RuntimeTxContext, signer.RuntimeChainContext(runtimeID, consensusChainContext))

	sig, err := s.ContextSign(context, raw)
	if err != nil {
		return nil, errors.Wrap(err, "sign runtime transaction")
	}

	return &UnverifiedTransaction{
		Body:       raw,
		AuthProofs: []AuthProof{{Signature: sig}},
	}, nil
}
