package tx

import (
	"math/big"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
	"github/chapool/sapphire-relay/internal/wallet/address"
	"github/chapool/sapphire-relay/internal/wallet/signer"
)

const (
	// ConsensusTxContext is the signature context of consensus transactions.
	ConsensusTxContext = "oasis-core/consensus: tx"

	MethodAllow = "staking.Allow"
)

type Fee struct {
	Amount Quantity `cbor:"amount"`
	Gas    uint64   `cbor:"gas"`
}

// Transaction is an unsigned consensus transaction.
type Transaction struct {
	Nonce  uint64          `cbor:"nonce"`
	Fee    *Fee            `cbor:"fee,omitempty"`
	Method string          `cbor:"method"`
	Body   cbor.RawMessage `cbor:"body,omitempty"`
}

// Allow changes the allowance of Beneficiary over the signer's general balance.
type Allow struct {
	Beneficiary  address.Address `cbor:"beneficiary"`
	Negative     bool            `cbor:"negative,omitempty"`
	AmountChange Quantity        `cbor:"amount_change"`
}

type Signature struct {
	PublicKey []byte `cbor:"public_key"`
	Signature []byte `cbor:"signature"`
}

type SignedTransaction struct {
	UntrustedRawValue []byte    `cbor:"untrusted_raw_value"`
	Signature         Signature `cbor:"signature"`
}

// NewAllowance builds a staking.Allow that raises beneficiary's allowance by amount. The
// fee amount is zero; gas is filled in by the caller once estimated.
func NewAllowance(nonce uint64, beneficiary address.Address, amount *big.Int) (*Transaction, error) {
	change, err := NewQuantity(amount)
	if err != nil {
		return nil, errors.Wrap(err, "allowance amount")
	}

	body, err := Marshal(Allow{
		Beneficiary:  beneficiary,
		AmountChange: change,
	})
	if err != nil {
		return nil, err
	}

	return &Transaction{
		Nonce:  nonce,
		Fee:    &Fee{},
		Method: MethodAllow,
		Body:   body,
	}, nil
}

// SignConsensus signs tx for the consensus chain identified by chainContext.
func SignConsensus(s signer.ContextSigner, chainContext string, tx *Transaction) (*SignedTransaction, error) {
	raw, err := Marshal(tx)
	if err != nil {
		return nil, err
	}

	sig, err := s.ContextSign(signer.ChainContext(ConsensusTxContext, chainContext), raw)
	if err != nil {
		return nil, errors.Wrap(err, "sign consensus transaction")
	}

	return &SignedTransaction{
		UntrustedRawValue: raw,
		Signature: Signature{
			PublicKey: s.Public(),
			Signature: sig,
		},
	}, nil
}
