package ledger

import (
	"github/chapool/sapphire-relay/internal/ledger/tx"
)

// Codec carries gRPC messages as canonical CBOR, the encoding Oasis nodes speak.
type Codec struct{}

func (Codec) Name() string {
	return "cbor"
}

func (Codec) Marshal(v any) ([]byte, error) {
	return tx.Marshal(v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	// methods without a result answer with an empty message
	if len(data) == 0 {
		return nil
	}
	return tx.Unmarshal(data, v)
}
