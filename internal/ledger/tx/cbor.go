package tx

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	// Signed bytes must be reproducible, so encoding is canonical (RFC 7049 §3.9).
	encMode, err = cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(errors.Wrap(err, "cbor encode mode"))
	}

	decMode, err = cbor.DecOptions{
		MaxNestedLevels: 32,
		DupMapKey:       cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic(errors.Wrap(err, "cbor decode mode"))
	}
}

// Marshal encodes v as canonical CBOR.
func Marshal(v any) ([]byte, error) {
	data, err := encMode.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "cbor marshal")
	}
	return data, nil
}

// MustMarshal is Marshal for values whose encoding cannot fail.
func MustMarshal(v any) []byte {
	data, err := Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}

func Unmarshal(data []byte, v any) error {
	if err := decMode.Unmarshal(data, v); err != nil {
		return errors.Wrap(err, "cbor unmarshal")
	}
	return nil
}
