package tx

import (
	"math/big"

	"github.com/pkg/errors"
)

var ErrNegativeQuantity = errors.New("quantity must not be negative")

// Quantity is a non-negative arbitrary precision amount. On the wire it is the minimal
// big-endian byte string of the value; zero is the empty byte string.
type Quantity struct {
	v big.Int
}

func NewQuantity(x *big.Int) (Quantity, error) {
	var q Quantity
	if x == nil {
		return q, nil
	}
	if x.Sign() < 0 {
		return q, errors.Wrap(ErrNegativeQuantity, x.String())
	}
	q.v.Set(x)
	return q, nil
}

func QuantityFromUint64(n uint64) Quantity {
	var q Quantity
	q.v.SetUint64(n)
	return q
}

// BigInt returns a copy of the value.
func (q *Quantity) BigInt() *big.Int {
	return new(big.Int).Set(&q.v)
}

func (q *Quantity) IsZero() bool {
	return q.v.Sign() == 0
}

func (q *Quantity) String() string {
	return q.v.String()
}

func (q Quantity) MarshalCBOR() ([]byte, error) {
	raw := q.v.Bytes()
	if raw == nil {
		raw = []byte{}
	}
	return Marshal(raw)
}

func (q *Quantity) UnmarshalCBOR(data []byte) error {
	var raw []byte
	if err := Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "quantity")
	}
	q.v.SetBytes(raw)
	return nil
}
