package report

import (
	"math/big"
	"strings"
)

// FormatUnits renders amount, given in base units with decimals places, as a decimal string
// without trailing zeros.
func FormatUnits(amount *big.Int, decimals int) string {
	if amount == nil {
		return "0"
	}

	digits := new(big.Int).Abs(amount).String()
	sign := ""
	if amount.Sign() < 0 {
		sign = "-"
	}

	if decimals <= 0 {
		return sign + digits
	}

	if len(digits) <= decimals {
		digits = strings.Repeat("0", decimals-len(digits)+1) + digits
	}

	whole := digits[:len(digits)-decimals]
	fraction := strings.TrimRight(digits[len(digits)-decimals:], "0")
	if fraction == "" {
		return sign + whole
	}

	return sign + whole + "." + fraction
}
