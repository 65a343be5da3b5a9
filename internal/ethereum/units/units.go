// Package units formats integer token amounts as fixed-point decimal
// strings.
package units

import (
	"math/big"
	"strings"
)

// Format renders amount (an integer count of the smallest unit) as a
// decimal string with decimals digits after the point, then strips
// trailing zero digits (and a bare trailing '.') so integer values omit
// the decimal part entirely. At least one digit always appears before the
// separator.
func Format(amount *big.Int, decimals int) string {
	if amount == nil {
		amount = big.NewInt(0)
	}
	neg := amount.Sign() < 0
	abs := new(big.Int).Abs(amount)

	divisor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole := new(big.Int)
	frac := new(big.Int)
	whole.QuoRem(abs, divisor, frac)

	wholeStr := whole.String()
	if decimals == 0 {
		if neg {
			return "-" + wholeStr
		}
		return wholeStr
	}

	fracStr := frac.String()
	fracStr = strings.Repeat("0", decimals-len(fracStr)) + fracStr
	fracStr = strings.TrimRight(fracStr, "0")

	var out string
	if fracStr == "" {
		out = wholeStr
	} else {
		out = wholeStr + "." + fracStr
	}
	if neg {
		out = "-" + out
	}
	return out
}
