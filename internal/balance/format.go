package balance

import (
	"math/big"
)

// FormatUnits converts a smallest-unit integer into a decimal string in the
// display unit (value / 10^decimals), rounded to places fractional digits
// with halves rounded away from zero.
func FormatUnits(value *big.Int, decimals, places int) string {
	if value == nil {
		value = new(big.Int)
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	return new(big.Rat).SetFrac(value, scale).FloatString(places)
}
