package runtime

import (
	"math/big"
	"strings"
)

// TextBase is the radix used to pack characters into a number.
const TextBase = 1000

// replacementCode stands in for characters whose code does not fit one digit.
const replacementCode = '?'

var textBase = big.NewInt(TextBase)

// PackText encodes s as base-1000 digits, one per character, first character
// most significant.
func PackText(s string) *big.Int {
	n := new(big.Int)
	digit := new(big.Int)
	for _, r := range s {
		if r >= TextBase {
			r = replacementCode
		}
		n.Mul(n, textBase)
		n.Add(n, digit.SetInt64(int64(r)))
	}
	return n
}

// UnpackText decodes base-1000 digits back into characters. Zero digits are
// kept as NUL characters except at the most significant end.
func UnpackText(n *big.Int) string {
	if n.Sign() <= 0 {
		return ""
	}
	var digits []rune
	rest := new(big.Int).Set(n)
	digit := new(big.Int)
	for rest.Sign() > 0 {
		rest.QuoRem(rest, textBase, digit)
		digits = append(digits, rune(digit.Int64()))
	}
	var b strings.Builder
	for i := len(digits) - 1; i >= 0; i-- {
		b.WriteRune(digits[i])
	}
	return b.String()
}
