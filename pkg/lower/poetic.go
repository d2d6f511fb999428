package lower

import (
	"math/big"
	"strings"
	"unicode"
)

var ten = big.NewInt(10)

// DecodePoetic reads a poetic number literal: each whitespace-separated word
// contributes one decimal digit, its count of letters and digits modulo 10,
// most significant first. The empty literal is zero.
func DecodePoetic(text string) *big.Int {
	n := new(big.Int)
	digit := new(big.Int)
	for _, word := range strings.Fields(text) {
		count := 0
		for _, r := range word {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				count++
			}
		}
		n.Mul(n, ten)
		n.Add(n, digit.SetInt64(int64(count%10)))
	}
	return n
}
