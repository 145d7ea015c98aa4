// Package random provides utilities for generating random strings and numbers.
package random

import (
	"crypto/rand"
	"math/big"
)

var (
	numSeq      [10]rune
	lowerSeq    [26]rune
	upperSeq    [26]rune
	numLowerSeq [36]rune
	allSeq      [62]rune
	passwordSeq [70]rune
)

var passwordSymbols = []rune("!@#$%^&*")

// init initializes the character sequences used for random string generation.
func init() {
	for i := 0; i < 10; i++ {
		numSeq[i] = rune('0' + i)
	}
	for i := 0; i < 26; i++ {
		lowerSeq[i] = rune('a' + i)
		upperSeq[i] = rune('A' + i)
	}

	copy(numLowerSeq[:], numSeq[:])
	copy(numLowerSeq[len(numSeq):], lowerSeq[:])

	copy(allSeq[:], numSeq[:])
	copy(allSeq[len(numSeq):], lowerSeq[:])
	copy(allSeq[len(numSeq)+len(lowerSeq):], upperSeq[:])

	copy(passwordSeq[:], allSeq[:])
	copy(passwordSeq[len(allSeq):], passwordSymbols)
}

func pick(seq []rune) rune {
	idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(seq))))
	if err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	return seq[idx.Int64()]
}

// Seq generates a random string of length n containing numbers, lowercase and
// uppercase letters.
func Seq(n int) string {
	runes := make([]rune, n)
	for i := 0; i < n; i++ {
		runes[i] = pick(allSeq[:])
	}
	return string(runes)
}

// Id generates a random record identifier of length n drawn from the
// lowercase-alphanumeric alphabet.
func Id(n int) string {
	runes := make([]rune, n)
	for i := 0; i < n; i++ {
		runes[i] = pick(numLowerSeq[:])
	}
	return string(runes)
}

// Password generates a random credential of length n drawn from letters,
// digits and the !@#$%^&* symbol set.
func Password(n int) string {
	runes := make([]rune, n)
	for i := 0; i < n; i++ {
		runes[i] = pick(passwordSeq[:])
	}
	return string(runes)
}

// Num generates a random integer between 0 and n-1.
func Num(n int) int {
	bn := big.NewInt(int64(n))
	r, err := rand.Int(rand.Reader, bn)
	if err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	return int(r.Int64())
}
