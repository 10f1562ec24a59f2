package rng

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Crypto draws from crypto/rand, it is the generator used to shuffle live decks
type Crypto struct{}

// Intn returns a random number from 0 <= x < n
// It panics if n <= 0 or the system source fails, a deck must never be dealt
// from a predictable order.
func (Crypto) Intn(n int) int {
	if n <= 0 {
		panic(fmt.Sprintf("rng: invalid bound %d", n))
	}

	b, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(fmt.Errorf("rng: %w", err))
	}

	return int(b.Int64())
}
