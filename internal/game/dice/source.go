package dice

import (
	"crypto/rand"
	"fmt"
	"math/big"
	mrand "math/rand/v2"
	"sync"
)

// SourceFunc adapts a draw function to Source. Intn rejects n <= 0 before
// calling the function, so implementations only see positive bounds.
type SourceFunc func(n int) int

// Intn implements Source.
//
// Precondition: n > 0. Panics otherwise.
func (f SourceFunc) Intn(n int) int {
	if n <= 0 {
		panic(fmt.Sprintf("dice: Intn called with n = %d", n))
	}
	return f(n)
}

// NewCryptoSource returns a Source backed by crypto/rand. It is used when no
// seed is configured.
func NewCryptoSource() Source {
	return SourceFunc(func(n int) int {
		v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
		if err != nil {
			panic("dice: crypto/rand failure: " + err.Error())
		}
		return int(v.Int64())
	})
}

// NewSeededSource returns a reproducible PCG-backed Source that is safe for
// concurrent use. Equal seeds yield equal sequences.
func NewSeededSource(seed uint64) Source {
	var mu sync.Mutex
	rng := mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return SourceFunc(func(n int) int {
		mu.Lock()
		defer mu.Unlock()
		return rng.IntN(n)
	})
}
