// Package randutil centralises the random sources used by the games: a
// seedable PCG generator for shuffling and a cryptographic coin for the
// single-draw 50/50 games.
package randutil

import (
	crand "crypto/rand"
	"encoding/binary"
	rand "math/rand/v2"
	"time"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from seed. Both PCG words
// are derived from the one seed so call sites only deal with an int64.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// NewFromTime returns a generator seeded from the wall clock, or from seed
// when it is non-zero.
func NewFromTime(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return New(seed)
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// Coin resolves a fair two-way outcome.
type Coin interface {
	// Flip returns true for heads.
	Flip() bool
}

// CryptoCoin draws from crypto/rand. Use it for games whose fairness must not
// depend on a predictable seed.
type CryptoCoin struct{}

// Flip returns true when the drawn word is even.
func (CryptoCoin) Flip() bool {
	var b [4]byte
	if _, err := crand.Read(b[:]); err != nil {
		panic("randutil: crypto/rand failed: " + err.Error())
	}
	return binary.LittleEndian.Uint32(b[:])%2 == 0
}

// SeededCoin flips using a deterministic generator; intended for tests and
// simulations.
type SeededCoin struct {
	rng *rand.Rand
}

// NewSeededCoin wraps rng as a Coin.
func NewSeededCoin(rng *rand.Rand) *SeededCoin {
	return &SeededCoin{rng: rng}
}

// Flip returns true for heads.
func (c *SeededCoin) Flip() bool {
	return c.rng.IntN(2) == 0
}

// FixedCoin replays a scripted sequence of outcomes, repeating the last one
// once exhausted.
type FixedCoin struct {
	outcomes []bool
	next     int
}

// NewFixedCoin returns a coin that yields outcomes in order.
func NewFixedCoin(outcomes ...bool) *FixedCoin {
	return &FixedCoin{outcomes: outcomes}
}

// Flip returns the next scripted outcome.
func (c *FixedCoin) Flip() bool {
	if len(c.outcomes) == 0 {
		return true
	}
	i := min(c.next, len(c.outcomes)-1)
	c.next++
	return c.outcomes[i]
}
