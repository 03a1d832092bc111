package gacha

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RandomSource abstracts the randomness feeding a draw so results are
// deterministically testable.
type RandomSource interface {
	Float64() float64 // [0, 1)
}

// cryptoRNG is the default source, backed by crypto/rand.
type cryptoRNG struct{}

func (cryptoRNG) Float64() float64 {
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		// fall back to math/rand/v2
		return rand.Float64()
	}
	// top 53 bits give a uniform float in [0,1)
	u := binary.BigEndian.Uint64(buf[:]) >> 11
	return float64(u) / (1 << 53)
}

// DefaultRNG returns the crypto-backed source used in production draws.
func DefaultRNG() RandomSource { return cryptoRNG{} }

// seededRNG is a replicable source for statistical tests.
type seededRNG struct{ r *rand.Rand }

// NewSeededRNG returns a deterministic PCG-backed source.
func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 { return s.r.Float64() }
