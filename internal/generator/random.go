package generator

import (
	"encoding/binary"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Source is the single random stream a generator draws from. It is not safe
// for concurrent use; the run loop owns it.
type Source struct {
	chacha *rand.ChaCha8
	r      *rand.Rand
}

// NewSource returns a source seeded with seed, or a random seed when seed is 0.
func NewSource(seed uint64) *Source {
	var key [32]byte
	if seed == 0 {
		for i := 0; i < len(key); i += 8 {
			binary.LittleEndian.PutUint64(key[i:], rand.Uint64())
		}
	} else {
		for i := 0; i < len(key); i += 8 {
			binary.LittleEndian.PutUint64(key[i:], seed+uint64(i))
		}
	}

	chacha := rand.NewChaCha8(key)
	return &Source{chacha: chacha, r: rand.New(chacha)}
}

// Read fills p with random bytes so the source can back uuid generation.
func (s *Source) Read(p []byte) (int, error) {
	return s.chacha.Read(p)
}

// IntN returns a uniform int in [0, n).
func (s *Source) IntN(n int) int {
	return s.r.IntN(n)
}

// IntRange returns a uniform int in [lo, hi].
func (s *Source) IntRange(lo, hi int) int {
	return lo + s.r.IntN(hi-lo+1)
}

// Int64Range returns a uniform int64 in [lo, hi].
func (s *Source) Int64Range(lo, hi int64) int64 {
	return lo + s.r.Int64N(hi-lo+1)
}

// Digits returns n decimal digits without a leading zero.
func (s *Source) Digits(n int) string {
	var b strings.Builder
	b.Grow(n)
	b.WriteString(strconv.Itoa(1 + s.r.IntN(9)))
	for i := 1; i < n; i++ {
		b.WriteString(strconv.Itoa(s.r.IntN(10)))
	}
	return b.String()
}

// Amount returns a uniform amount in [lo, hi] rounded to cents.
func (s *Source) Amount(lo, hi float64) decimal.Decimal {
	return decimal.NewFromFloat(lo + s.r.Float64()*(hi-lo)).Round(2)
}

// Pick returns one element of options uniformly.
func (s *Source) Pick(options []string) string {
	return options[s.r.IntN(len(options))]
}

// Sample returns k distinct elements of options in random order.
func (s *Source) Sample(options []string, k int) []string {
	perm := s.r.Perm(len(options))
	out := make([]string, 0, k)
	for _, i := range perm[:k] {
		out = append(out, options[i])
	}
	return out
}

// UUID returns a version 4 UUID drawn from the source.
func (s *Source) UUID() uuid.UUID {
	id, err := uuid.NewRandomFromReader(s)
	if err != nil {
		// ChaCha8.Read never fails.
		panic(err)
	}
	return id
}
