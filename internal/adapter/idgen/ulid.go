package idgen

import (
	"crypto/rand"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ULIDGenerator generates message IDs that sort by creation time.
type ULIDGenerator struct {
	mu      sync.Mutex
	entropy io.Reader
	now     func() time.Time
}

// NewULIDGenerator creates a ULIDGenerator. IDs created within the same
// millisecond increase monotonically.
func NewULIDGenerator() *ULIDGenerator {
	return NewULIDGeneratorWith(rand.Reader, time.Now)
}

// NewULIDGeneratorWith uses entropy and now instead of the defaults.
func NewULIDGeneratorWith(entropy io.Reader, now func() time.Time) *ULIDGenerator {
	return &ULIDGenerator{
		entropy: ulid.Monotonic(entropy, 0),
		now:     now,
	}
}

// Generate generates a new ULID.
func (g *ULIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(g.now()), g.entropy).String()
}
