package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts go over the wire as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Payload is a mock payment message of any kind.
type Payload interface {
	Kind() Kind
	// Validate checks the kind's constraints. Legacy kinds always pass.
	Validate() error
	// Summary is a one-line human-readable description.
	Summary() string
}

// Timestamp formats t the way every payload carries time: UTC RFC 3339.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
