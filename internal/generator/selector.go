package generator

import (
	"github.com/localize/datagen/internal/domain"
)

// FormatRandom asks for a fresh legacy kind on every iteration.
const FormatRandom = "random"

// Mode describes how a Selector picks kinds.
type Mode int

const (
	// ModeOmitted is used when no format was requested.
	ModeOmitted Mode = iota
	// ModeRandom is used for an explicit "random" format. It samples exactly
	// like ModeOmitted; the two are kept apart so callers can tell them apart.
	ModeRandom
	// ModeFixed always yields the requested kind.
	ModeFixed
)

func (m Mode) String() string {
	switch m {
	case ModeOmitted:
		return "omitted"
	case ModeRandom:
		return "random"
	case ModeFixed:
		return "fixed"
	default:
		return "unknown"
	}
}

// Selector resolves the kind to build for each iteration.
type Selector struct {
	mode Mode
	kind domain.Kind
	rnd  *Source
}

// NewSelector parses a requested format. An empty format selects
// ModeOmitted; an unrecognized one fails with domain.ErrUnknownFormat.
func NewSelector(format string, rnd *Source) (*Selector, error) {
	switch format {
	case "":
		return &Selector{mode: ModeOmitted, rnd: rnd}, nil
	case FormatRandom:
		return &Selector{mode: ModeRandom, rnd: rnd}, nil
	}

	kind, err := domain.ParseKind(format)
	if err != nil {
		return nil, err
	}

	return &Selector{mode: ModeFixed, kind: kind, rnd: rnd}, nil
}

// Mode returns the selection mode.
func (s *Selector) Mode() Mode {
	return s.mode
}

// Next returns the kind for the next iteration.
func (s *Selector) Next() domain.Kind {
	if s.mode == ModeFixed {
		return s.kind
	}

	return domain.LegacyKinds[s.rnd.IntN(len(domain.LegacyKinds))]
}

// Formats lists every accepted --format value.
func Formats() []string {
	out := make([]string, 0, len(domain.Kinds)+1)
	for _, k := range domain.Kinds {
		out = append(out, string(k))
	}
	return append(out, FormatRandom)
}
