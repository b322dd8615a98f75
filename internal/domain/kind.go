package domain

import "fmt"

// Kind identifies a payload format.
type Kind string

// Supported payload kinds.
const (
	KindC2B                Kind = "c2b"
	KindISO8583            Kind = "iso8583"
	KindISO20022           Kind = "iso20022"
	KindCitizenToBusiness  Kind = "CitizenToBusiness"
	KindBusinessToBusiness Kind = "BusinessToBusiness"
)

// LegacyKinds are the untyped formats sampled when no format is requested.
var LegacyKinds = []Kind{KindISO8583, KindISO20022, KindC2B}

// Kinds lists every supported kind in CLI order.
var Kinds = []Kind{KindISO8583, KindISO20022, KindC2B, KindCitizenToBusiness, KindBusinessToBusiness}

// ParseKind resolves an exact, case-sensitive format identifier.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Legacy reports whether the kind is one of the untyped formats.
func (k Kind) Legacy() bool {
	switch k {
	case KindC2B, KindISO8583, KindISO20022:
		return true
	default:
		return false
	}
}

func (k Kind) String() string {
	return string(k)
}
