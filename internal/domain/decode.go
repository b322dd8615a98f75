package domain

import (
	"encoding/json"
	"fmt"
)

// DetectKind infers the kind of a JSON payload from its top-level keys.
func DetectKind(body []byte) (Kind, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnknownKind, err)
	}

	has := func(key string) bool {
		_, ok := fields[key]
		return ok
	}

	switch {
	case has("mti"):
		return KindISO8583, nil
	case has("CstmrCdtTrfInitn"):
		return KindISO20022, nil
	case has("citizenID"):
		return KindCitizenToBusiness, nil
	case has("FromBusinessRegID"):
		return KindBusinessToBusiness, nil
	case has("transactionId") && has("payer"):
		return KindC2B, nil
	}

	return "", ErrUnknownKind
}

// Decode unmarshals body into the payload type for kind.
func Decode(kind Kind, body []byte) (Payload, error) {
	var p Payload
	switch kind {
	case KindC2B:
		p = &C2BEvent{}
	case KindISO8583:
		p = &ISO8583Message{}
	case KindISO20022:
		p = &CustomerCreditTransfer{}
	case KindCitizenToBusiness:
		p = &CitizenToBusiness{}
	case KindBusinessToBusiness:
		p = &BusinessToBusiness{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, kind)
	}

	if err := json.Unmarshal(body, p); err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind, err)
	}

	return p, nil
}
