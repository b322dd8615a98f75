package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxPaymentAmount = "1000000000000" // 1 trillion
	MinPaymentAmount = "0.01"
)

// Valid currency codes (ISO 4217)
var validCurrencies = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "JPY": true,
	"CNY": true, "AUD": true, "CAD": true, "CHF": true,
	"SEK": true, "NZD": true, "KRW": true, "SGD": true,
	"NOK": true, "MXN": true, "INR": true, "BRL": true,
	"ZAR": true, "RUB": true, "TRY": true, "HKD": true,
	"KES": true, "NGN": true,
}

var (
	businessRegIDPattern = regexp.MustCompile(`^BR[0-9]{6}$`)
	citizenIDPattern     = regexp.MustCompile(`^CIT[0-9]{7}$`)
)

// ValidateBusinessRegID validates a business registration number (BR + 6 digits).
func ValidateBusinessRegID(id string) error {
	return validateIdentifier(id, businessRegIDPattern)
}

// ValidateCitizenID validates a citizen identifier (CIT + 7 digits).
func ValidateCitizenID(id string) error {
	return validateIdentifier(id, citizenIDPattern)
}

func validateIdentifier(id string, pattern *regexp.Regexp) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: must not be empty", ErrInvalidIdentifier)
	}

	if !pattern.MatchString(id) {
		return fmt.Errorf("%w: %q does not match %s", ErrInvalidIdentifier, id, pattern)
	}

	return nil
}

// ValidateCurrency validates currency code
func ValidateCurrency(currency string) error {
	if !validCurrencies[currency] {
		return fmt.Errorf("%w: %s is not a supported ISO 4217 currency code", ErrInvalidCurrency, currency)
	}

	return nil
}

// ValidateAmount validates a payment amount
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	minAmount, _ := decimal.NewFromString(MinPaymentAmount)
	if amount.LessThan(minAmount) {
		return fmt.Errorf("%w: minimum amount is %s", ErrInvalidAmount, MinPaymentAmount)
	}

	maxAmount, _ := decimal.NewFromString(MaxPaymentAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxPaymentAmount)
	}

	return nil
}

// ValidateProducts validates a product-name to quantity basket.
func ValidateProducts(products map[string]int) error {
	if len(products) == 0 {
		return ErrEmptyProducts
	}

	for name, qty := range products {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: product name must not be empty", ErrEmptyProducts)
		}
		if qty < 1 {
			return fmt.Errorf("%w: %s has quantity %d", ErrInvalidQuantity, name, qty)
		}
	}

	return nil
}

// ValidateTimestamp requires a non-empty RFC 3339 timestamp.
func ValidateTimestamp(ts string) error {
	if ts == "" {
		return fmt.Errorf("%w: must not be empty", ErrInvalidTimestamp)
	}

	if _, err := time.Parse(time.RFC3339Nano, ts); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimestamp, err)
	}

	return nil
}
