package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateIdentifiers(t *testing.T) {
	t.Parallel()

	t.Run("valid business reg id", func(t *testing.T) {
		if err := ValidateBusinessRegID("BR123456"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("empty business reg id rejected", func(t *testing.T) {
		err := ValidateBusinessRegID("  ")
		if !errors.Is(err, ErrInvalidIdentifier) {
			t.Fatalf("expected ErrInvalidIdentifier, got %v", err)
		}
	})

	t.Run("malformed business reg id rejected", func(t *testing.T) {
		err := ValidateBusinessRegID("BR12345")
		if !errors.Is(err, ErrInvalidIdentifier) {
			t.Fatalf("expected ErrInvalidIdentifier, got %v", err)
		}
	})

	t.Run("valid citizen id", func(t *testing.T) {
		if err := ValidateCitizenID("CIT1234567"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("citizen id with wrong prefix rejected", func(t *testing.T) {
		err := ValidateCitizenID("BR1234567")
		if !errors.Is(err, ErrInvalidIdentifier) {
			t.Fatalf("expected ErrInvalidIdentifier, got %v", err)
		}
	})
}

func TestValidateCurrency(t *testing.T) {
	t.Parallel()

	for _, c := range []string{"USD", "EUR", "ZAR", "GBP", "KES", "NGN"} {
		if err := ValidateCurrency(c); err != nil {
			t.Fatalf("expected %s to be supported, got %v", c, err)
		}
	}

	if err := ValidateCurrency("usd"); !errors.Is(err, ErrInvalidCurrency) {
		t.Fatalf("expected lowercase code to be rejected, got %v", err)
	}

	if err := ValidateCurrency("XYZ"); !errors.Is(err, ErrInvalidCurrency) {
		t.Fatalf("expected ErrInvalidCurrency, got %v", err)
	}
}

func TestValidateAmount(t *testing.T) {
	t.Parallel()

	valid := decimal.NewFromFloat(100.25)
	if err := ValidateAmount(valid); err != nil {
		t.Fatalf("expected valid amount, got %v", err)
	}

	if err := ValidateAmount(decimal.Zero); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for zero, got %v", err)
	}

	if err := ValidateAmount(decimal.NewFromInt(-5)); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for negative, got %v", err)
	}

	if err := ValidateAmount(decimal.NewFromFloat(0.001)); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount below minimum, got %v", err)
	}

	huge := decimal.RequireFromString(MaxPaymentAmount).Add(decimal.NewFromInt(1))
	if err := ValidateAmount(huge); !errors.Is(err, ErrAmountTooLarge) {
		t.Fatalf("expected ErrAmountTooLarge, got %v", err)
	}
}

func TestValidateProducts(t *testing.T) {
	t.Parallel()

	if err := ValidateProducts(map[string]int{"Fuel": 2}); err != nil {
		t.Fatalf("expected valid basket, got %v", err)
	}

	if err := ValidateProducts(nil); !errors.Is(err, ErrEmptyProducts) {
		t.Fatalf("expected ErrEmptyProducts for nil basket, got %v", err)
	}

	if err := ValidateProducts(map[string]int{"": 1}); !errors.Is(err, ErrEmptyProducts) {
		t.Fatalf("expected ErrEmptyProducts for unnamed product, got %v", err)
	}

	if err := ValidateProducts(map[string]int{"Fuel": 0}); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestValidateTimestamp(t *testing.T) {
	t.Parallel()

	if err := ValidateTimestamp("2025-03-01T10:00:00.123456Z"); err != nil {
		t.Fatalf("expected valid timestamp, got %v", err)
	}

	if err := ValidateTimestamp(""); !errors.Is(err, ErrInvalidTimestamp) {
		t.Fatalf("expected ErrInvalidTimestamp for empty, got %v", err)
	}

	if err := ValidateTimestamp("yesterday"); !errors.Is(err, ErrInvalidTimestamp) {
		t.Fatalf("expected ErrInvalidTimestamp, got %v", err)
	}
}
