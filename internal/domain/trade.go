package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CitizenToBusiness is a validated purchase of a product basket by a citizen.
type CitizenToBusiness struct {
	BusinessRegID string          `json:"businessRegID"`
	CitizenID     string          `json:"citizenID"`
	Products      map[string]int  `json:"products"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Time          string          `json:"time"`
}

func (c *CitizenToBusiness) Kind() Kind { return KindCitizenToBusiness }

// Validate checks identifiers, basket, amount, currency and time.
func (c *CitizenToBusiness) Validate() error {
	if err := ValidateBusinessRegID(c.BusinessRegID); err != nil {
		return invalid(KindCitizenToBusiness, "businessRegID", err)
	}
	if err := ValidateCitizenID(c.CitizenID); err != nil {
		return invalid(KindCitizenToBusiness, "citizenID", err)
	}
	if err := ValidateProducts(c.Products); err != nil {
		return invalid(KindCitizenToBusiness, "products", err)
	}
	if err := ValidateAmount(c.Amount); err != nil {
		return invalid(KindCitizenToBusiness, "amount", err)
	}
	if err := ValidateCurrency(c.Currency); err != nil {
		return invalid(KindCitizenToBusiness, "currency", err)
	}
	return invalid(KindCitizenToBusiness, "time", ValidateTimestamp(c.Time))
}

func (c *CitizenToBusiness) Summary() string {
	return fmt.Sprintf("CitizenToBusiness %s -> %s %d products %s %s",
		c.CitizenID, c.BusinessRegID, len(c.Products), c.Amount.StringFixed(2), c.Currency)
}

// BusinessToBusiness is a validated wholesale transfer between two businesses.
type BusinessToBusiness struct {
	FromBusinessRegID string          `json:"FromBusinessRegID"`
	ToBusinessRegID   string          `json:"ToBusinessRegID"`
	Products          map[string]int  `json:"products"`
	Amount            decimal.Decimal `json:"amount"`
	Currency          string          `json:"currency"`
	Time              string          `json:"time"`
}

func (b *BusinessToBusiness) Kind() Kind { return KindBusinessToBusiness }

// Validate checks both registration numbers, that they differ, and the
// same basket, amount, currency and time rules as CitizenToBusiness.
func (b *BusinessToBusiness) Validate() error {
	if err := ValidateBusinessRegID(b.FromBusinessRegID); err != nil {
		return invalid(KindBusinessToBusiness, "FromBusinessRegID", err)
	}
	if err := ValidateBusinessRegID(b.ToBusinessRegID); err != nil {
		return invalid(KindBusinessToBusiness, "ToBusinessRegID", err)
	}
	if b.FromBusinessRegID == b.ToBusinessRegID {
		return invalid(KindBusinessToBusiness, "ToBusinessRegID", ErrSameBusiness)
	}
	if err := ValidateProducts(b.Products); err != nil {
		return invalid(KindBusinessToBusiness, "products", err)
	}
	if err := ValidateAmount(b.Amount); err != nil {
		return invalid(KindBusinessToBusiness, "amount", err)
	}
	if err := ValidateCurrency(b.Currency); err != nil {
		return invalid(KindBusinessToBusiness, "currency", err)
	}
	return invalid(KindBusinessToBusiness, "time", ValidateTimestamp(b.Time))
}

func (b *BusinessToBusiness) Summary() string {
	return fmt.Sprintf("BusinessToBusiness %s -> %s %d products %s %s",
		b.FromBusinessRegID, b.ToBusinessRegID, len(b.Products), b.Amount.StringFixed(2), b.Currency)
}
