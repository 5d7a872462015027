package domain

import (
	"fmt"
	"math"

	"github.com/Rhymond/go-money"
)

// Money represents a monetary amount in a specific currency, stored in minor units (e.g. centavos for BRL).
// The currency is a tag carried through the report pipeline; no conversion between currencies ever happens.
type Money struct {
	MinorUnit int64  `json:"minorUnits"` // Amount in the currency's smallest unit (e.g. 4590 for R$45.90 BRL)
	Currency  string `json:"currency"`   // ISO4217 Alpha Currency code (e.g. BRL, USD, EUR)
}

// MoneyFromMajorUnit builds a Money from an amount expressed in major units (e.g. 45.90).
// Unknown currency codes are assumed to have two fraction digits.
func MoneyFromMajorUnit(amount float64, currencyCode string) Money {
	fraction := 2
	if currency := money.GetCurrency(currencyCode); currency != nil {
		fraction = currency.Fraction
	}

	return Money{
		MinorUnit: int64(math.Round(amount * math.Pow10(fraction))),
		Currency:  currencyCode,
	}
}

// ToMajorUnit converts the Money amount from minor units to major units (e.g., centavos to reais).
// If the currency is invalid or not found, it returns the minor unit as a float64 without conversion.
func (m Money) ToMajorUnit() float64 {
	currency := money.GetCurrency(m.Currency)
	if currency == nil {
		return float64(m.MinorUnit)
	}

	return float64(m.MinorUnit) / math.Pow10(currency.Fraction)
}

// Add returns the sum of two amounts, keeping the receiver's currency tag.
// Amounts are summed in minor units; mixed tags are summed as-is, never converted.
func (m Money) Add(other Money) Money {
	return Money{MinorUnit: m.MinorUnit + other.MinorUnit, Currency: m.Currency}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.MinorUnit == 0
}

// String returns the amount in major units with the currency's fractional precision, e.g. "45.90".
// Negative amounts render with a leading sign.
func (m Money) String() string {
	currency := money.GetCurrency(m.Currency)
	if currency == nil {
		return fmt.Sprintf("invalid currency: %d (%s)", m.MinorUnit, m.Currency)
	}

	return fmt.Sprintf("%.*f", currency.Fraction, m.ToMajorUnit())
}

// Display returns the amount rendered with the currency's symbol and separators, e.g. "R$45.90".
func (m Money) Display() string {
	return money.New(m.MinorUnit, m.Currency).Display()
}
