package kernel

import (
	"fmt"

	"orders/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal digits money is rounded to at output
// time. Intermediate arithmetic keeps full precision so rounding error never
// compounds across many bookings.
const MoneyScale = 2

// ErrMoneyIsNotConstructed is returned when validating a zero-value Money
// that bypassed the factory functions.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"Money must be created via NewMoney, NewMoneyFromString, or ZeroMoney")

// Money is an amount tagged with a currency code. Arithmetic across two
// different currencies fails with CurrencyMismatch; rounding happens exactly
// once, when the amount is rendered via Rounded or String.
//
// Money is immutable: every operation returns a new value.
//
// Example:
//
//	price, _ := kernel.NewMoneyFromString("12.50", "EUR")
//	line := price.MulQuantity(decimal.NewFromInt(3))
//	vat := line.PercentOf(rate)
type Money struct {
	amount        decimal.Decimal
	currency      string
	isConstructed bool
}

// NewMoney creates a Money value. The currency code is required and is
// immutable once set; amounts may be negative (corrections, discounts are
// validated by their owning entities).
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if currency == "" {
		return Money{}, errs.NewValueIsRequiredError("currency")
	}
	return Money{amount: amount, currency: currency, isConstructed: true}, nil
}

// NewMoneyFromString parses a decimal string amount, e.g. "10.00".
func NewMoneyFromString(amount string, currency string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(d, currency)
}

// ZeroMoney returns a zero amount in the given currency.
func ZeroMoney(currency string) (Money, error) {
	return NewMoney(decimal.Zero, currency)
}

// Validate rejects zero-value Money.
func (m Money) Validate() error {
	if !m.isConstructed {
		return ErrMoneyIsNotConstructed
	}
	return nil
}

// Amount returns the full-precision amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code.
func (m Money) Currency() string {
	return m.currency
}

func (m Money) checkCurrency(other Money) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if err := other.Validate(); err != nil {
		return err
	}
	if m.currency != other.currency {
		return errs.NewCurrencyMismatchError(m.currency, other.currency)
	}
	return nil
}

// Add returns m + other, failing with CurrencyMismatch on differing
// currencies.
func (m Money) Add(other Money) (Money, error) {
	if err := m.checkCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency, isConstructed: true}, nil
}

// Sub returns m - other, failing with CurrencyMismatch on differing
// currencies.
func (m Money) Sub(other Money) (Money, error) {
	if err := m.checkCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Sub(other.amount), currency: m.currency, isConstructed: true}, nil
}

// MulQuantity returns the amount multiplied by a quantity, keeping full
// precision.
func (m Money) MulQuantity(quantity decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(quantity), currency: m.currency, isConstructed: m.isConstructed}
}

// PercentOf returns rate percent of the amount (amount × rate ÷ 100) at full
// precision. Used for VAT derivation.
func (m Money) PercentOf(rate VATRate) Money {
	hundred := decimal.NewFromInt(100)
	return Money{
		amount:        m.amount.Mul(rate.Value()).Div(hundred),
		currency:      m.currency,
		isConstructed: m.isConstructed,
	}
}

// IsNegative reports whether the full-precision amount is below zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// IsEqual compares currency and full-precision amount.
func (m Money) IsEqual(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// Rounded returns the amount rounded half-up to MoneyScale digits. This is
// the single rounding point; callers must not round intermediates.
func (m Money) Rounded() decimal.Decimal {
	return m.amount.Round(MoneyScale)
}

// String renders the rounded amount with its currency code, e.g. "30.25 EUR".
// No locale conversion happens here; display formatting is a presentation
// concern.
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Rounded().StringFixed(MoneyScale), m.currency)
}

// ErrVATRateIsNotConstructed is returned when validating a zero-value VATRate.
var ErrVATRateIsNotConstructed = errs.NewValueIsRequiredError(
	"VATRate must be created via NewVATRate")

// VATRate is a percentage in [0, 100]. Rates are supplied by the catalog, not
// derived here.
type VATRate struct {
	value         decimal.Decimal
	isConstructed bool
}

// NewVATRate validates the percentage bounds.
func NewVATRate(value decimal.Decimal) (VATRate, error) {
	if value.IsNegative() || value.GreaterThan(decimal.NewFromInt(100)) {
		return VATRate{}, errs.NewValueIsOutOfRangeError("vat rate", value.String(), 0, 100)
	}
	return VATRate{value: value, isConstructed: true}, nil
}

// NewVATRateFromString parses a decimal percentage string, e.g. "21".
func NewVATRateFromString(value string) (VATRate, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return VATRate{}, errs.NewValueIsInvalidErrorWithCause("vat rate", err)
	}
	return NewVATRate(d)
}

// Value returns the percentage.
func (r VATRate) Value() decimal.Decimal {
	return r.value
}

// Validate rejects zero-value rates.
func (r VATRate) Validate() error {
	if !r.isConstructed {
		return ErrVATRateIsNotConstructed
	}
	return nil
}

// String returns the percentage, e.g. "21".
func (r VATRate) String() string {
	return r.value.String()
}
