package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is an ISO 4217 code. Amounts are always carried in the currency's
// smallest unit (cents for USD, whole yen for JPY); decimals only appear at
// the edges for parsing and display.
type Currency string

const (
	USD Currency = "usd"
	EUR Currency = "eur"
	GBP Currency = "gbp"
	JPY Currency = "jpy"
	CAD Currency = "cad"
	AUD Currency = "aud"
	CHF Currency = "chf"
	MXN Currency = "mxn"
)

// Currencies lists every supported currency.
var Currencies = []Currency{USD, EUR, GBP, JPY, CAD, AUD, CHF, MXN}

// ParseCurrency matches a code case-insensitively. Unknown codes return false.
func ParseCurrency(code string) (Currency, bool) {
	c := Currency(strings.ToLower(code))
	switch c {
	case USD, EUR, GBP, JPY, CAD, AUD, CHF, MXN:
		return c, true
	}
	return "", false
}

// Code returns the lowercase ISO code, the form payment provider APIs expect.
func (c Currency) Code() string {
	return string(c)
}

func (c Currency) String() string {
	return strings.ToUpper(string(c))
}

// DecimalPlaces is fixed per currency and drives every smallest-unit
// conversion. JPY has no minor unit.
func (c Currency) DecimalPlaces() int32 {
	if c == JPY {
		return 0
	}
	return 2
}

func (c Currency) Symbol() string {
	switch c {
	case USD:
		return "$"
	case EUR:
		return "€"
	case GBP:
		return "£"
	case JPY:
		return "¥"
	case CAD:
		return "C$"
	case AUD:
		return "A$"
	case CHF:
		return "CHF "
	case MXN:
		return "MX$"
	}
	return ""
}

// ToSmallestUnit converts a decimal amount to the currency's smallest unit,
// rounding half away from zero.
func (c Currency) ToSmallestUnit(amount decimal.Decimal) int64 {
	return amount.Shift(c.DecimalPlaces()).Round(0).IntPart()
}

// FromSmallestUnit is the inverse of ToSmallestUnit and is exact.
func (c Currency) FromSmallestUnit(amount int64) decimal.Decimal {
	return decimal.NewFromInt(amount).Shift(-c.DecimalPlaces())
}

// Price is an amount in the smallest unit of its currency. Never store
// fractional currency anywhere else.
type Price struct {
	Amount   int64    `json:"amount" toml:"amount"`
	Currency Currency `json:"currency" toml:"currency"`
}

// NewPrice builds a price from a decimal amount.
func NewPrice(amount decimal.Decimal, currency Currency) Price {
	return Price{Amount: currency.ToSmallestUnit(amount), Currency: currency}
}

// PriceFromSmallestUnit builds a price from an already-minor-unit amount.
func PriceFromSmallestUnit(amount int64, currency Currency) Price {
	return Price{Amount: amount, Currency: currency}
}

func (p Price) AsDecimal() decimal.Decimal {
	return p.Currency.FromSmallestUnit(p.Amount)
}

// Display renders the price with its currency symbol, e.g. "$29.99".
// Zero-decimal currencies render the integer amount with no fractional part.
func (p Price) Display() string {
	places := p.Currency.DecimalPlaces()
	if places == 0 {
		return fmt.Sprintf("%s%d", p.Currency.Symbol(), p.Amount)
	}
	return p.Currency.Symbol() + p.AsDecimal().StringFixed(places)
}
