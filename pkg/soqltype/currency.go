package soqltype

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/currency"

	"github.com/leapstack-labs/leapsoql/pkg/core"
)

// Currency is an amount in an ISO 4217 currency, written USD49.99 in
// queries.
type Currency struct {
	Unit   currency.Unit
	Amount string
}

// NewCurrency returns amount in the currency code, rounded to the
// currency's standard number of decimals.
func NewCurrency(code string, amount float64) (Currency, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return Currency{}, fmt.Errorf("%w code %q", ErrInvalidCurrency, code)
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Currency{}, fmt.Errorf("%w amount %v", ErrInvalidCurrency, amount)
	}
	scale, _ := currency.Standard.Rounding(unit)
	return Currency{Unit: unit, Amount: strconv.FormatFloat(amount, 'f', scale, 64)}, nil
}

// ParseCurrency parses a currency literal such as EUR10.5.
func ParseCurrency(s string) (Currency, error) {
	code, amount, ok := core.SplitCurrency(s)
	if !ok {
		return Currency{}, fmt.Errorf("%w %q", ErrInvalidCurrency, s)
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return Currency{}, fmt.Errorf("%w code %q", ErrInvalidCurrency, code)
	}
	return Currency{Unit: unit, Amount: amount}, nil
}

// Code returns the ISO code.
func (c Currency) Code() string {
	return c.Unit.String()
}

// Float returns the amount as a float64.
func (c Currency) Float() (float64, error) {
	return strconv.ParseFloat(c.Amount, 64)
}

func (c Currency) String() string {
	return c.Code() + c.Amount
}

// Literal returns the currency as a query literal.
func (c Currency) Literal() core.Value {
	return &core.CurrencyLiteral{Code: c.Code(), Amount: c.Amount}
}
