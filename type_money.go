package valuation

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// costPrecision is the number of fractional digits kept when a per-unit cost
// is derived from a total (total cost / quantity). Rounding happens once, at
// that point, so the same cost basis is reproduced no matter how many lots a
// later sell spans.
const costPrecision = 6

// Money represents a monetary value in a single settlement currency.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M builds a Money from any numeric type and an ISO currency code.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// currency returns the money's currency metadata.
func (m Money) currency() *money.Currency {
	// the money.New constructor is the only way to get a never-nil currency
	return money.New(0, m.cur).Currency()
}

// String formats the value with the currency's own grouping and symbol.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

func (m Money) Currency() string                { return m.cur }
func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Mul(q Quantity) Money            { return Money{value: m.value.Mul(q.value), cur: m.cur} }

// Div divides the amount by a quantity, rounding to costPrecision digits.
// This is the single place where a per-unit cost is derived, see costPrecision.
func (m Money) Div(q Quantity) Money {
	return Money{value: m.value.Div(q.value).Round(costPrecision), cur: m.cur}
}

func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

func (m Money) InexactFloat64() float64 { return m.value.InexactFloat64() }

// Decimal returns the exact amount in major units.
func (m Money) Decimal() decimal.Decimal { return m.value }

// cur makes the "" currency totally weak.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur + "!=" + b.cur)
	}
	return a.cur
}

// ValidateCurrency checks that the code is a known ISO 4217 currency.
func ValidateCurrency(code string) error {
	if money.GetCurrency(code) == nil {
		return &CurrencyError{Code: code}
	}
	return nil
}

// CurrencyError reports an unknown currency code in the transaction feed.
type CurrencyError struct{ Code string }

func (e *CurrencyError) Error() string { return fmt.Sprintf("unknown currency code %q", e.Code) }
