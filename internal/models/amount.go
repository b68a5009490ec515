package models

import (
	"bytes"
	"errors"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the only denomination the ledger records.
const Currency = money.BRL

// MaxAmountExponent bounds the decimal exponent of parsed amounts in both
// directions, so "1e500" and "0.0000000000001" are refused before any
// arithmetic runs on them.
const MaxAmountExponent = 12

// MaxAmount is the largest magnitude accepted from input or storage.
var MaxAmount = decimal.New(1, 12)

var (
	ErrAmountNotNumeric = errors.New("amount is not numeric")
	ErrAmountOutOfRange = errors.New("amount is out of range")
)

var (
	minCents = decimal.NewFromInt(math.MinInt64)
	maxCents = decimal.NewFromInt(math.MaxInt64)
)

func checkAmountRange(value decimal.Decimal) error {
	exponent := value.Exponent()
	if exponent > MaxAmountExponent || exponent < -MaxAmountExponent {
		return ErrAmountOutOfRange
	}
	if value.Abs().GreaterThan(MaxAmount) {
		return ErrAmountOutOfRange
	}
	return nil
}

// Amount is an exact monetary value in the major unit of Currency.
type Amount struct {
	value decimal.Decimal
}

func NewAmount[T float64 | int | int64 | decimal.Decimal](value T) Amount {
	switch v := any(value).(type) {
	case float64:
		return Amount{value: decimal.NewFromFloat(v)}
	case int:
		return Amount{value: decimal.NewFromInt(int64(v))}
	case int64:
		return Amount{value: decimal.NewFromInt(v)}
	case decimal.Decimal:
		return Amount{value: v}
	}
	return Amount{}
}

// ParseAmount reads user input such as "1500.50", "1500,50" or "1.500,50".
func ParseAmount(raw string) (Amount, error) {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "R$")
	text = strings.TrimSpace(text)
	if text == "" {
		return Amount{}, ErrAmountNotNumeric
	}
	if strings.Contains(text, ",") {
		// pt-BR notation: dots group thousands, the comma separates decimals.
		text = strings.ReplaceAll(text, ".", "")
		text = strings.Replace(text, ",", ".", 1)
	}
	value, err := decimal.NewFromString(text)
	if err != nil {
		return Amount{}, ErrAmountNotNumeric
	}
	if err := checkAmountRange(value); err != nil {
		return Amount{}, err
	}
	return Amount{value: value}, nil
}

func MustParseAmount(raw string) Amount {
	amount, err := ParseAmount(raw)
	if err != nil {
		panic(err)
	}
	return amount
}

func (a Amount) Decimal() decimal.Decimal  { return a.value }
func (a Amount) IsZero() bool              { return a.value.IsZero() }
func (a Amount) IsPositive() bool          { return a.value.IsPositive() }
func (a Amount) IsNegative() bool          { return a.value.IsNegative() }
func (a Amount) Equal(b Amount) bool       { return a.value.Equal(b.value) }
func (a Amount) Add(b Amount) Amount       { return Amount{value: a.value.Add(b.value)} }
func (a Amount) Sub(b Amount) Amount       { return Amount{value: a.value.Sub(b.value)} }
func (a Amount) GreaterThan(b Amount) bool { return a.value.GreaterThan(b.value) }
func (a Amount) InexactFloat64() float64   { return a.value.InexactFloat64() }
func (a Amount) String() string            { return a.value.String() }

// Format renders the amount the way the dashboard shows it, e.g. "R$1.500,50".
func (a Amount) Format() string {
	currency := money.GetCurrency(Currency)
	cents := a.value.Shift(int32(currency.Fraction)).Round(0)
	if cents.GreaterThan(maxCents) || cents.LessThan(minCents) {
		return formatCents(currency, cents)
	}
	return currency.Formatter().Format(cents.IntPart())
}

// formatCents lays out cents with the currency template when the value does
// not fit the int64 the money formatter takes.
func formatCents(currency *money.Currency, cents decimal.Decimal) string {
	digits := cents.Abs().String()
	for len(digits) <= currency.Fraction {
		digits = "0" + digits
	}
	whole := digits[:len(digits)-currency.Fraction]

	var grouped strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteString(currency.Thousand)
		}
		grouped.WriteRune(digit)
	}
	if currency.Fraction > 0 {
		grouped.WriteString(currency.Decimal)
		grouped.WriteString(digits[len(digits)-currency.Fraction:])
	}

	text := strings.Replace(currency.Template, "1", grouped.String(), 1)
	text = strings.Replace(text, "$", currency.Grapheme, 1)
	if cents.IsNegative() {
		text = "-" + text
	}
	return text
}

// MarshalJSON writes a bare JSON number so stored records stay compatible with
// the browser format.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.value.String()), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		a.value = decimal.Zero
		return nil
	}
	trimmed = bytes.Trim(trimmed, `"`)
	value, err := decimal.NewFromString(string(trimmed))
	if err != nil {
		return ErrAmountNotNumeric
	}
	if err := checkAmountRange(value); err != nil {
		return err
	}
	a.value = value
	return nil
}
