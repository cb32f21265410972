package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"fjacquet/fiobank/internal/fioerror"
)

var errNotFinite = errors.New("amount is not a finite number")

// NumericMode selects how monetary values are represented.
// NumericFloat amounts are float64 and may lose cent-level precision;
// NumericDecimal amounts are arbitrary-precision decimals.
type NumericMode int

const (
	NumericFloat NumericMode = iota
	NumericDecimal
)

// String returns the mode name.
func (m NumericMode) String() string {
	if m == NumericDecimal {
		return "decimal"
	}
	return "float"
}

// Amount is a monetary value in the representation chosen by its NumericMode.
type Amount struct {
	mode NumericMode
	f    float64
	d    decimal.Decimal
}

// NewFloatAmount creates a float-mode amount.
func NewFloatAmount(f float64) Amount {
	return Amount{mode: NumericFloat, f: f}
}

// NewDecimalAmount creates a decimal-mode amount.
func NewDecimalAmount(d decimal.Decimal) Amount {
	return Amount{mode: NumericDecimal, d: d}
}

// ParseAmount converts a raw API value into an Amount using mode.
// Numbers decoded with json.Number keep their textual precision in decimal mode.
func (m NumericMode) ParseAmount(value any) (Amount, error) {
	switch v := value.(type) {
	case json.Number:
		return m.parseString(v.String())
	case string:
		return m.parseString(strings.TrimSpace(v))
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Amount{}, &fioerror.ParseError{Field: "amount", Value: strconv.FormatFloat(v, 'g', -1, 64), Err: errNotFinite}
		}
		if m == NumericDecimal {
			return NewDecimalAmount(decimal.NewFromFloat(v)), nil
		}
		return NewFloatAmount(v), nil
	case int:
		if m == NumericDecimal {
			return NewDecimalAmount(decimal.NewFromInt(int64(v))), nil
		}
		return NewFloatAmount(float64(v)), nil
	case int64:
		if m == NumericDecimal {
			return NewDecimalAmount(decimal.NewFromInt(v)), nil
		}
		return NewFloatAmount(float64(v)), nil
	case decimal.Decimal:
		if m == NumericDecimal {
			return NewDecimalAmount(v), nil
		}
		return NewFloatAmount(v.InexactFloat64()), nil
	case Amount:
		if v.mode == m {
			return v, nil
		}
		if m == NumericDecimal {
			return NewDecimalAmount(v.Decimal()), nil
		}
		return NewFloatAmount(v.Float64()), nil
	}
	return Amount{}, &fioerror.TypeError{Value: value, Expected: "amount"}
}

// parseString accepts decimal syntax in both modes. Non-finite and hex
// float strings fail even in float mode.
func (m NumericMode) parseString(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, &fioerror.ParseError{Field: "amount", Value: s, Err: err}
	}
	if m == NumericDecimal {
		return NewDecimalAmount(d), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Amount{}, &fioerror.ParseError{Field: "amount", Value: s, Err: err}
	}
	return NewFloatAmount(f), nil
}

// Mode returns the representation of the amount.
func (a Amount) Mode() NumericMode {
	return a.mode
}

// Float64 returns the amount as float64.
// Note: for decimal amounts this can introduce precision errors.
func (a Amount) Float64() float64 {
	if a.mode == NumericDecimal {
		return a.d.InexactFloat64()
	}
	return a.f
}

// Decimal returns the amount as a decimal.
func (a Amount) Decimal() decimal.Decimal {
	if a.mode == NumericDecimal {
		return a.d
	}
	return decimal.NewFromFloat(a.f)
}

// Value returns the underlying float64 or decimal.Decimal.
func (a Amount) Value() any {
	if a.mode == NumericDecimal {
		return a.d
	}
	return a.f
}

// Equal compares two amounts by magnitude, regardless of mode.
func (a Amount) Equal(other Amount) bool {
	return a.Decimal().Equal(other.Decimal())
}

// String returns the amount without currency, as the API would print it.
func (a Amount) String() string {
	if a.mode == NumericDecimal {
		return a.d.String()
	}
	return strconv.FormatFloat(a.f, 'f', -1, 64)
}

// StringFixed returns the amount rounded to the given number of places.
func (a Amount) StringFixed(places int32) string {
	return a.Decimal().StringFixed(places)
}

// MarshalJSON writes the amount as a bare JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// MarshalYAML writes the amount as a plain YAML number.
func (a Amount) MarshalYAML() (interface{}, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: a.String()}, nil
}

// GoString helps test failure output.
func (a Amount) GoString() string {
	return fmt.Sprintf("models.Amount{%s %s}", a.mode, a.String())
}
