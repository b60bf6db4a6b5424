// Package money holds the fixed-precision amount type shared by the fee
// ledger and payroll engines. Amounts are always stored and computed at two
// decimal places; floats never enter the pipeline.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a fixed-point monetary value (2dp). The zero value is 0.00.
// It embeds decimal.Decimal, so it scans/values against numeric columns and
// (un)marshals JSON like its underlying decimal.
type Amount struct {
	decimal.Decimal
}

var Zero = Amount{}

func New(d decimal.Decimal) Amount {
	return Amount{d.Round(2)}
}

func FromInt(n int64) Amount {
	return Amount{decimal.NewFromInt(n)}
}

// FromString parses a decimal string ("1500", "1500.50"). Scientific
// notation and more than two decimal places are rejected.
func FromString(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, fmt.Errorf("invalid amount %q", s)
	}
	if d.Exponent() < -2 {
		return Zero, fmt.Errorf("amount %q has more than two decimal places", s)
	}
	return Amount{d.Round(2)}, nil
}

// UnmarshalJSON accepts quoted or bare decimal numbers and enforces the same
// two-decimal-place rule as FromString. Without this, request bodies would
// inherit the embedded decimal's parser and sub-cent amounts like 0.004
// would slip past validation only to round away to a zero balance movement.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	v, err := FromString(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

func (a Amount) Add(b Amount) Amount {
	return Amount{a.Decimal.Add(b.Decimal).Round(2)}
}

func (a Amount) Sub(b Amount) Amount {
	return Amount{a.Decimal.Sub(b.Decimal).Round(2)}
}

func (a Amount) Neg() Amount {
	return Amount{a.Decimal.Neg()}
}

func (a Amount) Cmp(b Amount) int {
	return a.Decimal.Cmp(b.Decimal)
}

func (a Amount) Equal(b Amount) bool {
	return a.Decimal.Equal(b.Decimal)
}

func (a Amount) IsZero() bool {
	return a.Decimal.IsZero()
}

func (a Amount) IsPositive() bool {
	return a.Decimal.IsPositive()
}

func (a Amount) IsNegative() bool {
	return a.Decimal.IsNegative()
}

// Sum folds amounts starting from zero.
func Sum(amounts ...Amount) Amount {
	total := Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
