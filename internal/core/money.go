// Package core holds the ledger's domain model: transactions, the
// closed kind/person enums, money amounts and derived balances.
package core

import (
	"github.com/shopspring/decimal"
)

// Amount is a decimal money quantity in currency units.
//
// It wraps shopspring/decimal so arithmetic is exact, and marshals as a
// bare JSON number to match the stored record format (`valor: 12.5`,
// not `"12.5"`). Unmarshaling accepts both bare and quoted numbers, so
// records written by older clients still decode.
type Amount struct {
	decimal.Decimal
}

// NewAmount parses a decimal string such as "12.50".
func NewAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, ErrInvalidAmount
	}
	return Amount{d}, nil
}

// MustAmount is NewAmount for literals in tests and seeds; panics on
// malformed input.
func MustAmount(s string) Amount {
	a, err := NewAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

// Validate rejects zero and negative amounts. Only drafts are
// validated; derived values such as balances may be negative.
func (a Amount) Validate() error {
	if !a.Decimal.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

func (a Amount) Add(b Amount) Amount {
	return Amount{a.Decimal.Add(b.Decimal)}
}

func (a Amount) Sub(b Amount) Amount {
	return Amount{a.Decimal.Sub(b.Decimal)}
}

func (a Amount) Abs() Amount {
	return Amount{a.Decimal.Abs()}
}

func (a Amount) Equal(b Amount) bool {
	return a.Decimal.Equal(b.Decimal)
}
