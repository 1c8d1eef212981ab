package kernel

import (
	"fmt"

	"ferryops/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrMoneyIsNegative is returned when a negative amount is used to build Money.
var ErrMoneyIsNegative = errs.NewValueIsInvalidError("money amount must not be negative")

// Money is a non-negative monetary amount (order supply amounts, booking
// payments). The currency is implicit and uniform across the system (KES).
//
// Amounts keep the precision they were created with; no rounding is applied,
// so a value rendered on a receipt equals the stored one exactly.
//
// Example:
//
//	amount, err := kernel.MoneyFromString("2000.50")
//	if err != nil {
//	    return err
//	}
//	total := amount.Add(kernel.ZeroMoney())
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns a Money of 0.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoney wraps a decimal amount, rejecting negative values.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"money amount must not be negative",
			fmt.Errorf("%s is less than 0", amount.String()),
		)
	}
	return Money{amount: amount}, nil
}

// MoneyFromString parses a decimal string such as "2000" or "149.99".
func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money amount", err)
	}
	return NewMoney(amount)
}

// MustMoney builds Money from an integer number of shillings and panics on
// negative input. Intended for constants and tests.
func MustMoney(units int64) Money {
	m, err := NewMoney(decimal.NewFromInt(units))
	if err != nil {
		panic(err)
	}
	return m
}

// Decimal returns the underlying amount.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// IsZero reports whether the amount is 0.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive reports whether the amount is greater than 0.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Add returns the sum of both amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// IsEqual compares amounts numerically, so 10 and 10.00 are equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) String() string {
	return m.amount.String()
}
