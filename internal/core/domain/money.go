package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrAmountOutOfRange is returned for amounts that do not fit a decimal(12,2) column.
var ErrAmountOutOfRange = errors.New("amount out of range")

// MaxAmount is the largest magnitude a challan amount column can hold.
var MaxAmount = decimal.RequireFromString("9999999999.99")

// ValidateAmount rejects amounts whose magnitude exceeds MaxAmount or that carry
// more than two fractional digits.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.Abs().GreaterThan(MaxAmount) {
		return fmt.Errorf("%w: %s exceeds %s", ErrAmountOutOfRange, amount.String(), MaxAmount.StringFixed(2))
	}
	if !amount.Equal(amount.Truncate(2)) {
		return fmt.Errorf("%w: %s has more than two decimal places", ErrAmountOutOfRange, amount.String())
	}
	return nil
}
