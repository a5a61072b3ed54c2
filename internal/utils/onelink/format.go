// Package onelink encodes billing values into the fixed-width fields used by
// the 1Link bill inquiry and payment interchange.
package onelink

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// AmountWidth is the number of digits after the sign in an encoded amount.
	AmountWidth = 13
	// DateWidth is the width of an encoded date.
	DateWidth = 8
	// DefaultInstallment is used when no installment sequence is supplied.
	DefaultInstallment = "01"
)

var (
	hundred      = decimal.NewFromInt(100)
	maxMinorUnit = decimal.RequireFromString(strings.Repeat("9", AmountWidth))
	blankDate    = strings.Repeat(" ", DateWidth)
)

// FormatAmount encodes amount as a sign followed by 13 digits of minor units.
// Fractions of a minor unit are truncated. Magnitudes that do not fit 13 digits
// saturate at all nines.
func FormatAmount(amount decimal.Decimal) string {
	sign := "+"
	if amount.IsNegative() {
		sign = "-"
	}
	minor := amount.Abs().Mul(hundred).Truncate(0)
	if minor.GreaterThan(maxMinorUnit) {
		minor = maxMinorUnit
	}
	digits := minor.String()
	return sign + strings.Repeat("0", AmountWidth-len(digits)) + digits
}

// FormatDate encodes date as YYYYMMDD, or 8 spaces when date is nil.
// The calendar fields of the value are used as-is, without zone conversion.
func FormatDate(date *time.Time) string {
	if date == nil {
		return blankDate
	}
	return fmt.Sprintf("%04d%02d%02d", date.Year(), int(date.Month()), date.Day())
}

// BillingMonth encodes date as YYMM followed by the installment sequence.
// An empty installment means DefaultInstallment.
func BillingMonth(date time.Time, installment string) string {
	if installment == "" {
		installment = DefaultInstallment
	}
	return fmt.Sprintf("%02d%02d", date.Year()%100, int(date.Month())) + installment
}
