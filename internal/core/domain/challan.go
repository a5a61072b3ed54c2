package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidStatusTransition is returned when a challan status change is not allowed.
var ErrInvalidStatusTransition = errors.New("invalid challan status transition")

// ChallanStatus is the single-letter bill status understood by 1Link.
type ChallanStatus string

const (
	ChallanUnpaid  ChallanStatus = "U"
	ChallanPaid    ChallanStatus = "P"
	ChallanBounced ChallanStatus = "B"
)

// CanTransitionTo reports whether s may move to next. Only unpaid challans change state.
func (s ChallanStatus) CanTransitionTo(next ChallanStatus) bool {
	return s == ChallanUnpaid && (next == ChallanPaid || next == ChallanBounced)
}

// FeeType distinguishes regular fee challans from vouchers.
type FeeType string

const (
	FeeTypeFee     FeeType = "fee"
	FeeTypeVoucher FeeType = "voucher"
)

const (
	// ChallanNoLength is the number of decimal digits in a generated challan number.
	ChallanNoLength = 20
	// MaxTranAuthIDLength is the width of the bank authorization code column.
	MaxTranAuthIDLength = 6
	// MaxBankMnemonicLength is the width of the bank mnemonic column.
	MaxBankMnemonicLength = 8
	// MaxReservedLength is the width of the reserved remarks column.
	MaxReservedLength = 400
)

// Challan is a bill issued to one consumer for one billing cycle.
type Challan struct {
	ChallanID           int64           `json:"id"`
	ConsumerID          int64           `json:"consumerId"`
	ChallanNo           string          `json:"challanNo"`
	Status              ChallanStatus   `json:"status"`
	TranAuthID          string          `json:"tranAuthId"`
	BankMnemonic        string          `json:"bankMnemonic"`
	DueDate             time.Time       `json:"dueDate"`
	AmountBase          decimal.Decimal `json:"amountBase"`
	AmountArrears       decimal.Decimal `json:"amountArrears"`
	AmountWithinDueDate decimal.Decimal `json:"amountWithinDueDate"`
	AmountAfterDueDate  decimal.Decimal `json:"amountAfterDueDate"`
	DatePaid            *time.Time      `json:"datePaid,omitempty"`
	FeeType             FeeType         `json:"feeType"`
	Reserved            string          `json:"reserved"`
	IsActive            bool            `json:"isActive"`
	AuditFields
}

// Payment is what the bank reports when a challan is settled.
type Payment struct {
	TranAuthID   string
	BankMnemonic string
	PaidAt       time.Time
	Amount       decimal.Decimal
	// Reserved replaces the challan remarks when non-nil.
	Reserved *string
}

// ApplyPayment moves an unpaid challan to paid and records the bank details.
func (c *Challan) ApplyPayment(p Payment) error {
	if !c.Status.CanTransitionTo(ChallanPaid) {
		return fmt.Errorf("%w: challan %s is %s", ErrInvalidStatusTransition, c.ChallanNo, c.Status)
	}
	paid := DateOf(p.PaidAt)
	c.Status = ChallanPaid
	c.TranAuthID = p.TranAuthID
	c.BankMnemonic = p.BankMnemonic
	c.DatePaid = &paid
	if p.Reserved != nil {
		c.Reserved = TruncateReserved(*p.Reserved)
	}
	return nil
}

// TruncateReserved cuts remarks to the column width, counting runes.
func TruncateReserved(s string) string {
	r := []rune(s)
	if len(r) <= MaxReservedLength {
		return s
	}
	return string(r[:MaxReservedLength])
}

// DateOf drops the time of day, keeping the calendar date as seen in t's location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
