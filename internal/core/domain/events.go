package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChallansGeneratedEvent summarises a committed generation run.
type ChallansGeneratedEvent struct {
	BillingMonth string             `json:"billing_month"`
	DueDate      string             `json:"due_date"`
	Generated    int                `json:"generated"`
	Skipped      int                `json:"skipped"`
	SkipReasons  map[SkipReason]int `json:"skip_reasons"`
	Message      string             `json:"message"`
	OccurredAt   time.Time          `json:"occurred_at"`
}

// ChallanPaidEvent announces a settled challan.
type ChallanPaidEvent struct {
	ChallanNo         string          `json:"challan_no"`
	ConsumerNumber    string          `json:"consumer_number"`
	TranAuthID        string          `json:"tran_auth_id"`
	BankMnemonic      string          `json:"bank_mnemonic"`
	TransactionAmount decimal.Decimal `json:"transaction_amount"`
	AmountBase        decimal.Decimal `json:"amount_base"`
	DatePaid          string          `json:"date_paid"`
	OccurredAt        time.Time       `json:"occurred_at"`
}
