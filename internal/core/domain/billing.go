package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrConsumerNotFound is returned when no active, non-deleted consumer has the requested number.
	ErrConsumerNotFound = errors.New("consumer not found or is inactive")
	// ErrNoUnpaidChallan is returned when a consumer has nothing left to pay.
	ErrNoUnpaidChallan = errors.New("no unpaid challan found for this consumer")
	// ErrAlreadyPaidForMonth is returned when the current month's challan was already settled.
	ErrAlreadyPaidForMonth = errors.New("challan is already paid for the month")
)

// BillInquiry is what a bank sees for a consumer: the display name and the
// challan it should collect.
type BillInquiry struct {
	Consumer    Consumer
	DisplayName string
	Challan     Challan
}

// ChallanListItem is a challan joined with the consumer number it belongs to.
type ChallanListItem struct {
	Challan
	ConsumerNumber string `json:"consumerNumber"`
}

// DashboardStats are the back-office headline counts.
type DashboardStats struct {
	TotalConsumers  int64           `json:"totalConsumers"`
	TotalChallans   int64           `json:"totalChallans"`
	PaidChallans    int64           `json:"paidChallans"`
	UnpaidChallans  int64           `json:"unpaidChallans"`
	BouncedChallans int64           `json:"bouncedChallans"`
	TotalCollection decimal.Decimal `json:"totalCollection"`
}
