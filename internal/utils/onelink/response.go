package onelink

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// ResponseCodeOK marks a successful inquiry or payment.
	ResponseCodeOK = "00"

	defaultConsumerDetail = "Student"
	defaultBillStatus     = "U"
	unpaidAmountPaid      = "000000000000"
)

// PaidAmount is the amount_paid field. An unpaid bill is encoded as 12 unsigned
// zeros while a paid bill carries the 14 character signed amount.
type PaidAmount struct {
	paid   bool
	amount decimal.Decimal
}

// Unpaid returns the zeroed amount_paid variant.
func Unpaid() PaidAmount {
	return PaidAmount{}
}

// Paid returns the signed amount_paid variant.
func Paid(amount decimal.Decimal) PaidAmount {
	return PaidAmount{paid: true, amount: amount}
}

func (p PaidAmount) String() string {
	if !p.paid {
		return unpaidAmountPaid
	}
	return FormatAmount(p.amount)
}

func (p PaidAmount) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// InquiryParams feeds BuildInquiryResponse. Zero values fall back to the
// protocol defaults.
type InquiryParams struct {
	ConsumerDetail      string
	BillStatus          string
	DueDate             *time.Time
	AmountWithinDueDate decimal.Decimal
	AmountAfterDueDate  decimal.Decimal
	// BillingDate is the source of billing_month. When nil, DueDate is used,
	// then AsOf.
	BillingDate *time.Time
	AsOf        time.Time
	Installment string
	DatePaid    *time.Time
	TranAuthID  string
	Reserved    string
}

// InquiryResponse is the Inquiry-Success record. Field order and names are
// part of the wire contract.
type InquiryResponse struct {
	ResponseCode        string     `json:"response_Code"`
	ConsumerDetail      string     `json:"consumer_Detail"`
	BillStatus          string     `json:"bill_status"`
	DueDate             string     `json:"due_date"`
	AmountWithinDueDate string     `json:"amount_within_dueDate"`
	AmountAfterDueDate  string     `json:"amount_after_dueDate"`
	BillingMonth        string     `json:"billing_month"`
	DatePaid            string     `json:"date_paid"`
	AmountPaid          PaidAmount `json:"amount_paid"`
	TranAuthID          string     `json:"tran_auth_Id"`
	Reserved            string     `json:"reserved"`
}

// PaymentResponse is the Payment-Success record.
type PaymentResponse struct {
	ResponseCode   string `json:"response_Code"`
	ConsumerDetail string `json:"consumer_Detail"`
	Reserved       string `json:"reserved"`
}

// ErrorResponse is the Error record.
type ErrorResponse struct {
	ResponseCode string `json:"response_Code"`
	Message      string `json:"message"`
}

// BuildInquiryResponse assembles an Inquiry-Success record.
func BuildInquiryResponse(p InquiryParams) InquiryResponse {
	detail := p.ConsumerDetail
	if detail == "" {
		detail = defaultConsumerDetail
	}
	status := p.BillStatus
	if status == "" {
		status = defaultBillStatus
	}

	monthSource := p.AsOf
	switch {
	case p.BillingDate != nil:
		monthSource = *p.BillingDate
	case p.DueDate != nil:
		monthSource = *p.DueDate
	}

	amountPaid := Unpaid()
	if p.DatePaid != nil {
		amountPaid = Paid(p.AmountWithinDueDate)
	}

	return InquiryResponse{
		ResponseCode:        ResponseCodeOK,
		ConsumerDetail:      detail,
		BillStatus:          status,
		DueDate:             FormatDate(p.DueDate),
		AmountWithinDueDate: FormatAmount(p.AmountWithinDueDate),
		AmountAfterDueDate:  FormatAmount(p.AmountAfterDueDate),
		BillingMonth:        BillingMonth(monthSource, p.Installment),
		DatePaid:            FormatDate(p.DatePaid),
		AmountPaid:          amountPaid,
		TranAuthID:          p.TranAuthID,
		Reserved:            p.Reserved,
	}
}

// BuildPaymentResponse assembles a Payment-Success record. The protocol echoes
// the transaction authorization id in consumer_Detail.
func BuildPaymentResponse(tranAuthID, reserved string) PaymentResponse {
	return PaymentResponse{
		ResponseCode:   ResponseCodeOK,
		ConsumerDetail: tranAuthID,
		Reserved:       reserved,
	}
}

// BuildErrorResponse assembles an Error record.
func BuildErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{ResponseCode: code, Message: message}
}
