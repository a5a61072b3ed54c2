package dto

import (
	"github.com/shopspring/decimal"
)

// BillInquiryRequest is the body a bank sends to look up a consumer's bill.
type BillInquiryRequest struct {
	ConsumerNumber string `json:"consumer_number" binding:"required,max=50"`
}

// BillPaymentRequest is the body a bank sends after collecting a bill.
type BillPaymentRequest struct {
	ConsumerNumber    string          `json:"consumer_number" binding:"required,max=50"`
	TranAuthID        string          `json:"tran_auth_id" binding:"required,max=6"`
	TransactionAmount decimal.Decimal `json:"transaction_amount" binding:"required,gte=0.01"`
	TranDate          string          `json:"tran_date" binding:"required,yyyymmdd"`
	TranTime          string          `json:"tran_time" binding:"required,hhmmss"`
	BankMnemonic      string          `json:"bank_mnemonic" binding:"required,max=8"`
	Reserved          *string         `json:"reserved" binding:"omitempty,max=400"`
}

// ValidationErrorResponse lists the failing fields of a rejected 1Link request.
type ValidationErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}
