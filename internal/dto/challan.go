package dto

import (
	"time"

	"github.com/SscSPs/fee_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// GenerateChallansResponse reports the outcome of a bulk generation run.
type GenerateChallansResponse struct {
	Success        bool                      `json:"success"`
	Message        string                    `json:"message"`
	Generated      int                       `json:"generated"`
	Skipped        int                       `json:"skipped"`
	SkipReasons    map[domain.SkipReason]int `json:"skip_reasons,omitempty"`
	SkippedDetails []string                  `json:"skipped_details,omitempty"`
}

// ToGenerateChallansResponse converts a generation report into its response DTO
func ToGenerateChallansResponse(r *domain.GenerationReport) GenerateChallansResponse {
	return GenerateChallansResponse{
		Success:        true,
		Message:        r.Message,
		Generated:      r.Generated,
		Skipped:        r.Skipped,
		SkipReasons:    r.SkipReasons,
		SkippedDetails: r.SkippedDetails,
	}
}

// SearchChallansQuery holds the search term for the challan list.
type SearchChallansQuery struct {
	Query string `form:"query" binding:"max=50"`
}

// ChallanResponse is a challan as shown in the back office.
type ChallanResponse struct {
	ChallanID           int64           `json:"id"`
	ConsumerID          int64           `json:"consumerId"`
	ConsumerNumber      string          `json:"consumerNumber"`
	ChallanNo           string          `json:"challanNo"`
	Status              string          `json:"status"`
	FeeType             string          `json:"feeType"`
	DueDate             string          `json:"dueDate"`
	AmountBase          decimal.Decimal `json:"amountBase"`
	AmountArrears       decimal.Decimal `json:"amountArrears"`
	AmountWithinDueDate decimal.Decimal `json:"amountWithinDueDate"`
	AmountAfterDueDate  decimal.Decimal `json:"amountAfterDueDate"`
	DatePaid            *string         `json:"datePaid"`
	TranAuthID          string          `json:"tranAuthId"`
	BankMnemonic        string          `json:"bankMnemonic"`
	Reserved            string          `json:"reserved"`
	CreatedAt           time.Time       `json:"createdAt"`
}

const dateLayout = "2006-01-02"

// ToChallanResponse converts a challan list item to its response DTO
func ToChallanResponse(item domain.ChallanListItem) ChallanResponse {
	resp := ChallanResponse{
		ChallanID:           item.ChallanID,
		ConsumerID:          item.ConsumerID,
		ConsumerNumber:      item.ConsumerNumber,
		ChallanNo:           item.ChallanNo,
		Status:              string(item.Status),
		FeeType:             string(item.FeeType),
		DueDate:             item.DueDate.Format(dateLayout),
		AmountBase:          item.AmountBase,
		AmountArrears:       item.AmountArrears,
		AmountWithinDueDate: item.AmountWithinDueDate,
		AmountAfterDueDate:  item.AmountAfterDueDate,
		TranAuthID:          item.TranAuthID,
		BankMnemonic:        item.BankMnemonic,
		Reserved:            item.Reserved,
		CreatedAt:           item.CreatedAt,
	}
	if item.DatePaid != nil {
		paid := item.DatePaid.Format(dateLayout)
		resp.DatePaid = &paid
	}
	return resp
}

// ToListChallanResponse converts a slice of challan list items to response DTOs
func ToListChallanResponse(items []domain.ChallanListItem) []ChallanResponse {
	res := make([]ChallanResponse, len(items))
	for i, item := range items {
		res[i] = ToChallanResponse(item)
	}
	return res
}
