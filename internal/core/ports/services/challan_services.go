package services

import (
	"context"

	"github.com/SscSPs/fee_management_app/internal/core/domain"
	"github.com/SscSPs/fee_management_app/internal/dto"
)

// BillInquirySvc answers 1Link bill inquiries
type BillInquirySvc interface {
	// InquireBill finds the bill a bank should collect for the consumer number.
	InquireBill(ctx context.Context, consumerNumber string) (*domain.BillInquiry, error)
}

// BillPaymentSvc settles bills reported by 1Link
type BillPaymentSvc interface {
	// PayBill marks the consumer's outstanding challan as paid.
	PayBill(ctx context.Context, req dto.BillPaymentRequest) (*domain.Challan, error)
}

// ChallanGenerationSvc runs bulk challan generation
type ChallanGenerationSvc interface {
	// GenerateBulkChallans creates one challan per eligible active consumer for
	// the current billing month. Either all challans are stored or none.
	GenerateBulkChallans(ctx context.Context) (*domain.GenerationReport, error)
}

// ChallanQuerySvc defines back-office reads over challans
type ChallanQuerySvc interface {
	SearchChallans(ctx context.Context, query string) ([]domain.ChallanListItem, error)
	GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error)
}

// ChallanSvcFacade combines all challan-related service interfaces
type ChallanSvcFacade interface {
	BillInquirySvc
	BillPaymentSvc
	ChallanGenerationSvc
	ChallanQuerySvc
}
