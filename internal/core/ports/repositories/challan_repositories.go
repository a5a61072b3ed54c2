package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/fee_management_app/internal/core/domain"
)

// ChallanReader defines read operations for challans
type ChallanReader interface {
	// FindLatestUnpaidChallan returns the consumer's unpaid challan with the latest
	// due date, ties broken by challan number ascending.
	FindLatestUnpaidChallan(ctx context.Context, consumerID int64) (*domain.Challan, error)

	// FindPaidChallanInMonth returns a paid challan of the consumer due in the month containing month.
	FindPaidChallanInMonth(ctx context.Context, consumerID int64, month time.Time) (*domain.Challan, error)

	// ChallanNumberExists reports whether an active challan already uses challanNo.
	ChallanNumberExists(ctx context.Context, challanNo string) (bool, error)

	// SearchChallans matches challan numbers or consumer numbers, newest first.
	SearchChallans(ctx context.Context, query string, limit int) ([]domain.ChallanListItem, error)

	// GetDashboardStats returns challan counts by status and the total collected.
	GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error)
}

// ChallanWriter defines write operations for challans
type ChallanWriter interface {
	// InsertChallans persists newly generated challans in one round trip.
	InsertChallans(ctx context.Context, challans []domain.Challan) error

	// MarkChallanPaid stores the payment details of a challan that is still unpaid.
	// It returns apperrors.ErrConflict when the challan was settled concurrently.
	MarkChallanPaid(ctx context.Context, challan domain.Challan) error
}

// ChallanRepositoryFacade combines all challan-related repository interfaces
type ChallanRepositoryFacade interface {
	ChallanReader
	ChallanWriter
}

// GenerationUnit is the transactional view a bulk generation run works in.
// Every read and write goes through the same database transaction, which is
// serialized against other runs until Commit or Rollback.
type GenerationUnit interface {
	ConsumerSnapshotReader
	FeeRepositoryFacade
	ChallanNumberExists(ctx context.Context, challanNo string) (bool, error)
	InsertChallans(ctx context.Context, challans []domain.Challan) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// GenerationUnitBeginner opens generation units.
type GenerationUnitBeginner interface {
	// BeginGeneration starts a transaction and takes the run-level lock.
	BeginGeneration(ctx context.Context) (GenerationUnit, error)
}
