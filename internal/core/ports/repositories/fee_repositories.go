package repositories

import (
	"context"

	"github.com/SscSPs/fee_management_app/internal/core/domain"
)

// FeeStructureReader defines read operations for fee structures
type FeeStructureReader interface {
	// FindActiveFeeStructures returns active structures in the filter's categories,
	// constrained by region and level only when those are set.
	FindActiveFeeStructures(ctx context.Context, filter domain.FeeStructureFilter) ([]domain.FeeFundStructure, error)
}

// FeeCategoryReader defines read operations for fee categories
type FeeCategoryReader interface {
	// CategoryTitles returns the titles of the given categories in display order.
	CategoryTitles(ctx context.Context, categoryIDs []int64) ([]string, error)
}

// FeeRepositoryFacade combines fee structure and category reads
type FeeRepositoryFacade interface {
	FeeStructureReader
	FeeCategoryReader
}
