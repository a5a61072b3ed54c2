package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// FeeFundCategory is a row of the fee_fund_category table.
type FeeFundCategory struct {
	CategoryID    int64          `db:"id"`
	CategoryTitle string         `db:"category_title"`
	Details       sql.NullString `db:"details"`
	DisplayOrder  int            `db:"display_order"`
	IsActive      bool           `db:"is_active"`
}

// FeeFundStructure is a row of the fee_fund_structure table.
type FeeFundStructure struct {
	StructureID       int64           `db:"id"`
	RegionID          sql.NullInt64   `db:"region_id"`
	LevelID           sql.NullInt64   `db:"level_id"`
	FeeFundCategoryID int64           `db:"fee_fund_category_id"`
	AdmissionFee      decimal.Decimal `db:"admission_fee"`
	SLC               decimal.Decimal `db:"slc"`
	TuitionFee        decimal.Decimal `db:"tuition_fee"`
	IDF               decimal.Decimal `db:"idf"`
	ExamFee           decimal.Decimal `db:"exam_fee"`
	ITFee             decimal.Decimal `db:"it_fee"`
	CSF               decimal.Decimal `db:"csf"`
	RDF               decimal.Decimal `db:"rdf"`
	CDF               decimal.Decimal `db:"cdf"`
	SecurityFund      decimal.Decimal `db:"security_fund"`
	BSFund            decimal.Decimal `db:"bs_fund"`
	PrepFund          decimal.Decimal `db:"prep_fund"`
	DonationFund      decimal.Decimal `db:"donation_fund"`
	Total             decimal.Decimal `db:"total"`
	IsActive          bool            `db:"is_active"`
}
