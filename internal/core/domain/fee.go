package domain

import "github.com/shopspring/decimal"

// FeeFundCategory is a named fee purpose such as tuition or transport.
type FeeFundCategory struct {
	CategoryID   int64  `json:"id"`
	Title        string `json:"categoryTitle"`
	Details      string `json:"details"`
	DisplayOrder int    `json:"displayOrder"`
	IsActive     bool   `json:"isActive"`
}

// FeeComponents are the individual heads that make up a fee structure total.
type FeeComponents struct {
	AdmissionFee decimal.Decimal `json:"admissionFee"`
	SLC          decimal.Decimal `json:"slc"`
	TuitionFee   decimal.Decimal `json:"tuitionFee"`
	IDF          decimal.Decimal `json:"idf"`
	ExamFee      decimal.Decimal `json:"examFee"`
	ITFee        decimal.Decimal `json:"itFee"`
	CSF          decimal.Decimal `json:"csf"`
	RDF          decimal.Decimal `json:"rdf"`
	CDF          decimal.Decimal `json:"cdf"`
	SecurityFund decimal.Decimal `json:"securityFund"`
	BSFund       decimal.Decimal `json:"bsFund"`
	PrepFund     decimal.Decimal `json:"prepFund"`
	DonationFund decimal.Decimal `json:"donationFund"`
}

// Sum adds up all thirteen components.
func (c FeeComponents) Sum() decimal.Decimal {
	return decimal.Sum(
		c.AdmissionFee, c.SLC, c.TuitionFee, c.IDF, c.ExamFee, c.ITFee, c.CSF,
		c.RDF, c.CDF, c.SecurityFund, c.BSFund, c.PrepFund, c.DonationFund,
	)
}

// FeeFundStructure prices one (region, level, category) combination. Total is
// written by the caller and is expected to equal Components.Sum().
type FeeFundStructure struct {
	StructureID       int64           `json:"id"`
	RegionID          *int64          `json:"regionId,omitempty"`
	LevelID           *int64          `json:"levelId,omitempty"`
	FeeFundCategoryID int64           `json:"feeFundCategoryId"`
	Components        FeeComponents   `json:"components"`
	Total             decimal.Decimal `json:"total"`
	IsActive          bool            `json:"isActive"`
}

// FeeStructureFilter selects active structures for a consumer. Region and level
// constrain the match only when set.
type FeeStructureFilter struct {
	CategoryIDs []int64
	RegionID    *int64
	LevelID     *int64
}
