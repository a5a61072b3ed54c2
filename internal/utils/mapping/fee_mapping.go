package mapping

import (
	"github.com/SscSPs/fee_management_app/internal/core/domain"
	"github.com/SscSPs/fee_management_app/internal/models"
)

// ToDomainFeeFundStructure converts a model FeeFundStructure to a domain FeeFundStructure
func ToDomainFeeFundStructure(m models.FeeFundStructure) domain.FeeFundStructure {
	return domain.FeeFundStructure{
		StructureID:       m.StructureID,
		RegionID:          int64Ptr(m.RegionID),
		LevelID:           int64Ptr(m.LevelID),
		FeeFundCategoryID: m.FeeFundCategoryID,
		Components: domain.FeeComponents{
			AdmissionFee: m.AdmissionFee,
			SLC:          m.SLC,
			TuitionFee:   m.TuitionFee,
			IDF:          m.IDF,
			ExamFee:      m.ExamFee,
			ITFee:        m.ITFee,
			CSF:          m.CSF,
			RDF:          m.RDF,
			CDF:          m.CDF,
			SecurityFund: m.SecurityFund,
			BSFund:       m.BSFund,
			PrepFund:     m.PrepFund,
			DonationFund: m.DonationFund,
		},
		Total:    m.Total,
		IsActive: m.IsActive,
	}
}

// ToDomainFeeFundStructureSlice converts a slice of model FeeFundStructures to domain FeeFundStructures
func ToDomainFeeFundStructureSlice(ms []models.FeeFundStructure) []domain.FeeFundStructure {
	ds := make([]domain.FeeFundStructure, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainFeeFundStructure(m)
	}
	return ds
}
