package mapping

import (
	"github.com/SscSPs/fee_management_app/internal/core/domain"
	"github.com/SscSPs/fee_management_app/internal/models"
)

// ToDomainConsumer converts a model Consumer to a domain Consumer
func ToDomainConsumer(m models.Consumer) domain.Consumer {
	return domain.Consumer{
		ConsumerID:           m.ConsumerID,
		ConsumerType:         domain.ConsumerType(m.ConsumerType),
		IdentificationNumber: m.IdentificationNumber,
		ConsumerNumber:       m.ConsumerNumber,
		InstitutionID:        int64Ptr(m.InstitutionID),
		RegionID:             int64Ptr(m.RegionID),
		IsActive:             m.IsActive,
		IsDeleted:            m.IsDeleted,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelConsumer converts a domain Consumer to a model Consumer
func ToModelConsumer(d domain.Consumer) models.Consumer {
	return models.Consumer{
		ConsumerID:           d.ConsumerID,
		ConsumerType:         string(d.ConsumerType),
		IdentificationNumber: d.IdentificationNumber,
		ConsumerNumber:       d.ConsumerNumber,
		InstitutionID:        nullInt64(d.InstitutionID),
		RegionID:             nullInt64(d.RegionID),
		IsActive:             d.IsActive,
		IsDeleted:            d.IsDeleted,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProfile converts a model Profile to a domain Profile
func ToDomainProfile(m models.Profile) domain.Profile {
	return domain.Profile{
		ProfileID:          m.ProfileID,
		ProfileType:        domain.ConsumerType(m.ProfileType),
		ConsumerID:         m.ConsumerID,
		Name:               m.Name.String,
		GuardianName:       m.GuardianName.String,
		RegionName:         m.RegionName.String,
		InstitutionName:    m.InstitutionName.String,
		InstitutionLevel:   m.InstitutionLevel.String,
		Class:              m.Class.String,
		Section:            m.Section.String,
		FeeFundCategoryIDs: m.FeeFundCategoryIDs,
		IsActive:           m.IsActive,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInstitution converts a model Institution to a domain Institution
func ToDomainInstitution(m models.Institution) domain.Institution {
	return domain.Institution{
		InstitutionID: m.InstitutionID,
		Name:          m.Name,
		RegionID:      m.RegionID,
		LevelID:       m.LevelID,
		IsActive:      m.IsActive,
	}
}
