package mapping

import (
	"github.com/SscSPs/fee_management_app/internal/core/domain"
	"github.com/SscSPs/fee_management_app/internal/models"
)

// ToModelChallan converts a domain Challan to a model Challan
func ToModelChallan(d domain.Challan) models.Challan {
	return models.Challan{
		ChallanID:           d.ChallanID,
		ConsumerID:          d.ConsumerID,
		ChallanNo:           d.ChallanNo,
		Status:              string(d.Status),
		TranAuthID:          nullString(d.TranAuthID),
		BankMnemonic:        nullString(d.BankMnemonic),
		DueDate:             d.DueDate,
		AmountBase:          d.AmountBase,
		AmountArrears:       d.AmountArrears,
		AmountWithinDueDate: d.AmountWithinDueDate,
		AmountAfterDueDate:  d.AmountAfterDueDate,
		DatePaid:            nullTime(d.DatePaid),
		FeeType:             string(d.FeeType),
		Reserved:            nullString(d.Reserved),
		IsActive:            d.IsActive,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainChallan converts a model Challan to a domain Challan
func ToDomainChallan(m models.Challan) domain.Challan {
	return domain.Challan{
		ChallanID:           m.ChallanID,
		ConsumerID:          m.ConsumerID,
		ChallanNo:           m.ChallanNo,
		Status:              domain.ChallanStatus(m.Status),
		TranAuthID:          m.TranAuthID.String,
		BankMnemonic:        m.BankMnemonic.String,
		DueDate:             m.DueDate,
		AmountBase:          m.AmountBase,
		AmountArrears:       m.AmountArrears,
		AmountWithinDueDate: m.AmountWithinDueDate,
		AmountAfterDueDate:  m.AmountAfterDueDate,
		DatePaid:            timePtr(m.DatePaid),
		FeeType:             domain.FeeType(m.FeeType),
		Reserved:            m.Reserved.String,
		IsActive:            m.IsActive,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}
