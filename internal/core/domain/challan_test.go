package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/fee_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringPtr(s string) *string { return &s }

func TestChallanStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to domain.ChallanStatus
		want     bool
	}{
		{domain.ChallanUnpaid, domain.ChallanPaid, true},
		{domain.ChallanUnpaid, domain.ChallanBounced, true},
		{domain.ChallanUnpaid, domain.ChallanUnpaid, false},
		{domain.ChallanPaid, domain.ChallanUnpaid, false},
		{domain.ChallanPaid, domain.ChallanBounced, false},
		{domain.ChallanBounced, domain.ChallanPaid, false},
		{domain.ChallanBounced, domain.ChallanUnpaid, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestChallan_ApplyPayment(t *testing.T) {
	c := domain.Challan{ChallanNo: "12345678901234567890", Status: domain.ChallanUnpaid, Reserved: "generated"}
	paidAt := time.Date(2026, time.February, 18, 14, 5, 0, 0, time.UTC)

	err := c.ApplyPayment(domain.Payment{
		TranAuthID:   "123456",
		BankMnemonic: "HBL",
		PaidAt:       paidAt,
		Amount:       decimal.NewFromInt(1500),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ChallanPaid, c.Status)
	assert.Equal(t, "123456", c.TranAuthID)
	assert.Equal(t, "HBL", c.BankMnemonic)
	require.NotNil(t, c.DatePaid)
	assert.Equal(t, time.Date(2026, time.February, 18, 0, 0, 0, 0, time.UTC), *c.DatePaid)
	assert.Equal(t, "generated", c.Reserved, "reserved is kept when the bank sends none")

	err = c.ApplyPayment(domain.Payment{TranAuthID: "999999", PaidAt: paidAt})
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
	assert.Equal(t, "123456", c.TranAuthID)
}

func TestChallan_ApplyPaymentReplacesReserved(t *testing.T) {
	c := domain.Challan{Status: domain.ChallanUnpaid, Reserved: "generated"}
	long := strings.Repeat("x", domain.MaxReservedLength+10)

	require.NoError(t, c.ApplyPayment(domain.Payment{PaidAt: time.Now(), Reserved: stringPtr(long)}))
	assert.Len(t, c.Reserved, domain.MaxReservedLength)
}

func TestChallan_ApplyPaymentRejectsBounced(t *testing.T) {
	c := domain.Challan{ChallanNo: "00000000000000000042", Status: domain.ChallanBounced}

	err := c.ApplyPayment(domain.Payment{TranAuthID: "123456", PaidAt: time.Now()})
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
	assert.Equal(t, domain.ChallanBounced, c.Status)
	assert.Nil(t, c.DatePaid)
	assert.Empty(t, c.TranAuthID)
}

func TestTruncateReserved_CountsRunes(t *testing.T) {
	s := strings.Repeat("é", domain.MaxReservedLength)
	assert.Equal(t, s, domain.TruncateReserved(s))
	assert.Equal(t, s, domain.TruncateReserved(s+"ü"))
}

func TestConsumerType_FeeType(t *testing.T) {
	assert.Equal(t, domain.FeeTypeFee, domain.ConsumerStudent.FeeType())
	assert.Equal(t, domain.FeeTypeFee, domain.ConsumerInductee.FeeType())
	assert.Equal(t, domain.FeeTypeVoucher, domain.ConsumerInstitution.FeeType())
	assert.Equal(t, domain.FeeTypeVoucher, domain.ConsumerRegion.FeeType())
	assert.Equal(t, domain.FeeTypeVoucher, domain.ConsumerDirectorate.FeeType())
}

func TestFeeComponents_Sum(t *testing.T) {
	c := domain.FeeComponents{
		AdmissionFee: decimal.RequireFromString("100.50"),
		TuitionFee:   decimal.RequireFromString("899.50"),
		DonationFund: decimal.RequireFromString("0.25"),
	}
	assert.True(t, decimal.RequireFromString("1000.25").Equal(c.Sum()))
	assert.True(t, domain.FeeComponents{}.Sum().IsZero())
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, domain.ValidateAmount(decimal.Zero))
	assert.NoError(t, domain.ValidateAmount(decimal.RequireFromString("9999999999.99")))
	assert.NoError(t, domain.ValidateAmount(decimal.RequireFromString("-9999999999.99")))
	assert.ErrorIs(t, domain.ValidateAmount(decimal.RequireFromString("10000000000")), domain.ErrAmountOutOfRange)
	assert.ErrorIs(t, domain.ValidateAmount(decimal.RequireFromString("1.005")), domain.ErrAmountOutOfRange)
}

func TestGenerationReport_RecordSkip(t *testing.T) {
	r := domain.NewGenerationReport("February 2026")
	for _, reason := range domain.SkipReasons {
		assert.Zero(t, r.SkipReasons[reason])
	}

	for i := 0; i < domain.MaxSkippedDetails+5; i++ {
		r.RecordSkip(domain.SkipNoProfile, "detail")
	}
	r.RecordSkip(domain.SkipNoFeeStructure, "detail")

	assert.Equal(t, domain.MaxSkippedDetails+6, r.Skipped)
	assert.Equal(t, domain.MaxSkippedDetails+5, r.SkipReasons[domain.SkipNoProfile])
	assert.Equal(t, 1, r.SkipReasons[domain.SkipNoFeeStructure])
	assert.Len(t, r.SkippedDetails, domain.MaxSkippedDetails)
}
