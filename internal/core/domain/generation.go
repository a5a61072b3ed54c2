package domain

// SkipReason explains why a consumer got no challan in a generation run.
type SkipReason string

const (
	SkipNoProfile      SkipReason = "no_profile"
	SkipNoCategories   SkipReason = "no_categories"
	SkipNoInstitution  SkipReason = "no_institution"
	SkipNoFeeStructure SkipReason = "no_fee_structure"
)

// SkipReasons lists every reason in report order.
var SkipReasons = []SkipReason{SkipNoProfile, SkipNoCategories, SkipNoInstitution, SkipNoFeeStructure}

// MaxSkippedDetails bounds the number of human-readable skip lines in a report.
const MaxSkippedDetails = 50

// GenerationReport summarises one bulk challan generation run.
type GenerationReport struct {
	BillingMonth   string             `json:"billing_month"`
	Generated      int                `json:"generated"`
	Skipped        int                `json:"skipped"`
	SkipReasons    map[SkipReason]int `json:"skip_reasons"`
	SkippedDetails []string           `json:"skipped_details"`
	Message        string             `json:"message"`
}

// NewGenerationReport returns an empty report with every skip reason at zero.
func NewGenerationReport(billingMonth string) *GenerationReport {
	reasons := make(map[SkipReason]int, len(SkipReasons))
	for _, r := range SkipReasons {
		reasons[r] = 0
	}
	return &GenerationReport{
		BillingMonth:   billingMonth,
		SkipReasons:    reasons,
		SkippedDetails: []string{},
	}
}

// RecordSkip counts a skipped consumer and keeps the detail line while under the cap.
func (r *GenerationReport) RecordSkip(reason SkipReason, detail string) {
	r.Skipped++
	r.SkipReasons[reason]++
	if len(r.SkippedDetails) < MaxSkippedDetails {
		r.SkippedDetails = append(r.SkippedDetails, detail)
	}
}
