package domain

// ConsumerType identifies what kind of fee-payer a consumer is.
type ConsumerType string

const (
	ConsumerStudent     ConsumerType = "student"
	ConsumerInstitution ConsumerType = "institution"
	ConsumerRegion      ConsumerType = "region"
	ConsumerDirectorate ConsumerType = "directorate"
	ConsumerInductee    ConsumerType = "inductee"
)

// FeeType returns the challan fee type billed to this kind of consumer.
// Students and inductees pay fees; every other consumer type gets a voucher.
func (t ConsumerType) FeeType() FeeType {
	switch t {
	case ConsumerStudent, ConsumerInductee:
		return FeeTypeFee
	default:
		return FeeTypeVoucher
	}
}

// Consumer is a billable entity. ConsumerNumber is the account number the bank
// quotes in 1Link inquiries.
type Consumer struct {
	ConsumerID           int64        `json:"id"`
	ConsumerType         ConsumerType `json:"consumerType"`
	IdentificationNumber string       `json:"identificationNumber"`
	ConsumerNumber       string       `json:"consumerNumber"`
	InstitutionID        *int64       `json:"institutionId,omitempty"`
	RegionID             *int64       `json:"regionId,omitempty"`
	IsActive             bool         `json:"isActive"`
	IsDeleted            bool         `json:"isDeleted"`
	AuditFields
}

// Institution links a consumer to the level used for fee structure lookups.
type Institution struct {
	InstitutionID int64  `json:"id"`
	Name          string `json:"name"`
	RegionID      int64  `json:"regionId"`
	LevelID       int64  `json:"levelId"`
	IsActive      bool   `json:"isActive"`
}

// Profile is the descriptive record of a consumer. A nil FeeFundCategoryIDs
// means no categories were ever assigned.
type Profile struct {
	ProfileID          int64        `json:"id"`
	ProfileType        ConsumerType `json:"profileType"`
	ConsumerID         int64        `json:"consumerId"`
	Name               string       `json:"name"`
	GuardianName       string       `json:"fatherOrGuardianName"`
	RegionName         string       `json:"regionName"`
	InstitutionName    string       `json:"institutionName"`
	InstitutionLevel   string       `json:"institutionLevel"`
	Class              string       `json:"class"`
	Section            string       `json:"section"`
	FeeFundCategoryIDs []int64      `json:"feeFundCategoryIds"`
	IsActive           bool         `json:"isActive"`
	AuditFields
}

// ConsumerSnapshot is an active consumer with its active profile and
// institution loaded, as read for a generation run.
type ConsumerSnapshot struct {
	Consumer    Consumer
	Profile     *Profile
	Institution *Institution
}
