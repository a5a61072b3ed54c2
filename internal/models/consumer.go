package models

import "database/sql"

// Consumer is a row of the consumers table.
type Consumer struct {
	ConsumerID           int64         `db:"id"`
	ConsumerType         string        `db:"consumer_type"`
	IdentificationNumber string        `db:"identification_number"`
	ConsumerNumber       string        `db:"consumer_number"`
	InstitutionID        sql.NullInt64 `db:"institution_id"`
	RegionID             sql.NullInt64 `db:"region_id"`
	IsActive             bool          `db:"is_active"`
	IsDeleted            bool          `db:"is_deleted"`
	AuditFields
}

// Institution is a row of the institutions table.
type Institution struct {
	InstitutionID int64  `db:"id"`
	Name          string `db:"name"`
	RegionID      int64  `db:"region_id"`
	LevelID       int64  `db:"level_id"`
	IsActive      bool   `db:"is_active"`
}

// Profile is a row of the profile_details table.
type Profile struct {
	ProfileID          int64          `db:"id"`
	ProfileType        string         `db:"profile_type"`
	ConsumerID         int64          `db:"consumer_id"`
	Name               sql.NullString `db:"name"`
	GuardianName       sql.NullString `db:"father_or_guardian_name"`
	RegionName         sql.NullString `db:"region_name"`
	InstitutionName    sql.NullString `db:"institution_name"`
	InstitutionLevel   sql.NullString `db:"institution_level"`
	Class              sql.NullString `db:"class"`
	Section            sql.NullString `db:"section"`
	FeeFundCategoryIDs []int64        `db:"fee_fund_category_ids"` // NULL scans to nil
	IsActive           bool           `db:"is_active"`
	AuditFields
}
