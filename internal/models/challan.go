package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Challan is a row of the active_challans table.
type Challan struct {
	ChallanID           int64           `db:"id"`
	ConsumerID          int64           `db:"consumer_id"`
	ChallanNo           string          `db:"challan_no"`
	Status              string          `db:"status"`
	TranAuthID          sql.NullString  `db:"tran_auth_id"`
	BankMnemonic        sql.NullString  `db:"bank_mnemonic"`
	DueDate             time.Time       `db:"due_date"`
	AmountBase          decimal.Decimal `db:"amount_base"`
	AmountArrears       decimal.Decimal `db:"amount_arrears"`
	AmountWithinDueDate decimal.Decimal `db:"amount_within_duedate"`
	AmountAfterDueDate  decimal.Decimal `db:"amount_after_duedate"`
	DatePaid            sql.NullTime    `db:"date_paid"`
	FeeType             string          `db:"fee_type"`
	Reserved            sql.NullString  `db:"reserved"`
	IsActive            bool            `db:"is_active"`
	AuditFields
}
