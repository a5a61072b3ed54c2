package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/fee_management_app/internal/apperrors"
	"github.com/SscSPs/fee_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fee_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/fee_management_app/internal/models"
	"github.com/SscSPs/fee_management_app/internal/utils/mapping"
	"github.com/SscSPs/fee_management_app/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// uniqueViolation is the Postgres SQLSTATE for unique_violation.
const uniqueViolation = "23505"

type PgxChallanRepository struct {
	BaseRepository
	db database.Querier
}

// newPgxChallanRepository creates a new repository for challan data.
func newPgxChallanRepository(pool *pgxpool.Pool, q database.Querier) *PgxChallanRepository {
	r := &PgxChallanRepository{BaseRepository: BaseRepository{Pool: pool}}
	r.db = r.querier(q)
	return r
}

var _ portsrepo.ChallanRepositoryFacade = (*PgxChallanRepository)(nil)

const challanColumns = `ch.id, ch.consumer_id, ch.challan_no, ch.status, ch.tran_auth_id, ch.bank_mnemonic,
	ch.due_date, ch.amount_base, ch.amount_arrears, ch.amount_within_duedate, ch.amount_after_duedate,
	ch.date_paid, ch.fee_type, ch.reserved, ch.is_active, ch.created_at, ch.updated_at`

func scanChallan(row pgx.Row, m *models.Challan, extra ...any) error {
	dest := []any{
		&m.ChallanID,
		&m.ConsumerID,
		&m.ChallanNo,
		&m.Status,
		&m.TranAuthID,
		&m.BankMnemonic,
		&m.DueDate,
		&m.AmountBase,
		&m.AmountArrears,
		&m.AmountWithinDueDate,
		&m.AmountAfterDueDate,
		&m.DatePaid,
		&m.FeeType,
		&m.Reserved,
		&m.IsActive,
		&m.CreatedAt,
		&m.UpdatedAt,
	}
	return row.Scan(append(dest, extra...)...)
}

func (r *PgxChallanRepository) findOne(ctx context.Context, query string, args ...any) (*domain.Challan, error) {
	var m models.Challan
	if err := scanChallan(r.db.QueryRow(ctx, query, args...), &m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find challan", err)
	}
	d := mapping.ToDomainChallan(m)
	return &d, nil
}

// FindLatestUnpaidChallan returns the unpaid challan a bank should collect.
func (r *PgxChallanRepository) FindLatestUnpaidChallan(ctx context.Context, consumerID int64) (*domain.Challan, error) {
	query := `
		SELECT ` + challanColumns + `
		FROM active_challans ch
		WHERE ch.consumer_id = $1 AND ch.status = 'U' AND ch.is_active = TRUE
		ORDER BY ch.due_date DESC, ch.challan_no ASC
		LIMIT 1;
	`
	return r.findOne(ctx, query, consumerID)
}

// FindPaidChallanInMonth returns a paid challan of the consumer due in month's calendar month.
func (r *PgxChallanRepository) FindPaidChallanInMonth(ctx context.Context, consumerID int64, month time.Time) (*domain.Challan, error) {
	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	query := `
		SELECT ` + challanColumns + `
		FROM active_challans ch
		WHERE ch.consumer_id = $1 AND ch.status = 'P' AND ch.due_date >= $2 AND ch.due_date < $3
		ORDER BY ch.due_date DESC
		LIMIT 1;
	`
	return r.findOne(ctx, query, consumerID, start, start.AddDate(0, 1, 0))
}

// ChallanNumberExists reports whether challanNo is already used.
func (r *PgxChallanRepository) ChallanNumberExists(ctx context.Context, challanNo string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM active_challans WHERE challan_no = $1);`, challanNo).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check challan number", err)
	}
	return exists, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLikePattern makes every character of s match literally inside a LIKE
// pattern using '\' as the escape character.
func escapeLikePattern(s string) string {
	return likeEscaper.Replace(s)
}

// SearchChallans matches challan numbers or consumer numbers, newest first.
func (r *PgxChallanRepository) SearchChallans(ctx context.Context, query string, limit int) ([]domain.ChallanListItem, error) {
	sqlQuery := `
		SELECT ` + challanColumns + `, c.consumer_number
		FROM active_challans ch
		JOIN consumers c ON c.id = ch.consumer_id
		WHERE $1 = ''
			OR ch.challan_no LIKE '%' || $1 || '%' ESCAPE '\'
			OR c.consumer_number LIKE '%' || $1 || '%' ESCAPE '\'
		ORDER BY ch.created_at DESC, ch.id DESC
		LIMIT $2;
	`
	rows, err := r.db.Query(ctx, sqlQuery, escapeLikePattern(query), limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to search challans", err)
	}
	defer rows.Close()

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ChallanListItem, error) {
		var m models.Challan
		var consumerNumber string
		if err := scanChallan(row, &m, &consumerNumber); err != nil {
			return domain.ChallanListItem{}, err
		}
		return domain.ChallanListItem{Challan: mapping.ToDomainChallan(m), ConsumerNumber: consumerNumber}, nil
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan challans", err)
	}
	return items, nil
}

// GetDashboardStats returns challan counts by status and the total collected.
func (r *PgxChallanRepository) GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'P'),
		       COUNT(*) FILTER (WHERE status = 'U'),
		       COUNT(*) FILTER (WHERE status = 'B'),
		       COALESCE(SUM(amount_base) FILTER (WHERE status = 'P'), 0)
		FROM active_challans;
	`
	var stats domain.DashboardStats
	var collected decimal.Decimal
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.TotalChallans,
		&stats.PaidChallans,
		&stats.UnpaidChallans,
		&stats.BouncedChallans,
		&collected,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to load challan stats", err)
	}
	stats.TotalCollection = collected
	return &stats, nil
}

// InsertChallans queues one insert per challan and sends them in a single batch.
func (r *PgxChallanRepository) InsertChallans(ctx context.Context, challans []domain.Challan) error {
	if len(challans) == 0 {
		return nil
	}
	insert := `
		INSERT INTO active_challans (consumer_id, challan_no, status, tran_auth_id, bank_mnemonic, due_date,
			amount_base, amount_arrears, amount_within_duedate, amount_after_duedate, date_paid,
			fee_type, reserved, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $15);
	`
	now := time.Now().UTC()
	batch := &pgx.Batch{}
	for _, c := range challans {
		m := mapping.ToModelChallan(c)
		batch.Queue(insert,
			m.ConsumerID,
			m.ChallanNo,
			m.Status,
			m.TranAuthID,
			m.BankMnemonic,
			m.DueDate,
			m.AmountBase,
			m.AmountArrears,
			m.AmountWithinDueDate,
			m.AmountAfterDueDate,
			m.DatePaid,
			m.FeeType,
			m.Reserved,
			m.IsActive,
			now,
		)
	}

	br := r.db.SendBatch(ctx, batch)
	// Close reports the first failing statement of the batch
	if err := br.Close(); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("failed to insert challans (%s): %w", pgErr.Detail, apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, fmt.Sprintf("failed to insert %d challans", len(challans)), err)
	}
	return nil
}

// MarkChallanPaid records the payment of a challan that is still unpaid. A
// concurrent payment makes the guarded update match nothing.
func (r *PgxChallanRepository) MarkChallanPaid(ctx context.Context, challan domain.Challan) error {
	m := mapping.ToModelChallan(challan)
	query := `
		UPDATE active_challans
		SET status = 'P', bank_mnemonic = $2, date_paid = $3, tran_auth_id = $4, reserved = $5, updated_at = $6
		WHERE id = $1 AND status = 'U';
	`
	tag, err := r.db.Exec(ctx, query, m.ChallanID, m.BankMnemonic, m.DatePaid, m.TranAuthID, m.Reserved, time.Now().UTC())
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark challan "+m.ChallanNo+" paid", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("challan %s is no longer unpaid: %w", m.ChallanNo, apperrors.ErrConflict)
	}
	return nil
}
