package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/fee_management_app/internal/apperrors"
	"github.com/SscSPs/fee_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fee_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/fee_management_app/internal/models"
	"github.com/SscSPs/fee_management_app/internal/utils/mapping"
	"github.com/SscSPs/fee_management_app/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxFeeRepository struct {
	BaseRepository
	db database.Querier
}

// newPgxFeeRepository creates a new repository for fee structures and categories.
func newPgxFeeRepository(pool *pgxpool.Pool, q database.Querier) *PgxFeeRepository {
	r := &PgxFeeRepository{BaseRepository: BaseRepository{Pool: pool}}
	r.db = r.querier(q)
	return r
}

var _ portsrepo.FeeRepositoryFacade = (*PgxFeeRepository)(nil)

// buildFeeStructureQuery renders the structure lookup. Region and level only
// narrow the match when the filter carries them.
func buildFeeStructureQuery(filter domain.FeeStructureFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT id, region_id, level_id, fee_fund_category_id,
		       admission_fee, slc, tuition_fee, idf, exam_fee, it_fee, csf, rdf, cdf,
		       security_fund, bs_fund, prep_fund, donation_fund, total, is_active
		FROM fee_fund_structure
		WHERE is_active = TRUE AND is_deleted = FALSE AND fee_fund_category_id = ANY($1)`)
	args := []any{filter.CategoryIDs}
	if filter.RegionID != nil {
		args = append(args, *filter.RegionID)
		fmt.Fprintf(&sb, " AND region_id = $%d", len(args))
	}
	if filter.LevelID != nil {
		args = append(args, *filter.LevelID)
		fmt.Fprintf(&sb, " AND level_id = $%d", len(args))
	}
	sb.WriteString(" ORDER BY id;")
	return sb.String(), args
}

// FindActiveFeeStructures returns the active structures matching the filter.
func (r *PgxFeeRepository) FindActiveFeeStructures(ctx context.Context, filter domain.FeeStructureFilter) ([]domain.FeeFundStructure, error) {
	if len(filter.CategoryIDs) == 0 {
		return []domain.FeeFundStructure{}, nil
	}
	query, args := buildFeeStructureQuery(filter)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query fee structures", err)
	}
	defer rows.Close()

	structures, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.FeeFundStructure, error) {
		var s models.FeeFundStructure
		err := row.Scan(
			&s.StructureID,
			&s.RegionID,
			&s.LevelID,
			&s.FeeFundCategoryID,
			&s.AdmissionFee,
			&s.SLC,
			&s.TuitionFee,
			&s.IDF,
			&s.ExamFee,
			&s.ITFee,
			&s.CSF,
			&s.RDF,
			&s.CDF,
			&s.SecurityFund,
			&s.BSFund,
			&s.PrepFund,
			&s.DonationFund,
			&s.Total,
			&s.IsActive,
		)
		return s, err
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan fee structures", err)
	}
	return mapping.ToDomainFeeFundStructureSlice(structures), nil
}

// CategoryTitles returns the titles of the given categories in display order.
func (r *PgxFeeRepository) CategoryTitles(ctx context.Context, categoryIDs []int64) ([]string, error) {
	if len(categoryIDs) == 0 {
		return []string{}, nil
	}
	query := `
		SELECT category_title
		FROM fee_fund_category
		WHERE id = ANY($1)
		ORDER BY display_order, id;
	`
	rows, err := r.db.Query(ctx, query, categoryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query fee categories", err)
	}
	titles, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan fee categories", err)
	}
	return titles, nil
}
