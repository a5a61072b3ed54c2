package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SscSPs/fee_management_app/internal/apperrors"
	"github.com/SscSPs/fee_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fee_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/fee_management_app/internal/models"
	"github.com/SscSPs/fee_management_app/internal/utils/mapping"
	"github.com/SscSPs/fee_management_app/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxConsumerRepository struct {
	BaseRepository
	db database.Querier
}

// newPgxConsumerRepository creates a new repository for consumer data. A nil
// querier means the pool.
func newPgxConsumerRepository(pool *pgxpool.Pool, q database.Querier) *PgxConsumerRepository {
	r := &PgxConsumerRepository{BaseRepository: BaseRepository{Pool: pool}}
	r.db = r.querier(q)
	return r
}

// Ensure implementation matches interface
var _ portsrepo.ConsumerRepositoryFacade = (*PgxConsumerRepository)(nil)

const consumerColumns = `c.id, c.consumer_type, c.identification_number, c.consumer_number,
	c.institution_id, c.region_id, c.is_active, c.is_deleted, c.created_at, c.updated_at`

func scanConsumer(row pgx.Row, m *models.Consumer, extra ...any) error {
	dest := []any{
		&m.ConsumerID,
		&m.ConsumerType,
		&m.IdentificationNumber,
		&m.ConsumerNumber,
		&m.InstitutionID,
		&m.RegionID,
		&m.IsActive,
		&m.IsDeleted,
		&m.CreatedAt,
		&m.UpdatedAt,
	}
	return row.Scan(append(dest, extra...)...)
}

// FindActiveConsumerByNumber retrieves an active, non-deleted consumer by billing account number.
func (r *PgxConsumerRepository) FindActiveConsumerByNumber(ctx context.Context, consumerNumber string) (*domain.Consumer, error) {
	query := `
		SELECT ` + consumerColumns + `
		FROM consumers c
		WHERE c.consumer_number = $1 AND c.is_active = TRUE AND c.is_deleted = FALSE
		LIMIT 1;
	`
	var m models.Consumer
	if err := scanConsumer(r.db.QueryRow(ctx, query, consumerNumber), &m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find consumer "+consumerNumber, err)
	}
	d := mapping.ToDomainConsumer(m)
	return &d, nil
}

// FindActiveProfile retrieves the active profile of a consumer, preferring the
// one whose type matches the consumer type.
func (r *PgxConsumerRepository) FindActiveProfile(ctx context.Context, consumerID int64) (*domain.Profile, error) {
	query := `
		SELECT p.id, p.profile_type, p.consumer_id, p.name, p.father_or_guardian_name, p.region_name,
		       p.institution_name, p.institution_level, p.class, p.section, p.fee_fund_category_ids,
		       p.is_active, p.created_at, p.updated_at
		FROM profile_details p
		JOIN consumers c ON c.id = p.consumer_id
		WHERE p.consumer_id = $1 AND p.is_active = TRUE AND p.is_deleted = FALSE
		ORDER BY (p.profile_type = c.consumer_type) DESC, p.id DESC
		LIMIT 1;
	`
	var m models.Profile
	err := r.db.QueryRow(ctx, query, consumerID).Scan(
		&m.ProfileID,
		&m.ProfileType,
		&m.ConsumerID,
		&m.Name,
		&m.GuardianName,
		&m.RegionName,
		&m.InstitutionName,
		&m.InstitutionLevel,
		&m.Class,
		&m.Section,
		&m.FeeFundCategoryIDs,
		&m.IsActive,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to find profile for consumer %d", consumerID), err)
	}
	d := mapping.ToDomainProfile(m)
	return &d, nil
}

// CountConsumers counts consumers that are not soft-deleted.
func (r *PgxConsumerRepository) CountConsumers(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM consumers WHERE is_deleted = FALSE;`).Scan(&n); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count consumers", err)
	}
	return n, nil
}

// ListActiveConsumerSnapshots pages through active consumers by id. The active
// profile and the institution are joined in the same statement.
func (r *PgxConsumerRepository) ListActiveConsumerSnapshots(ctx context.Context, afterID int64, limit int) ([]domain.ConsumerSnapshot, error) {
	query := `
		SELECT ` + consumerColumns + `,
		       p.id, p.profile_type, p.name, p.father_or_guardian_name, p.region_name,
		       p.institution_name, p.institution_level, p.class, p.section, p.fee_fund_category_ids,
		       p.is_active, p.created_at, p.updated_at,
		       i.id, i.name, i.region_id, i.level_id, i.is_active
		FROM consumers c
		LEFT JOIN LATERAL (
			SELECT pd.*
			FROM profile_details pd
			WHERE pd.consumer_id = c.id AND pd.is_active = TRUE AND pd.is_deleted = FALSE
			ORDER BY (pd.profile_type = c.consumer_type) DESC, pd.id DESC
			LIMIT 1
		) p ON TRUE
		LEFT JOIN institutions i ON i.id = c.institution_id
		WHERE c.is_active = TRUE AND c.is_deleted = FALSE AND c.id > $1
		ORDER BY c.id
		LIMIT $2;
	`
	rows, err := r.db.Query(ctx, query, afterID, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query consumer snapshots", err)
	}
	defer rows.Close()

	snapshots, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ConsumerSnapshot, error) {
		var (
			c            models.Consumer
			profileID    sql.NullInt64
			profile      models.Profile
			profileAct   sql.NullBool
			profileCr    sql.NullTime
			profileUp    sql.NullTime
			profileType  sql.NullString
			instID       sql.NullInt64
			instName     sql.NullString
			instRegionID sql.NullInt64
			instLevelID  sql.NullInt64
			instActive   sql.NullBool
		)
		err := scanConsumer(row, &c,
			&profileID, &profileType, &profile.Name, &profile.GuardianName, &profile.RegionName,
			&profile.InstitutionName, &profile.InstitutionLevel, &profile.Class, &profile.Section,
			&profile.FeeFundCategoryIDs, &profileAct, &profileCr, &profileUp,
			&instID, &instName, &instRegionID, &instLevelID, &instActive,
		)
		if err != nil {
			return domain.ConsumerSnapshot{}, err
		}

		snap := domain.ConsumerSnapshot{Consumer: mapping.ToDomainConsumer(c)}
		if profileID.Valid {
			profile.ProfileID = profileID.Int64
			profile.ProfileType = profileType.String
			profile.ConsumerID = c.ConsumerID
			profile.IsActive = profileAct.Bool
			profile.CreatedAt = profileCr.Time
			profile.UpdatedAt = profileUp.Time
			p := mapping.ToDomainProfile(profile)
			snap.Profile = &p
		}
		if instID.Valid {
			inst := mapping.ToDomainInstitution(models.Institution{
				InstitutionID: instID.Int64,
				Name:          instName.String,
				RegionID:      instRegionID.Int64,
				LevelID:       instLevelID.Int64,
				IsActive:      instActive.Bool,
			})
			snap.Institution = &inst
		}
		return snap, nil
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan consumer snapshots", err)
	}
	return snapshots, nil
}
