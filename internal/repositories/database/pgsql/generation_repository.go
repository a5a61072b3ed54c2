package pgsql

import (
	"context"

	"github.com/SscSPs/fee_management_app/internal/apperrors"
	"github.com/SscSPs/fee_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fee_management_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// generationLockKey is the advisory lock key that serializes generation runs.
const generationLockKey int64 = 0x6368616c6c616e // "challan"

type PgxGenerationRepository struct {
	BaseRepository
}

func newPgxGenerationRepository(pool *pgxpool.Pool) *PgxGenerationRepository {
	return &PgxGenerationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.GenerationUnitBeginner = (*PgxGenerationRepository)(nil)

// BeginGeneration opens the run transaction and blocks until no other run holds
// the advisory lock. The lock is released when the transaction ends.
func (r *PgxGenerationRepository) BeginGeneration(ctx context.Context) (portsrepo.GenerationUnit, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1);`, generationLockKey); err != nil {
		_ = r.Rollback(ctx, tx)
		return nil, apperrors.NewAppError(500, "failed to acquire generation lock", err)
	}
	return &pgxGenerationUnit{
		PgxConsumerRepository: newPgxConsumerRepository(r.Pool, tx),
		PgxFeeRepository:      newPgxFeeRepository(r.Pool, tx),
		challans:              newPgxChallanRepository(r.Pool, tx),
		base:                  &r.BaseRepository,
		tx:                    tx,
	}, nil
}

// pgxGenerationUnit binds the consumer, fee and challan repositories to one transaction.
type pgxGenerationUnit struct {
	*PgxConsumerRepository
	*PgxFeeRepository
	challans *PgxChallanRepository
	base     *BaseRepository
	tx       pgx.Tx
}

var _ portsrepo.GenerationUnit = (*pgxGenerationUnit)(nil)

func (u *pgxGenerationUnit) ChallanNumberExists(ctx context.Context, challanNo string) (bool, error) {
	return u.challans.ChallanNumberExists(ctx, challanNo)
}

func (u *pgxGenerationUnit) InsertChallans(ctx context.Context, challans []domain.Challan) error {
	return u.challans.InsertChallans(ctx, challans)
}

func (u *pgxGenerationUnit) Commit(ctx context.Context) error {
	return u.base.Commit(ctx, u.tx)
}

func (u *pgxGenerationUnit) Rollback(ctx context.Context) error {
	return u.base.Rollback(ctx, u.tx)
}
