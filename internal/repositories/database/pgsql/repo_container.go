package pgsql

import (
	portsrepo "github.com/SscSPs/fee_management_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ConsumerRepo:   newPgxConsumerRepository(dbPool, nil),
		FeeRepo:        newPgxFeeRepository(dbPool, nil),
		ChallanRepo:    newPgxChallanRepository(dbPool, nil),
		GenerationRepo: newPgxGenerationRepository(dbPool),
	}
}
