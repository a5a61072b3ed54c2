package repositories

import (
	"context"

	"github.com/SscSPs/fee_management_app/internal/core/domain"
)

// ConsumerReader defines read operations for consumers and their profiles
type ConsumerReader interface {
	// FindActiveConsumerByNumber retrieves an active, non-deleted consumer by its billing account number.
	FindActiveConsumerByNumber(ctx context.Context, consumerNumber string) (*domain.Consumer, error)

	// FindActiveProfile retrieves the authoritative profile of a consumer.
	FindActiveProfile(ctx context.Context, consumerID int64) (*domain.Profile, error)

	// CountConsumers counts consumers that are not soft-deleted.
	CountConsumers(ctx context.Context) (int64, error)
}

// ConsumerSnapshotReader pages through active consumers for a generation run.
type ConsumerSnapshotReader interface {
	// ListActiveConsumerSnapshots returns up to limit active consumers with an id
	// greater than afterID, ordered by id, with profile and institution loaded.
	ListActiveConsumerSnapshots(ctx context.Context, afterID int64, limit int) ([]domain.ConsumerSnapshot, error)
}

// ConsumerRepositoryFacade combines all consumer-related repository interfaces
type ConsumerRepositoryFacade interface {
	ConsumerReader
	ConsumerSnapshotReader
}
