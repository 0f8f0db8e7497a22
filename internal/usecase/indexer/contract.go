package indexer

import (
	"context"

	domidx "github.com/supplyline-io/supplysearch/internal/domain/index"
)

// Repository defines the storage contract for index entries.
type Repository interface {
	Put(ctx context.Context, e domidx.Entry) error
	Delete(ctx context.Context, entityType, entityID string) error
}
