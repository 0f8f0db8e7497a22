package records

import (
	"context"

	"github.com/supplyline-io/supplysearch/internal/domain/entity"
)

// Source persists documents in their home collections.
type Source interface {
	Put(ctx context.Context, collection, id string, fields entity.Fields, now int64) (created bool, err error)
	Delete(ctx context.Context, collection, id string) error
}

// Indexer keeps the search index in step with document writes.
type Indexer interface {
	Index(ctx context.Context, entityType, entityID string, fields entity.Fields) error
	Remove(ctx context.Context, entityType, entityID string) error
}
