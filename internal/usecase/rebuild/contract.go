package rebuild

import (
	"context"

	"github.com/supplyline-io/supplysearch/internal/domain/entity"
)

// Source lists every document of a collection.
type Source interface {
	ScanAll(ctx context.Context, collection string) ([]entity.Document, error)
}

// Indexer writes one index entry per source document.
type Indexer interface {
	Index(ctx context.Context, entityType, entityID string, fields entity.Fields) error
}
