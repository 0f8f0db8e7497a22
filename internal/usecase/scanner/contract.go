package scanner

import (
	"context"

	"github.com/supplyline-io/supplysearch/internal/domain/entity"
)

// Repository defines the source-document read contract.
type Repository interface {
	Recent(ctx context.Context, collection string, n int) ([]entity.Document, error)
}
