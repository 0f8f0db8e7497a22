package query

import (
	"context"

	domidx "github.com/supplyline-io/supplysearch/internal/domain/index"
)

// Repository defines the index read contract.
type Repository interface {
	FindByToken(ctx context.Context, token string, entityTypes []string, limit int) ([]domidx.Entry, error)
}
