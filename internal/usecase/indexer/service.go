// Package indexer derives and persists index entries for source documents.
// Indexing is advisory: the index is a side channel of the primary write,
// and callers are expected to log-and-drop any error it returns rather than
// fail the write that triggered it.
package indexer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/supplyline-io/supplysearch/internal/domain/entity"
	domidx "github.com/supplyline-io/supplysearch/internal/domain/index"
	"github.com/supplyline-io/supplysearch/internal/metrics"
)

// Service writes and removes index entries.
type Service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

// New creates an indexer service.
func New(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// Index derives an entry from the source document and overwrites any prior
// entry at the same key. An unregistered entity type is logged and skipped,
// never an error. A storage failure is returned for the caller to discard.
func (s *Service) Index(ctx context.Context, entityType, entityID string, fields entity.Fields) error {
	desc, ok := entity.Lookup(entityType)
	if !ok {
		s.logger.Warn("skipping index write for unknown entity type",
			zap.String("entity_type", entityType),
			zap.String("entity_id", entityID),
		)
		return nil
	}

	e := domidx.FromSource(desc, entityID, fields, s.now().UnixMilli())
	if err := s.repo.Put(ctx, e); err != nil {
		metrics.IndexWritesTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("index %s/%s: %w", entityType, entityID, err)
	}

	metrics.IndexWritesTotal.WithLabelValues("ok").Inc()
	return nil
}

// Remove deletes the entry for a source document. Unknown entity types are
// skipped like in Index; removing an absent entry is a no-op.
func (s *Service) Remove(ctx context.Context, entityType, entityID string) error {
	if _, ok := entity.Lookup(entityType); !ok {
		s.logger.Warn("skipping index removal for unknown entity type",
			zap.String("entity_type", entityType),
			zap.String("entity_id", entityID),
		)
		return nil
	}

	if err := s.repo.Delete(ctx, entityType, entityID); err != nil {
		metrics.IndexWritesTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("unindex %s/%s: %w", entityType, entityID, err)
	}

	metrics.IndexWritesTotal.WithLabelValues("ok").Inc()
	return nil
}
