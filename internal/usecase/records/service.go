// Package records is the document write path. Every accepted write lands in
// the source collection first; the index write that follows is advisory and
// never fails the request.
package records

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/supplyline-io/supplysearch/internal/domain"
	"github.com/supplyline-io/supplysearch/internal/domain/entity"
)

// Service coordinates source writes with index upkeep.
type Service struct {
	source  Source
	indexer Indexer
	logger  *zap.Logger
	now     func() time.Time
}

// New creates a records service.
func New(source Source, indexer Indexer, logger *zap.Logger) *Service {
	return &Service{source: source, indexer: indexer, logger: logger, now: time.Now}
}

// Upsert creates or overwrites a document. Returns true on create. The index
// write afterwards is best effort: its failure is logged, the document write
// stands.
func (s *Service) Upsert(ctx context.Context, entityType, id string, fields entity.Fields) (bool, error) {
	desc, ok := entity.Lookup(entityType)
	if !ok {
		return false, fmt.Errorf("%w: %s", domain.ErrUnknownEntityType, entityType)
	}

	created, err := s.source.Put(ctx, desc.Collection, id, fields, s.now().UnixMilli())
	if err != nil {
		return false, fmt.Errorf("store %s/%s: %w", entityType, id, err)
	}

	if err := s.indexer.Index(ctx, entityType, id, fields); err != nil {
		s.logger.Warn("document stored but index write failed",
			zap.String("entity_type", entityType),
			zap.String("entity_id", id),
			zap.Error(err),
		)
	}

	return created, nil
}

// Delete removes a document and its index entry. A missing document is
// domain.ErrDocumentNotFound; index removal is best effort like in Upsert.
func (s *Service) Delete(ctx context.Context, entityType, id string) error {
	desc, ok := entity.Lookup(entityType)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownEntityType, entityType)
	}

	if err := s.source.Delete(ctx, desc.Collection, id); err != nil {
		return fmt.Errorf("delete %s/%s: %w", entityType, id, err)
	}

	if err := s.indexer.Remove(ctx, entityType, id); err != nil {
		s.logger.Warn("document deleted but index removal failed",
			zap.String("entity_type", entityType),
			zap.String("entity_id", id),
			zap.Error(err),
		)
	}

	return nil
}
