// Package rebuild re-derives the whole token index from source collections.
package rebuild

import (
	"context"

	"go.uber.org/zap"

	"github.com/supplyline-io/supplysearch/internal/domain/entity"
	"github.com/supplyline-io/supplysearch/internal/metrics"
)

// Report counts the outcome of a full rebuild.
type Report struct {
	Indexed int `json:"indexed"`
	Errors  int `json:"errors"`
}

// Service walks every registered entity type and re-indexes each document.
type Service struct {
	source  Source
	indexer Indexer
	logger  *zap.Logger
}

// New creates a rebuild service.
func New(source Source, indexer Indexer, logger *zap.Logger) *Service {
	return &Service{source: source, indexer: indexer, logger: logger}
}

// Run processes entity types sequentially; an empty entityTypes list means
// every registered type. A document that fails to index is counted and
// skipped; a collection that cannot be listed counts one error and the
// rebuild moves on. Existing entries for documents that no longer exist are
// left in place since they only overwrite by key.
func (s *Service) Run(ctx context.Context, entityTypes []string) Report {
	var report Report

	for _, desc := range s.descriptorsFor(entityTypes) {
		docs, err := s.source.ScanAll(ctx, desc.Collection)
		if err != nil {
			s.logger.Error("rebuild: listing collection failed",
				zap.String("entity_type", desc.Type),
				zap.Error(err),
			)
			metrics.RebuildDocumentsTotal.WithLabelValues(desc.Type, "error").Inc()
			report.Errors++
			continue
		}

		for _, doc := range docs {
			if err := s.indexer.Index(ctx, desc.Type, doc.ID, doc.Fields); err != nil {
				s.logger.Warn("rebuild: indexing document failed",
					zap.String("entity_type", desc.Type),
					zap.String("entity_id", doc.ID),
					zap.Error(err),
				)
				metrics.RebuildDocumentsTotal.WithLabelValues(desc.Type, "error").Inc()
				report.Errors++
				continue
			}
			metrics.RebuildDocumentsTotal.WithLabelValues(desc.Type, "ok").Inc()
			report.Indexed++
		}

		s.logger.Info("rebuild: collection done",
			zap.String("entity_type", desc.Type),
			zap.Int("documents", len(docs)),
		)
	}

	return report
}

// descriptorsFor resolves the requested types. Unregistered names are logged
// and dropped; rebuilding only unknown types does nothing.
func (s *Service) descriptorsFor(entityTypes []string) []entity.Descriptor {
	if len(entityTypes) == 0 {
		return entity.All()
	}
	descs := make([]entity.Descriptor, 0, len(entityTypes))
	for _, t := range entityTypes {
		desc, ok := entity.Lookup(t)
		if !ok {
			s.logger.Warn("rebuild: skipping unknown entity type", zap.String("entity_type", t))
			continue
		}
		descs = append(descs, desc)
	}
	return descs
}
