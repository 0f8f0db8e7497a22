// Package scanner is the degraded search path: when the token index cannot
// serve a query, recent source documents are scanned directly and matched on
// the raw query string.
package scanner

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/supplyline-io/supplysearch/internal/domain/entity"
	domidx "github.com/supplyline-io/supplysearch/internal/domain/index"
	"github.com/supplyline-io/supplysearch/internal/domain/search"
)

// Service scans source collections directly, bypassing the index.
type Service struct {
	repo      Repository
	logger    *zap.Logger
	scanLimit int
	limits    search.Limits
}

// New creates a fallback scanner with default limits.
func New(repo Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:      repo,
		logger:    logger,
		scanLimit: 50,
		limits:    search.Limits{Default: 20, Max: 50},
	}
}

// WithLimits configures the per-type scan cap and page size bounds.
func (s *Service) WithLimits(scanLimit, defaultLimit, maxLimit int) *Service {
	if scanLimit > 0 {
		s.scanLimit = scanLimit
	}
	if defaultLimit > 0 {
		s.limits.Default = defaultLimit
	}
	if maxLimit > 0 {
		s.limits.Max = maxLimit
	}
	return s
}

// Search scans the most recent documents of each requested entity type
// concurrently and matches the whole query as a substring of each document's
// searchable text. A failing type contributes nothing; the scan never fails
// as a whole.
func (s *Service) Search(ctx context.Context, queryText string, opts search.Options) search.Page {
	query := strings.ToLower(strings.TrimSpace(queryText))
	if len(query) < search.MinQueryLength {
		return search.Page{Results: []search.Result{}}
	}

	descs := descriptorsFor(opts.Types)

	// One slot per type keeps the merged order independent of goroutine
	// scheduling.
	perType := make([][]search.Result, len(descs))
	var wg sync.WaitGroup
	for i, desc := range descs {
		wg.Add(1)
		go func(i int, desc entity.Descriptor) {
			defer wg.Done()
			perType[i] = s.scanType(ctx, desc, query)
		}(i, desc)
	}
	wg.Wait()

	var results []search.Result
	for _, r := range perType {
		results = append(results, r...)
	}
	if results == nil {
		results = []search.Result{}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Relevance < results[j].Relevance
	})

	return search.Paginate(results, opts.Limit, opts.Offset, s.limits)
}

func (s *Service) scanType(ctx context.Context, desc entity.Descriptor, query string) []search.Result {
	docs, err := s.repo.Recent(ctx, desc.Collection, s.scanLimit)
	if err != nil {
		s.logger.Warn("fallback scan failed for entity type",
			zap.String("entity_type", desc.Type),
			zap.Error(err),
		)
		return nil
	}

	var results []search.Result
	for _, doc := range docs {
		text := domidx.SearchableText(desc, doc.Fields)
		if !strings.Contains(text, query) {
			continue
		}
		rel := search.Relevance(query, text)
		results = append(results, search.NewResult(desc, doc.ID, entity.DisplayFromFields(doc.Fields), rel))
	}
	return results
}

// descriptorsFor resolves a type filter to registry descriptors; empty or
// fully-unknown filters mean all types.
func descriptorsFor(types []string) []entity.Descriptor {
	if len(types) == 0 {
		return entity.All()
	}
	out := make([]entity.Descriptor, 0, len(types))
	for _, t := range types {
		if desc, ok := entity.Lookup(t); ok {
			out = append(out, desc)
		}
	}
	if len(out) == 0 {
		return entity.All()
	}
	return out
}
