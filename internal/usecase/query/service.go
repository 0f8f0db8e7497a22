// Package query implements the indexed search path: first-token candidate
// fetch, all-token substring post-filter, three-tier relevance ranking, and
// offset pagination.
package query

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/supplyline-io/supplysearch/internal/domain"
	"github.com/supplyline-io/supplysearch/internal/domain/entity"
	"github.com/supplyline-io/supplysearch/internal/domain/search"
	"github.com/supplyline-io/supplysearch/internal/domain/search/token"
)

// Service executes searches against the token index.
type Service struct {
	repo           Repository
	candidateLimit int
	limits         search.Limits
}

// New creates a query service with default limits.
func New(repo Repository) *Service {
	return &Service{
		repo:           repo,
		candidateLimit: 100,
		limits:         search.Limits{Default: 20, Max: 50},
	}
}

// WithLimits configures the candidate cap and page size bounds.
func (s *Service) WithLimits(candidateLimit, defaultLimit, maxLimit int) *Service {
	if candidateLimit > 0 {
		s.candidateLimit = candidateLimit
	}
	if defaultLimit > 0 {
		s.limits.Default = defaultLimit
	}
	if maxLimit > 0 {
		s.limits.Max = maxLimit
	}
	return s
}

// Search runs a query against the index. Queries below the minimum length
// yield an empty page without touching storage. Index read failures are
// wrapped in domain.ErrIndexUnavailable so the caller can fall back to a
// collection scan.
func (s *Service) Search(ctx context.Context, queryText string, opts search.Options) (search.Page, error) {
	query := strings.ToLower(strings.TrimSpace(queryText))
	if len(query) < search.MinQueryLength {
		return search.Page{Results: []search.Result{}}, nil
	}

	queryTokens := token.QueryTokens(query)
	if len(queryTokens) == 0 {
		return search.Page{Results: []search.Result{}}, nil
	}

	// The first token drives the candidate fetch; the rest are enforced in
	// memory below. A common first token can therefore crowd true matches
	// out of the candidate window.
	candidates, err := s.repo.FindByToken(
		ctx, queryTokens[0], knownTypes(opts.Types), s.candidateLimit,
	)
	if err != nil {
		return search.Page{}, fmt.Errorf("%w: %w", domain.ErrIndexUnavailable, err)
	}

	results := make([]search.Result, 0, len(candidates))
	for _, e := range candidates {
		if !matchesAll(e.SearchableText, queryTokens) {
			continue
		}
		desc, ok := entity.Lookup(e.EntityType)
		if !ok {
			continue
		}
		rel := search.Relevance(query, e.SearchableText)
		results = append(results, search.NewResult(desc, e.EntityID, e.Display, rel))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Relevance < results[j].Relevance
	})

	return search.Paginate(results, opts.Limit, opts.Offset, s.limits), nil
}

// matchesAll requires every query token as a substring of the searchable
// text, not just the token that drove the candidate fetch.
func matchesAll(text string, tokens []string) bool {
	for _, t := range tokens {
		if !strings.Contains(text, t) {
			return false
		}
	}
	return true
}

// knownTypes drops unregistered entity types from a filter. An empty or
// fully-unknown filter means all types (nil lets the repository skip
// filtering).
func knownTypes(types []string) []string {
	if len(types) == 0 {
		return nil
	}
	out := make([]string, 0, len(types))
	for _, t := range types {
		if _, ok := entity.Lookup(t); ok {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
