// Package search holds the query/result records shared by the indexed and
// fallback search paths.
package search

import (
	"strings"

	"github.com/supplyline-io/supplysearch/internal/domain/entity"
)

// Relevance tiers, lower is better.
const (
	// RelevancePrefix: searchable text starts with the full query.
	RelevancePrefix = 0
	// RelevanceSubstring: searchable text contains the full query.
	RelevanceSubstring = 1
	// RelevanceToken: matched only through token intersection.
	RelevanceToken = 2
)

// MinQueryLength is the hard product rule: queries shorter than this are
// rejected before touching storage.
const MinQueryLength = 2

// Options narrows and paginates a search.
type Options struct {
	Types  []string // entity type filter; empty means all registered types
	Limit  int
	Offset int
}

// Result is one rendered hit.
type Result struct {
	Type       string `json:"type"`
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	Link       string `json:"link"`
	EntityType string `json:"entityType"`
	EntityID   string `json:"entityId"`
	Relevance  int    `json:"relevance"`
}

// Page is a ranked, paginated result list.
type Page struct {
	Results []Result
	Total   int
	HasMore bool
}

// Limits bounds requested page sizes.
type Limits struct {
	Default int
	Max     int
}

// Paginate applies limit and offset to an already-ranked result list. A
// non-positive limit falls back to the default; oversized limits clamp to
// the maximum; an offset past the end yields an empty page, not an error.
func Paginate(results []Result, limit, offset int, bounds Limits) Page {
	if limit <= 0 {
		limit = bounds.Default
	}
	if bounds.Max > 0 && limit > bounds.Max {
		limit = bounds.Max
	}
	if offset < 0 {
		offset = 0
	}

	total := len(results)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	return Page{
		Results: results[offset:end],
		Total:   total,
		HasMore: offset+limit < total,
	}
}

// Relevance ranks searchable text against the full lowercased query.
func Relevance(query, searchableText string) int {
	switch {
	case strings.HasPrefix(searchableText, query):
		return RelevancePrefix
	case strings.Contains(searchableText, query):
		return RelevanceSubstring
	default:
		return RelevanceToken
	}
}

// NewResult renders a hit from an entity's display snapshot.
func NewResult(desc entity.Descriptor, entityID string, d entity.DisplayData, relevance int) Result {
	return Result{
		Type:       desc.Label,
		Title:      desc.Title(d),
		Subtitle:   desc.Subtitle(d),
		Link:       desc.Link(entityID, d),
		EntityType: desc.Type,
		EntityID:   entityID,
		Relevance:  relevance,
	}
}
