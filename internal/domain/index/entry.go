// Package index defines the denormalized search index entry derived from a
// source document.
package index

import (
	"strings"

	"github.com/supplyline-io/supplysearch/internal/domain/entity"
	"github.com/supplyline-io/supplysearch/internal/domain/search/token"
)

// Entry is one persisted index record, keyed by entityType_entityID. It is
// derived solely from the source document and can be regenerated at any time.
type Entry struct {
	EntityType     string
	EntityID       string
	Collection     string
	SearchableText string
	Tokens         []string
	Display        entity.DisplayData
	UpdatedAt      int64 // unix milliseconds of the last index write
}

// Key builds the storage key suffix for an entry.
func Key(entityType, entityID string) string {
	return entityType + "_" + entityID
}

// Key returns the entry's own storage key suffix.
func (e Entry) Key() string {
	return Key(e.EntityType, e.EntityID)
}

// FromSource derives an entry from a source document using the descriptor's
// search fields. Derivation is deterministic: reindexing unchanged fields
// yields an identical entry except UpdatedAt.
func FromSource(desc entity.Descriptor, id string, fields entity.Fields, updatedAt int64) Entry {
	text := SearchableText(desc, fields)
	return Entry{
		EntityType:     desc.Type,
		EntityID:       id,
		Collection:     desc.Collection,
		SearchableText: text,
		Tokens:         token.Tokenize(text),
		Display:        entity.DisplayFromFields(fields),
		UpdatedAt:      updatedAt,
	}
}

// SearchableText joins the configured search fields that are present and
// non-empty on the document, lowercased and space-separated.
func SearchableText(desc entity.Descriptor, fields entity.Fields) string {
	parts := make([]string, 0, len(desc.SearchFields))
	for _, name := range desc.SearchFields {
		if v := fields[name]; v != "" {
			parts = append(parts, v)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}
