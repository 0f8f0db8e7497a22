// Package entity holds the static registry of searchable entity types.
package entity

// Fields is the flat string-field view of a source document, matching the
// hash representation in the store.
type Fields map[string]string

// Document pairs a source document ID with its fields.
type Document struct {
	ID     string
	Fields Fields
}

// CreatedAtField is stamped on every source document at first write and
// drives the recency ordering used by the fallback scanner.
const CreatedAtField = "createdAt"

// Descriptor is the compiled-in configuration of one entity type: where its
// source documents live, which fields feed the search index, and how a hit is
// rendered.
type Descriptor struct {
	Type         string
	Label        string
	Collection   string
	SearchFields []string
	TitleField   string
	Subtitle     func(d DisplayData) string
	Link         func(id string, d DisplayData) string
}

// Title renders the display title from a snapshot, empty when the field is
// absent.
func (desc Descriptor) Title(d DisplayData) string {
	return d.Field(desc.TitleField)
}
