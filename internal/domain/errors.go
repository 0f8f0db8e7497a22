package domain

import "errors"

var (
	// ErrUnknownEntityType signals an entity type absent from the registry.
	ErrUnknownEntityType = errors.New("unknown entity type")
	// ErrDocumentNotFound signals a missing source document.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrIndexUnavailable signals that the search index could not be queried.
	// Callers are expected to fall back to a direct collection scan.
	ErrIndexUnavailable = errors.New("search index unavailable")
)
