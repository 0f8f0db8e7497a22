package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// IndexProber checks that the search index is readable.
type IndexProber interface {
	Probe(ctx context.Context) error
}
