// Package supplysearch embeds the search service as a library: the same
// index, query, and fallback machinery the server runs, wired directly to
// Redis without the HTTP layer.
package supplysearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/supplyline-io/supplysearch/internal/db"
	dbRedis "github.com/supplyline-io/supplysearch/internal/db/redis"
	"github.com/supplyline-io/supplysearch/internal/domain"
	"github.com/supplyline-io/supplysearch/internal/domain/entity"
	domsearch "github.com/supplyline-io/supplysearch/internal/domain/search"
	indexrepo "github.com/supplyline-io/supplysearch/internal/repository/index"
	sourcerepo "github.com/supplyline-io/supplysearch/internal/repository/source"
	indexeruc "github.com/supplyline-io/supplysearch/internal/usecase/indexer"
	queryuc "github.com/supplyline-io/supplysearch/internal/usecase/query"
	rebuilduc "github.com/supplyline-io/supplysearch/internal/usecase/rebuild"
	recordsuc "github.com/supplyline-io/supplysearch/internal/usecase/records"
	scanneruc "github.com/supplyline-io/supplysearch/internal/usecase/scanner"
)

const defaultReadinessTimeout = 10 * time.Second

// Внутренние интерфейсы для подмены в тестах.
type searchUseCase interface {
	Search(ctx context.Context, query string, opts domsearch.Options) (domsearch.Page, error)
}

type fallbackUseCase interface {
	Search(ctx context.Context, query string, opts domsearch.Options) domsearch.Page
}

type recordsUseCase interface {
	Upsert(ctx context.Context, entityType, id string, fields entity.Fields) (bool, error)
	Delete(ctx context.Context, entityType, id string) error
}

type rebuildUseCase interface {
	Run(ctx context.Context, entityTypes []string) rebuilduc.Report
}

type indexerUseCase interface {
	Index(ctx context.Context, entityType, id string, fields entity.Fields) error
	Remove(ctx context.Context, entityType, id string) error
}

// Client is the supplysearch SDK entry point.
type Client struct {
	store    db.Store
	search   searchUseCase
	fallback fallbackUseCase
	records  recordsUseCase
	rebuild  rebuildUseCase
	indexer  indexerUseCase
}

// SearchOptions narrows and paginates a search.
type SearchOptions struct {
	Types  []string // entity type filter; empty means all registered types
	Limit  int
	Offset int
}

// Result is one search hit, rendered for display.
type Result struct {
	Type       string
	Title      string
	Subtitle   string
	Link       string
	EntityType string
	EntityID   string
	Relevance  int
}

// SearchPage is a ranked, paginated result list.
type SearchPage struct {
	Results []Result
	Total   int
	HasMore bool
}

// ReindexReport counts the outcome of a full index rebuild.
type ReindexReport struct {
	Indexed int
	Errors  int
}

// New creates a supplysearch Client and connects to Redis.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{keyPrefix: "sl:"}
	for _, o := range opts {
		o(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("supplysearch: database address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
		DB:       cfg.db,
	})
	if err != nil {
		return nil, fmt.Errorf("supplysearch: create store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("supplysearch: database not ready: %w", err)
	}

	return wireClient(store, cfg), nil
}

func wireClient(store db.Store, cfg *clientConfig) *Client {
	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	prefix := cfg.keyPrefix
	if prefix == "" {
		prefix = "sl:"
	}

	idxRepo := indexrepo.New(store, prefix)
	srcRepo := sourcerepo.New(store, prefix)

	indexerSvc := indexeruc.New(idxRepo, logger)
	querySvc := queryuc.New(idxRepo).
		WithLimits(cfg.candidateLimit, cfg.defaultLimit, cfg.maxLimit)
	scannerSvc := scanneruc.New(srcRepo, logger).
		WithLimits(cfg.scanLimit, cfg.defaultLimit, cfg.maxLimit)
	recordsSvc := recordsuc.New(srcRepo, indexerSvc, logger)
	rebuildSvc := rebuilduc.New(srcRepo, indexerSvc, logger)

	return &Client{
		store:    store,
		search:   querySvc,
		fallback: scannerSvc,
		records:  recordsSvc,
		rebuild:  rebuildSvc,
		indexer:  indexerSvc,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Upsert creates or overwrites a record and keeps the search index in step.
// Returns true on create. ErrUnknownEntityType surfaces for unregistered
// types.
func (c *Client) Upsert(ctx context.Context, entityType, id string, fields map[string]string) (bool, error) {
	created, err := c.records.Upsert(ctx, entityType, id, entity.Fields(fields))
	if err != nil {
		return false, fmt.Errorf("upsert: %w", err)
	}
	return created, nil
}

// Delete removes a record and its index entry.
func (c *Client) Delete(ctx context.Context, entityType, id string) error {
	if err := c.records.Delete(ctx, entityType, id); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

// Search runs a query. Like the HTTP server, an unreadable index degrades to
// a scan of recent documents instead of failing.
func (c *Client) Search(ctx context.Context, query string, opts *SearchOptions) (SearchPage, error) {
	if opts == nil {
		opts = &SearchOptions{}
	}
	domOpts := domsearch.Options{
		Types:  opts.Types,
		Limit:  opts.Limit,
		Offset: opts.Offset,
	}

	page, err := c.search.Search(ctx, query, domOpts)
	if err != nil {
		if !errors.Is(err, domain.ErrIndexUnavailable) {
			return SearchPage{}, fmt.Errorf("search: %w", err)
		}
		page = c.fallback.Search(ctx, query, domOpts)
	}
	return fromPage(page), nil
}

// Index writes the index entry for a record without touching the record
// itself, for callers that manage source documents out of band. Unknown
// entity types are skipped silently.
func (c *Client) Index(ctx context.Context, entityType, id string, fields map[string]string) error {
	if err := c.indexer.Index(ctx, entityType, id, entity.Fields(fields)); err != nil {
		return fmt.Errorf("index: %w", err)
	}
	return nil
}

// Remove deletes a record's index entry, leaving the record in place.
func (c *Client) Remove(ctx context.Context, entityType, id string) error {
	if err := c.indexer.Remove(ctx, entityType, id); err != nil {
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}

// Reindex rebuilds the index from source records; with no arguments every
// registered entity type is rebuilt.
func (c *Client) Reindex(ctx context.Context, entityTypes ...string) ReindexReport {
	report := c.rebuild.Run(ctx, entityTypes)
	return ReindexReport{Indexed: report.Indexed, Errors: report.Errors}
}

func fromPage(page domsearch.Page) SearchPage {
	results := make([]Result, len(page.Results))
	for i, r := range page.Results {
		results[i] = Result{
			Type:       r.Type,
			Title:      r.Title,
			Subtitle:   r.Subtitle,
			Link:       r.Link,
			EntityType: r.EntityType,
			EntityID:   r.EntityID,
			Relevance:  r.Relevance,
		}
	}
	return SearchPage{
		Results: results,
		Total:   page.Total,
		HasMore: page.HasMore,
	}
}
