// Package source reads and writes source documents in their home
// collections: one hash per document plus a per-collection recency set.
package source

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/supplyline-io/supplysearch/internal/domain"
	"github.com/supplyline-io/supplysearch/internal/domain/entity"
)

// store is the consumer interface for source collections (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
	ZAdd(ctx context.Context, key string, score float64, member string) error
	ZRem(ctx context.Context, key string, member string) error
	ZRevRangeN(ctx context.Context, key string, n int) ([]string, error)
}

// Repo implements source-document storage.
type Repo struct {
	store  store
	prefix string
}

// New creates a source repository. prefix namespaces every key.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

func (r *Repo) docKey(collection, id string) string {
	return r.prefix + collection + ":" + id
}

// recentKey lives under its own namespace so collection scans never pick it
// up.
func (r *Repo) recentKey(collection string) string {
	return r.prefix + "recent:" + collection
}

// Put creates or replaces a document whole: fields absent from the new set
// are dropped, so the stored document always equals the last accepted write
// and anything derived from those fields (index entries included) can be
// regenerated from it. On first write the creation timestamp is stamped and
// the document enters the recency set; updates keep the original creation
// time. Returns true when the document was created.
func (r *Repo) Put(
	ctx context.Context, collection, id string, fields entity.Fields, now int64,
) (bool, error) {
	key := r.docKey(collection, id)

	prev, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return false, fmt.Errorf("read document %s: %w", key, err)
	}
	exists := len(prev) > 0

	toWrite := make(map[string]string, len(fields)+1)
	for k, v := range fields {
		toWrite[k] = v
	}
	if toWrite[entity.CreatedAtField] == "" {
		if prev[entity.CreatedAtField] != "" {
			toWrite[entity.CreatedAtField] = prev[entity.CreatedAtField]
		} else {
			toWrite[entity.CreatedAtField] = strconv.FormatInt(now, 10)
		}
	}

	// HSET merges into an existing hash; clear it first so the write is a
	// replacement, not a patch.
	if exists {
		if err := r.store.Del(ctx, key); err != nil {
			return false, fmt.Errorf("clear document %s: %w", key, err)
		}
	}
	if err := r.store.HSet(ctx, key, toWrite); err != nil {
		return false, fmt.Errorf("write document %s: %w", key, err)
	}

	if !exists {
		createdAt, parseErr := strconv.ParseFloat(toWrite[entity.CreatedAtField], 64)
		if parseErr != nil {
			createdAt = float64(now)
		}
		if err := r.store.ZAdd(ctx, r.recentKey(collection), createdAt, id); err != nil {
			return false, fmt.Errorf("track recency %s: %w", key, err)
		}
	}

	return !exists, nil
}

// Get returns a document's fields.
func (r *Repo) Get(ctx context.Context, collection, id string) (entity.Fields, error) {
	h, err := r.store.HGetAll(ctx, r.docKey(collection, id))
	if err != nil {
		return nil, fmt.Errorf("read document %s/%s: %w", collection, id, err)
	}
	if len(h) == 0 {
		return nil, domain.ErrDocumentNotFound
	}
	return entity.Fields(h), nil
}

// Delete removes a document and its recency marker.
func (r *Repo) Delete(ctx context.Context, collection, id string) error {
	key := r.docKey(collection, id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrDocumentNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("delete document %s: %w", key, err)
	}
	if err := r.store.ZRem(ctx, r.recentKey(collection), id); err != nil {
		return fmt.Errorf("untrack recency %s: %w", key, err)
	}
	return nil
}

// Recent returns up to n most recently created documents of a collection.
func (r *Repo) Recent(ctx context.Context, collection string, n int) ([]entity.Document, error) {
	ids, err := r.store.ZRevRangeN(ctx, r.recentKey(collection), n)
	if err != nil {
		return nil, fmt.Errorf("recent %s: %w", collection, err)
	}
	return r.fetchDocs(ctx, collection, ids)
}

// ScanAll returns every document of a collection, ordered by ID.
func (r *Repo) ScanAll(ctx context.Context, collection string) ([]entity.Document, error) {
	keys, err := r.store.Scan(ctx, r.docKey(collection, "*"))
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", collection, err)
	}

	keyPrefix := r.docKey(collection, "")
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, keyPrefix))
	}
	return r.fetchDocs(ctx, collection, ids)
}

func (r *Repo) fetchDocs(ctx context.Context, collection string, ids []string) ([]entity.Document, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.docKey(collection, id)
	}

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("read documents %s: %w", collection, err)
	}

	docs := make([]entity.Document, 0, len(hashes))
	for i, h := range hashes {
		if len(h) == 0 {
			// Deleted between listing and fetch; skip.
			continue
		}
		docs = append(docs, entity.Document{ID: ids[i], Fields: entity.Fields(h)})
	}
	return docs, nil
}
