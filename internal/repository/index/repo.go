// Package index persists search index entries as one hash per entry plus a
// posting set per token.
package index

import (
	"context"
	"fmt"
	"sort"
	"strings"

	domidx "github.com/supplyline-io/supplysearch/internal/domain/index"
)

// store is the consumer interface for index persistence (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	SAdd(ctx context.Context, key string, members ...string) error
	SRem(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
}

// Repo implements the index writer/reader storage contract.
type Repo struct {
	store  store
	prefix string
}

// New creates an index repository. prefix namespaces every key.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

func (r *Repo) entryKey(entityType, entityID string) string {
	return r.prefix + "search_index:" + domidx.Key(entityType, entityID)
}

func (r *Repo) tokenKey(token string) string {
	return r.prefix + "search_index:token:" + token
}

// typeKeyPrefix matches entry keys belonging to one entity type.
func (r *Repo) typeKeyPrefix(entityType string) string {
	return r.prefix + "search_index:" + entityType + "_"
}

// Put overwrites the entry at its key and reconciles token postings: every
// current token is (re)linked — SAdd is idempotent, which lets a rebuild
// repair postings that drifted from the stored entry — and tokens no longer
// generated are unlinked. Safe to run concurrently per key (last write
// wins).
func (r *Repo) Put(ctx context.Context, e domidx.Entry) error {
	key := r.entryKey(e.EntityType, e.EntityID)

	prev, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return fmt.Errorf("read previous entry %s: %w", key, err)
	}
	prevTokens := splitTokens(prev[fieldTokens])

	if err := r.store.HSet(ctx, key, entryToFields(e)); err != nil {
		return fmt.Errorf("write entry %s: %w", key, err)
	}

	for _, tok := range e.Tokens {
		if err := r.store.SAdd(ctx, r.tokenKey(tok), key); err != nil {
			return fmt.Errorf("link token %q: %w", tok, err)
		}
	}
	for _, tok := range removedTokens(prevTokens, e.Tokens) {
		if err := r.store.SRem(ctx, r.tokenKey(tok), key); err != nil {
			return fmt.Errorf("unlink token %q: %w", tok, err)
		}
	}
	return nil
}

// Delete removes an entry and its token postings. Deleting an absent entry
// is a no-op.
func (r *Repo) Delete(ctx context.Context, entityType, entityID string) error {
	key := r.entryKey(entityType, entityID)

	prev, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return fmt.Errorf("read entry %s: %w", key, err)
	}
	if len(prev) == 0 {
		return nil
	}

	for _, tok := range splitTokens(prev[fieldTokens]) {
		if err := r.store.SRem(ctx, r.tokenKey(tok), key); err != nil {
			return fmt.Errorf("unlink token %q: %w", tok, err)
		}
	}
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("delete entry %s: %w", key, err)
	}
	return nil
}

// FindByToken returns up to limit entries whose token set contains token,
// optionally narrowed to the given entity types. Candidate order is
// deterministic (sorted entry keys).
func (r *Repo) FindByToken(
	ctx context.Context, token string, entityTypes []string, limit int,
) ([]domidx.Entry, error) {
	keys, err := r.store.SMembers(ctx, r.tokenKey(token))
	if err != nil {
		return nil, fmt.Errorf("read posting %q: %w", token, err)
	}

	if len(entityTypes) > 0 {
		keys = filterByType(keys, entityTypes, r.typeKeyPrefix)
	}
	sort.Strings(keys)
	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}
	if len(keys) == 0 {
		return nil, nil
	}

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("read entries: %w", err)
	}

	entries := make([]domidx.Entry, 0, len(hashes))
	for i, h := range hashes {
		if len(h) == 0 {
			// Posting outlived its entry (concurrent delete); skip.
			continue
		}
		e, err := entryFromFields(h)
		if err != nil {
			return nil, fmt.Errorf("decode entry %s: %w", keys[i], err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Probe verifies the index keyspace is readable. Reading an absent posting
// is fine; only a storage failure counts.
func (r *Repo) Probe(ctx context.Context) error {
	if _, err := r.store.SMembers(ctx, r.tokenKey("probe")); err != nil {
		return fmt.Errorf("probe index: %w", err)
	}
	return nil
}

func filterByType(keys, entityTypes []string, prefixFor func(string) string) []string {
	prefixes := make([]string, len(entityTypes))
	for i, t := range entityTypes {
		prefixes[i] = prefixFor(t)
	}
	out := keys[:0]
	for _, k := range keys {
		for _, p := range prefixes {
			if strings.HasPrefix(k, p) {
				out = append(out, k)
				break
			}
		}
	}
	return out
}

// removedTokens returns tokens present in prev but not in next.
func removedTokens(prev, next []string) []string {
	nextSet := make(map[string]struct{}, len(next))
	for _, t := range next {
		nextSet[t] = struct{}{}
	}
	var removed []string
	for _, t := range prev {
		if _, ok := nextSet[t]; !ok {
			removed = append(removed, t)
		}
	}
	return removed
}
