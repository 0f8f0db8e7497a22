// Package dbtest provides an in-memory db.Store for tests that exercise
// full index/query round trips without a running Redis.
package dbtest

import (
	"context"
	"path"
	"sort"
	"sync"
	"time"

	"github.com/supplyline-io/supplysearch/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

type scoredMember struct {
	member string
	score  float64
}

// Store is a mutex-guarded in-memory db.Store. Fail lets tests inject an
// error for a specific operation name (db.Op* constants).
type Store struct {
	mu     sync.Mutex
	hashes map[string]map[string]string
	sets   map[string]map[string]struct{}
	zsets  map[string][]scoredMember

	Fail map[string]error
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		hashes: make(map[string]map[string]string),
		sets:   make(map[string]map[string]struct{}),
		zsets:  make(map[string][]scoredMember),
	}
}

// FailOp makes every subsequent call of the named operation return err.
func (s *Store) FailOp(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail == nil {
		s.Fail = make(map[string]error)
	}
	s.Fail[op] = err
}

func (s *Store) failure(op string) error {
	if err, ok := s.Fail[op]; ok {
		return &db.Error{Op: op, Err: err}
	}
	return nil
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close() {}

// WaitForReady always succeeds.
func (s *Store) WaitForReady(context.Context, time.Duration) error { return nil }

// HSet sets hash fields, merging into any existing hash.
func (s *Store) HSet(_ context.Context, key string, fields map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure(db.OpHSet); err != nil {
		return err
	}
	h, ok := s.hashes[key]
	if !ok {
		h = make(map[string]string)
		s.hashes[key] = h
	}
	for k, v := range fields {
		h[k] = v
	}
	return nil
}

// HGetAll returns a copy of a hash; missing keys yield an empty map.
func (s *Store) HGetAll(_ context.Context, key string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure(db.OpHGetAll); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(s.hashes[key]))
	for k, v := range s.hashes[key] {
		out[k] = v
	}
	return out, nil
}

// HGetAllMulti returns hashes positionally for the given keys.
func (s *Store) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	out := make([]map[string]string, 0, len(keys))
	for _, key := range keys {
		m, err := s.HGetAll(ctx, key)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// Del removes a key from every namespace.
func (s *Store) Del(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure(db.OpDel); err != nil {
		return err
	}
	delete(s.hashes, key)
	delete(s.sets, key)
	delete(s.zsets, key)
	return nil
}

// Exists reports whether a hash key is present.
func (s *Store) Exists(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure(db.OpExists); err != nil {
		return false, err
	}
	_, ok := s.hashes[key]
	return ok, nil
}

// Scan returns hash keys matching a glob pattern, sorted for determinism.
func (s *Store) Scan(_ context.Context, pattern string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure(db.OpScan); err != nil {
		return nil, err
	}
	var keys []string
	for key := range s.hashes {
		if ok, _ := path.Match(pattern, key); ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// SAdd adds members to a set.
func (s *Store) SAdd(_ context.Context, key string, members ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure(db.OpSAdd); err != nil {
		return err
	}
	set, ok := s.sets[key]
	if !ok {
		set = make(map[string]struct{})
		s.sets[key] = set
	}
	for _, m := range members {
		set[m] = struct{}{}
	}
	return nil
}

// SRem removes members from a set.
func (s *Store) SRem(_ context.Context, key string, members ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure(db.OpSRem); err != nil {
		return err
	}
	for _, m := range members {
		delete(s.sets[key], m)
	}
	return nil
}

// SMembers returns set members sorted for determinism.
func (s *Store) SMembers(_ context.Context, key string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure(db.OpSMembers); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(s.sets[key]))
	for m := range s.sets[key] {
		out = append(out, m)
	}
	sort.Strings(out)
	return out, nil
}

// ZAdd adds or rescores a member.
func (s *Store) ZAdd(_ context.Context, key string, score float64, member string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure(db.OpZAdd); err != nil {
		return err
	}
	zs := s.zsets[key]
	for i := range zs {
		if zs[i].member == member {
			zs[i].score = score
			return nil
		}
	}
	s.zsets[key] = append(zs, scoredMember{member: member, score: score})
	return nil
}

// ZRem removes a member.
func (s *Store) ZRem(_ context.Context, key string, member string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure(db.OpZRem); err != nil {
		return err
	}
	zs := s.zsets[key]
	for i := range zs {
		if zs[i].member == member {
			s.zsets[key] = append(zs[:i], zs[i+1:]...)
			return nil
		}
	}
	return nil
}

// ZRevRangeN returns up to n members by descending score; the stable sort
// keeps equal scores in insertion order.
func (s *Store) ZRevRangeN(_ context.Context, key string, n int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure(db.OpZRevRange); err != nil {
		return nil, err
	}
	zs := make([]scoredMember, len(s.zsets[key]))
	copy(zs, s.zsets[key])
	sort.SliceStable(zs, func(i, j int) bool { return zs[i].score > zs[j].score })
	if n > len(zs) {
		n = len(zs)
	}
	out := make([]string, 0, n)
	for _, m := range zs[:n] {
		out = append(out, m.member)
	}
	return out, nil
}
