package indexer

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/supplyline-io/supplysearch/internal/domain/entity"
	domidx "github.com/supplyline-io/supplysearch/internal/domain/index"
)

type mockRepo struct {
	putFn    func(ctx context.Context, e domidx.Entry) error
	deleteFn func(ctx context.Context, entityType, entityID string) error

	puts    []domidx.Entry
	deletes []string
}

func (m *mockRepo) Put(ctx context.Context, e domidx.Entry) error {
	m.puts = append(m.puts, e)
	if m.putFn != nil {
		return m.putFn(ctx, e)
	}
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, entityType, entityID string) error {
	m.deletes = append(m.deletes, domidx.Key(entityType, entityID))
	if m.deleteFn != nil {
		return m.deleteFn(ctx, entityType, entityID)
	}
	return nil
}

func newTestService(repo *mockRepo, at time.Time) *Service {
	s := New(repo, zap.NewNop())
	s.now = func() time.Time { return at }
	return s
}

func TestIndexBuildsEntry(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo, time.UnixMilli(1700000000000))

	err := svc.Index(context.Background(), "purchaseOrder", "po-1", entity.Fields{
		"poNumber":   "PO-TEST-001",
		"vendorName": "Acme",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.puts) != 1 {
		t.Fatalf("expected 1 put, got %d", len(repo.puts))
	}

	e := repo.puts[0]
	if e.Key() != "purchaseOrder_po-1" {
		t.Errorf("key = %q", e.Key())
	}
	if e.SearchableText != "po-test-001 acme" {
		t.Errorf("searchableText = %q", e.SearchableText)
	}
	if e.UpdatedAt != 1700000000000 {
		t.Errorf("updatedAt = %d", e.UpdatedAt)
	}
}

func TestIndexIdempotent(t *testing.T) {
	repo := &mockRepo{}
	fields := entity.Fields{"poNumber": "PO-TEST-001", "vendorName": "Acme"}

	svc := newTestService(repo, time.UnixMilli(1000))
	if err := svc.Index(context.Background(), "purchaseOrder", "po-1", fields); err != nil {
		t.Fatalf("first index: %v", err)
	}

	svc.now = func() time.Time { return time.UnixMilli(2000) }
	if err := svc.Index(context.Background(), "purchaseOrder", "po-1", fields); err != nil {
		t.Fatalf("second index: %v", err)
	}

	first, second := repo.puts[0], repo.puts[1]
	if first.UpdatedAt == second.UpdatedAt {
		t.Fatal("expected distinct timestamps")
	}
	first.UpdatedAt, second.UpdatedAt = 0, 0
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("entries differ beyond updatedAt:\n%+v\n%+v", first, second)
	}
}

func TestIndexUnknownTypeIsNoOp(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo, time.Now())

	if err := svc.Index(context.Background(), "warehouse", "w1", entity.Fields{"name": "Dock 7"}); err != nil {
		t.Fatalf("unknown type must not error: %v", err)
	}
	if len(repo.puts) != 0 {
		t.Fatalf("unknown type produced a put: %v", repo.puts)
	}
}

func TestIndexReturnsStorageError(t *testing.T) {
	wantErr := errors.New("store down")
	repo := &mockRepo{putFn: func(context.Context, domidx.Entry) error { return wantErr }}
	svc := newTestService(repo, time.Now())

	err := svc.Index(context.Background(), "vendor", "v1", entity.Fields{"name": "Acme"})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped storage error, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo, time.Now())

	if err := svc.Remove(context.Background(), "vendor", "v1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(repo.deletes) != 1 || repo.deletes[0] != "vendor_v1" {
		t.Fatalf("unexpected deletes: %v", repo.deletes)
	}

	if err := svc.Remove(context.Background(), "warehouse", "w1"); err != nil {
		t.Fatalf("unknown type must not error: %v", err)
	}
	if len(repo.deletes) != 1 {
		t.Fatal("unknown type reached the repository")
	}
}
