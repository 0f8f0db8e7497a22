package records

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/supplyline-io/supplysearch/internal/domain"
	"github.com/supplyline-io/supplysearch/internal/domain/entity"
)

type mockSource struct {
	putFn    func(ctx context.Context, collection, id string, fields entity.Fields, now int64) (bool, error)
	deleteFn func(ctx context.Context, collection, id string) error

	putCollections []string
	deletes        []string
}

func (m *mockSource) Put(ctx context.Context, collection, id string, fields entity.Fields, now int64) (bool, error) {
	m.putCollections = append(m.putCollections, collection)
	if m.putFn != nil {
		return m.putFn(ctx, collection, id, fields, now)
	}
	return true, nil
}

func (m *mockSource) Delete(ctx context.Context, collection, id string) error {
	m.deletes = append(m.deletes, collection+":"+id)
	if m.deleteFn != nil {
		return m.deleteFn(ctx, collection, id)
	}
	return nil
}

type mockIndexer struct {
	indexErr  error
	removeErr error

	indexed []string
	removed []string
}

func (m *mockIndexer) Index(_ context.Context, entityType, entityID string, _ entity.Fields) error {
	m.indexed = append(m.indexed, entityType+"_"+entityID)
	return m.indexErr
}

func (m *mockIndexer) Remove(_ context.Context, entityType, entityID string) error {
	m.removed = append(m.removed, entityType+"_"+entityID)
	return m.removeErr
}

func TestUpsertStoresAndIndexes(t *testing.T) {
	src := &mockSource{}
	idx := &mockIndexer{}
	svc := New(src, idx, zap.NewNop())

	created, err := svc.Upsert(context.Background(), "purchaseOrder", "po-1", entity.Fields{"poNumber": "PO-1"})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if !created {
		t.Error("expected created=true from a fresh put")
	}
	if len(src.putCollections) != 1 || src.putCollections[0] != "purchase_orders" {
		t.Errorf("collections = %v", src.putCollections)
	}
	if len(idx.indexed) != 1 || idx.indexed[0] != "purchaseOrder_po-1" {
		t.Errorf("indexed = %v", idx.indexed)
	}
}

func TestUpsertUnknownType(t *testing.T) {
	svc := New(&mockSource{}, &mockIndexer{}, zap.NewNop())

	_, err := svc.Upsert(context.Background(), "warehouse", "w1", entity.Fields{"name": "Dock 7"})
	if !errors.Is(err, domain.ErrUnknownEntityType) {
		t.Fatalf("expected ErrUnknownEntityType, got %v", err)
	}
}

func TestUpsertIndexFailureDoesNotFailWrite(t *testing.T) {
	src := &mockSource{}
	idx := &mockIndexer{indexErr: errors.New("index down")}
	svc := New(src, idx, zap.NewNop())

	if _, err := svc.Upsert(context.Background(), "vendor", "v-1", entity.Fields{"name": "Acme"}); err != nil {
		t.Fatalf("index failure must be swallowed: %v", err)
	}
}

func TestUpsertSourceFailureFailsWrite(t *testing.T) {
	storeErr := errors.New("write failed")
	src := &mockSource{putFn: func(context.Context, string, string, entity.Fields, int64) (bool, error) {
		return false, storeErr
	}}
	idx := &mockIndexer{}
	svc := New(src, idx, zap.NewNop())

	_, err := svc.Upsert(context.Background(), "vendor", "v-1", entity.Fields{"name": "Acme"})
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	if len(idx.indexed) != 0 {
		t.Error("failed source write must not reach the indexer")
	}
}

func TestDeleteRemovesBoth(t *testing.T) {
	src := &mockSource{}
	idx := &mockIndexer{}
	svc := New(src, idx, zap.NewNop())

	if err := svc.Delete(context.Background(), "vendor", "v-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(src.deletes) != 1 || src.deletes[0] != "vendors:v-1" {
		t.Errorf("deletes = %v", src.deletes)
	}
	if len(idx.removed) != 1 || idx.removed[0] != "vendor_v-1" {
		t.Errorf("removed = %v", idx.removed)
	}
}

func TestDeleteMissingDocument(t *testing.T) {
	src := &mockSource{deleteFn: func(context.Context, string, string) error {
		return domain.ErrDocumentNotFound
	}}
	idx := &mockIndexer{}
	svc := New(src, idx, zap.NewNop())

	err := svc.Delete(context.Background(), "vendor", "v-missing")
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
	if len(idx.removed) != 0 {
		t.Error("missing document must not reach the indexer")
	}
}

func TestDeleteIndexRemovalFailureIsSwallowed(t *testing.T) {
	src := &mockSource{}
	idx := &mockIndexer{removeErr: errors.New("index down")}
	svc := New(src, idx, zap.NewNop())

	if err := svc.Delete(context.Background(), "vendor", "v-1"); err != nil {
		t.Fatalf("index removal failure must be swallowed: %v", err)
	}
}
