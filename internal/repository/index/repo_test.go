package index

import (
	"context"
	"errors"
	"testing"

	"github.com/supplyline-io/supplysearch/internal/db"
	"github.com/supplyline-io/supplysearch/internal/db/dbtest"
	"github.com/supplyline-io/supplysearch/internal/domain/entity"
	domidx "github.com/supplyline-io/supplysearch/internal/domain/index"
)

func newTestRepo() (*Repo, *dbtest.Store) {
	store := dbtest.New()
	return New(store, "sl:"), store
}

func testEntry(t *testing.T, poNumber string) domidx.Entry {
	t.Helper()
	desc, ok := entity.Lookup("purchaseOrder")
	if !ok {
		t.Fatal("purchaseOrder not registered")
	}
	return domidx.FromSource(desc, "po-1", entity.Fields{
		"poNumber":   poNumber,
		"vendorName": "Acme",
	}, 1700000000000)
}

func TestPutAndFindByToken(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo()

	if err := repo.Put(ctx, testEntry(t, "PO-100")); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := repo.FindByToken(ctx, "po-100", nil, 100)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	e := got[0]
	if e.EntityID != "po-1" || e.EntityType != "purchaseOrder" {
		t.Errorf("unexpected identity: %+v", e)
	}
	if e.SearchableText != "po-100 acme" {
		t.Errorf("searchableText = %q", e.SearchableText)
	}
	if e.Display.VendorName != "Acme" {
		t.Errorf("display snapshot lost: %+v", e.Display)
	}
}

func TestPutReconcilesPostings(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo()

	if err := repo.Put(ctx, testEntry(t, "PO-100")); err != nil {
		t.Fatalf("put: %v", err)
	}
	// Renumbered PO: old tokens must stop matching.
	if err := repo.Put(ctx, testEntry(t, "PO-200")); err != nil {
		t.Fatalf("second put: %v", err)
	}

	stale, err := repo.FindByToken(ctx, "po-100", nil, 100)
	if err != nil {
		t.Fatalf("find stale: %v", err)
	}
	if len(stale) != 0 {
		t.Fatalf("stale posting survived: %v", stale)
	}

	fresh, err := repo.FindByToken(ctx, "po-200", nil, 100)
	if err != nil || len(fresh) != 1 {
		t.Fatalf("fresh posting missing: %v, %v", fresh, err)
	}
}

func TestDeleteRemovesEntryAndPostings(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo()

	if err := repo.Put(ctx, testEntry(t, "PO-100")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := repo.Delete(ctx, "purchaseOrder", "po-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	got, err := repo.FindByToken(ctx, "po-100", nil, 100)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("deleted entry still found: %v", got)
	}

	// Second delete is a no-op.
	if err := repo.Delete(ctx, "purchaseOrder", "po-1"); err != nil {
		t.Fatalf("repeat delete: %v", err)
	}
}

func TestFindByTokenTypeFilterAndLimit(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo()

	poDesc, _ := entity.Lookup("purchaseOrder")
	venDesc, _ := entity.Lookup("vendor")

	entries := []domidx.Entry{
		domidx.FromSource(poDesc, "po-1", entity.Fields{"poNumber": "AC-1"}, 1),
		domidx.FromSource(poDesc, "po-2", entity.Fields{"poNumber": "AC-2"}, 2),
		domidx.FromSource(venDesc, "v-1", entity.Fields{"name": "AC Trading"}, 3),
	}
	for _, e := range entries {
		if err := repo.Put(ctx, e); err != nil {
			t.Fatalf("put %s: %v", e.EntityID, err)
		}
	}

	all, err := repo.FindByToken(ctx, "ac", nil, 100)
	if err != nil || len(all) != 3 {
		t.Fatalf("expected 3 entries, got %v (%v)", all, err)
	}

	vendors, err := repo.FindByToken(ctx, "ac", []string{"vendor"}, 100)
	if err != nil || len(vendors) != 1 || vendors[0].EntityType != "vendor" {
		t.Fatalf("vendor filter failed: %v (%v)", vendors, err)
	}

	capped, err := repo.FindByToken(ctx, "ac", nil, 2)
	if err != nil || len(capped) != 2 {
		t.Fatalf("limit failed: %v (%v)", capped, err)
	}
}

func TestFindByTokenPropagatesStoreError(t *testing.T) {
	ctx := context.Background()
	repo, store := newTestRepo()
	store.FailOp(db.OpSMembers, errors.New("index not provisioned"))

	if _, err := repo.FindByToken(ctx, "ac", nil, 100); err == nil {
		t.Fatal("expected error")
	}
}
