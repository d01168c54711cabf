package app_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"resort_booking/internal/app"
	"resort_booking/internal/domain"
)

type fakeFeed struct {
	ids      []int64
	payloads map[int64]map[string]any
	errs     map[int64]error
}

func (f *fakeFeed) ListProductIDs(ctx context.Context) ([]int64, error) { return f.ids, nil }

func (f *fakeFeed) GetProduct(ctx context.Context, id int64) (map[string]any, error) {
	if err, ok := f.errs[id]; ok {
		return nil, err
	}
	return f.payloads[id], nil
}

func TestSyncAll_Outcomes(t *testing.T) {
	feed := &fakeFeed{
		ids: []int64{10, 11, 12, 13, 14},
		payloads: map[int64]map[string]any{
			10: {"product_id": 10.0, "product_name": "Pine Cabin", "unit_price": "120.50", "category": "cabin", "fixed_price": true},
			11: {"id": "11", "title": "Sauna", "price": map[string]any{"amount": 35.0}, "product_type": map[string]any{"description": "Spa"}, "fixed": "no", "bookable": 0.0},
			12: {"product_id": 12.0, "product_name": "Nameless price"},
		},
		errs: map[int64]error{
			13: fmt.Errorf("upstream: %w", domain.ErrNotFound),
			14: fmt.Errorf("upstream: %w", domain.ErrAccessDenied),
		},
	}
	repo := newFakeCatalog()
	cache := &fakeCache{}
	catalog := app.NewCatalogService(repo, cache, time.Minute)
	svc := app.NewCatalogSyncService(feed, repo, catalog)

	rep, err := svc.SyncAll(context.Background(), 3)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if rep.Upserted != 2 || rep.Missed != 3 || rep.Failed != 0 {
		t.Fatalf("report = %+v", rep)
	}

	cabin := repo.products[10]
	if cabin.Category != domain.CategoryCabin || cabin.Mode != domain.PricingFixed || !cabin.Reservable || !cabin.UnitPrice.Equal(dec("120.5")) {
		t.Fatalf("cabin = %+v", cabin)
	}
	sauna := repo.products[11]
	if sauna.Category != domain.CategorySpa || sauna.Mode != domain.PricingPerNightMarked || sauna.Reservable {
		t.Fatalf("sauna = %+v", sauna)
	}
	if repo.misses[12] != 422 || repo.misses[13] != 404 || repo.misses[14] != 403 {
		t.Fatalf("misses = %v", repo.misses)
	}
	if len(cache.dels) == 0 {
		t.Fatalf("expected cache invalidation")
	}
}

func TestSyncProduct_UsesRequestedID(t *testing.T) {
	feed := &fakeFeed{payloads: map[int64]map[string]any{
		5: {"product_id": 6.0, "product_name": "Kayak", "unit_price": 15.0, "category": "Activity"},
	}}
	repo := newFakeCatalog()
	svc := app.NewCatalogSyncService(feed, repo, nil)

	out, err := svc.SyncProduct(context.Background(), 5)
	if err != nil || out != app.SyncUpserted {
		t.Fatalf("outcome = %v, %v", out, err)
	}
	if p, ok := repo.products[5]; !ok || p.Category != domain.CategoryActivities {
		t.Fatalf("products = %+v", repo.products)
	}
}

func TestSyncProduct_CategoryMoveInvalidatesOldListing(t *testing.T) {
	repo := newFakeCatalog(sampleProducts()...)
	cache := &fakeCache{}
	catalog := app.NewCatalogService(repo, cache, time.Minute)
	ctx := context.Background()
	cabins := domain.ProductQuery{Category: ptr(domain.CategoryCabin)}

	before, err := catalog.FindProducts(ctx, cabins)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(before) != 2 || before[1].ID != 4 {
		t.Fatalf("cabins = %+v", before)
	}

	feed := &fakeFeed{payloads: map[int64]map[string]any{
		4: {"product_id": 4.0, "product_name": "Treehouse Spa", "unit_price": 210.0, "category": "Spa"},
	}}
	if _, err := app.NewCatalogSyncService(feed, repo, catalog).SyncProduct(ctx, 4); err != nil {
		t.Fatalf("sync: %v", err)
	}

	after, err := catalog.FindProducts(ctx, cabins)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	for _, p := range after {
		if p.ID == 4 {
			t.Fatalf("product 4 still listed as Cabin after moving to Spa: %+v", after)
		}
	}
	spa, _ := catalog.FindProducts(ctx, domain.ProductQuery{Category: ptr(domain.CategorySpa)})
	if len(spa) != 2 || spa[1].ID != 4 {
		t.Fatalf("spa = %+v", spa)
	}
}
