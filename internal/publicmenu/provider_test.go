package publicmenu

import (
	"context"
	"testing"
	"time"

	"carte-backend/internal/assembly"
	"carte-backend/internal/menucache"
	"carte-backend/internal/models"
)

func TestStale(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		age  time.Duration
		want bool
	}{
		{"frais", time.Minute, false},
		{"juste sous la limite", 5*time.Minute - time.Second, false},
		{"pile 5 minutes", 5 * time.Minute, true},
		{"6 minutes", 6 * time.Minute, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stale(now.Add(-tt.age), now); got != tt.want {
				t.Errorf("stale(age=%v) = %v, want %v", tt.age, got, tt.want)
			}
		})
	}
}

// fakeStore est un cache en mémoire pour tester la politique de péremption
// sans Redis.
type fakeStore struct {
	snap *menucache.Snapshot
	sets int
}

func (f *fakeStore) Get(ctx context.Context, restaurantID uint) (*menucache.Snapshot, error) {
	return f.snap, nil
}

func (f *fakeStore) Set(ctx context.Context, restaurantID uint, snap *menucache.Snapshot) error {
	f.snap = snap
	f.sets++
	return nil
}

func (f *fakeStore) Invalidate(ctx context.Context, restaurantID uint) error {
	f.snap = nil
	return nil
}

func (f *fakeStore) Subscribe(ctx context.Context, restaurantID uint) (<-chan struct{}, func(), error) {
	ch := make(chan struct{})
	return ch, func() { close(ch) }, nil
}

func TestMenuData_FreshCacheServedDirectly(t *testing.T) {
	now := time.Now()
	cached := map[uint]assembly.Bundle{
		1: {Category: models.Category{ID: 1, Title: "Plats"}},
	}
	store := &fakeStore{snap: &menucache.Snapshot{Bundles: cached, Timestamp: now.Add(-time.Minute)}}

	// db nil : tout accès base ferait paniquer, le cache doit suffire
	p := &Provider{cache: store, now: func() time.Time { return now }}

	bundles, err := p.MenuData(context.Background(), 42)
	if err != nil {
		t.Fatalf("MenuData: %v", err)
	}
	if len(bundles) != 1 || bundles[1].Category.Title != "Plats" {
		t.Errorf("bundles = %v, want cached content", bundles)
	}
	if store.sets != 0 {
		t.Errorf("fresh cache should not be rewritten, sets = %d", store.sets)
	}
}

func TestMenuData_StaleCacheTriggersRefetch(t *testing.T) {
	now := time.Now()
	store := &fakeStore{snap: &menucache.Snapshot{
		Bundles:   map[uint]assembly.Bundle{1: {}},
		Timestamp: now.Add(-6 * time.Minute), // périmé
	}}
	p := &Provider{cache: store, now: func() time.Time { return now }}

	defer func() {
		if recover() == nil {
			t.Error("stale cache should reach the database fetch path")
		}
	}()
	// db nil : le refetch panique, ce qui prouve que le cache périmé
	// n'a pas été servi
	_, _ = p.MenuData(context.Background(), 42)
}

func TestGroupBundles(t *testing.T) {
	catID := uint(1)
	categories := []models.Category{
		{ID: 1, Title: "Plats", Order: 1},
		{ID: 2, Title: "Desserts", Order: 2},
	}
	subcategories := []models.Subcategory{
		{ID: 10, CategoryID: 1, Title: "General"},
		{ID: 11, CategoryID: 2, Title: "General"},
	}
	items := []models.MenuItem{
		{ID: 100, SubcategoryID: 10},
		{ID: 101, SubcategoryID: 11},
		{ID: 102, SubcategoryID: 99}, // sous-catégorie inconnue : ignoré
	}
	addons := []models.Addon{
		{ID: 300, CategoryID: &catID}, // rattaché à la catégorie 1
		{ID: 301},                     // niveau tenant : présent partout
	}

	bundles := groupBundles(categories, subcategories, items, addons)
	if len(bundles) != 2 {
		t.Fatalf("bundles = %d, want 2", len(bundles))
	}

	b1 := bundles[1]
	if len(b1.Items) != 1 || b1.Items[0].ID != 100 {
		t.Errorf("bundle 1 items = %v", b1.Items)
	}
	if len(b1.Addons) != 2 {
		t.Errorf("bundle 1 addons = %d, want 2 (dédié + tenant)", len(b1.Addons))
	}

	b2 := bundles[2]
	if len(b2.Items) != 1 || b2.Items[0].ID != 101 {
		t.Errorf("bundle 2 items = %v", b2.Items)
	}
	if len(b2.Addons) != 1 || b2.Addons[0].ID != 301 {
		t.Errorf("bundle 2 addons = %v, want only the tenant-level addon", b2.Addons)
	}
}

func TestFirstCategoryID(t *testing.T) {
	bundles := map[uint]assembly.Bundle{
		3: {Category: models.Category{ID: 3, Order: 2}},
		7: {Category: models.Category{ID: 7, Order: 1}},
		9: {Category: models.Category{ID: 9, Order: 5}},
	}
	if got := firstCategoryID(bundles); got != 7 {
		t.Errorf("firstCategoryID = %d, want 7 (plus petit ordre)", got)
	}
	if got := firstCategoryID(nil); got != 0 {
		t.Errorf("firstCategoryID(nil) = %d, want 0", got)
	}
}
