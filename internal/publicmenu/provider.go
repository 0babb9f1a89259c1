package publicmenu

import (
	"context"
	"time"

	"carte-backend/internal/assembly"
	"carte-backend/internal/logger"
	"carte-backend/internal/menucache"
	"carte-backend/internal/models"

	"gorm.io/gorm"
)

// Un snapshot plus vieux que 5 minutes est périmé et rechargé depuis la
// base. La politique vit ici, côté appelant, pas dans le port de cache.
const bundleTTL = 5 * time.Minute

func stale(ts, now time.Time) bool {
	return now.Sub(ts) >= bundleTTL
}

// Provider charge les bundles de menu d'un tenant, via le cache quand il est
// encore frais, sinon depuis la base avec réécriture du cache.
type Provider struct {
	db    *gorm.DB
	cache menucache.Store
	now   func() time.Time
}

func NewProvider(db *gorm.DB, cache menucache.Store) *Provider {
	return &Provider{db: db, cache: cache, now: time.Now}
}

// MenuData renvoie le bundle de chaque catégorie active du restaurant.
func (p *Provider) MenuData(ctx context.Context, restaurantID uint) (map[uint]assembly.Bundle, error) {
	if p.cache != nil {
		snap, err := p.cache.Get(ctx, restaurantID)
		if err != nil {
			// cache indisponible : on continue sur la base
			logger.Error(err, "Cache menu indisponible, rechargement depuis la base")
		} else if snap != nil && !stale(snap.Timestamp, p.now()) {
			return snap.Bundles, nil
		}
	}

	bundles, err := p.fetchBundles(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		snap := &menucache.Snapshot{Bundles: bundles, Timestamp: p.now()}
		if err := p.cache.Set(ctx, restaurantID, snap); err != nil {
			logger.Error(err, "Écriture du cache menu impossible")
		}
	}

	return bundles, nil
}

// fetchBundles lit toutes les lignes actives du tenant et les regroupe par
// catégorie. Les catégories inactives sont exclues du jeu candidat ici, par
// convention de la requête consommatrice.
func (p *Provider) fetchBundles(ctx context.Context, restaurantID uint) (map[uint]assembly.Bundle, error) {
	db := p.db.WithContext(ctx)

	var categories []models.Category
	if err := db.
		Where("restaurant_id = ? AND status = ?", restaurantID, models.StatusActive).
		Order("sort_order ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}

	var subcategories []models.Subcategory
	if err := db.
		Where("restaurant_id = ? AND status = ?", restaurantID, models.StatusActive).
		Order("id ASC").
		Find(&subcategories).Error; err != nil {
		return nil, err
	}

	var items []models.MenuItem
	if err := db.
		Where("restaurant_id = ? AND status = ?", restaurantID, models.StatusActive).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}

	var addons []models.Addon
	if err := db.
		Where("restaurant_id = ? AND status = ?", restaurantID, models.StatusActive).
		Order("id ASC").
		Find(&addons).Error; err != nil {
		return nil, err
	}

	return groupBundles(categories, subcategories, items, addons), nil
}

// groupBundles assemble les lignes plates en un bundle par catégorie. Un
// supplément avec category_id rejoint sa catégorie ; sans category_id il est
// de niveau tenant et rejoint chaque bundle.
func groupBundles(
	categories []models.Category,
	subcategories []models.Subcategory,
	items []models.MenuItem,
	addons []models.Addon,
) map[uint]assembly.Bundle {
	bundles := make(map[uint]assembly.Bundle, len(categories))

	subcatCategory := make(map[uint]uint, len(subcategories))
	for _, sc := range subcategories {
		subcatCategory[sc.ID] = sc.CategoryID
	}

	for _, cat := range categories {
		b := assembly.Bundle{Category: cat}

		for _, sc := range subcategories {
			if sc.CategoryID == cat.ID {
				b.Subcategories = append(b.Subcategories, sc)
			}
		}
		for _, it := range items {
			if subcatCategory[it.SubcategoryID] == cat.ID {
				b.Items = append(b.Items, it)
			}
		}
		for _, a := range addons {
			if a.CategoryID == nil || *a.CategoryID == cat.ID {
				b.Addons = append(b.Addons, a)
			}
		}

		bundles[cat.ID] = b
	}

	return bundles
}
