package admin

import (
	"strings"

	"carte-backend/internal/audit"
	"carte-backend/internal/auth"
	"carte-backend/internal/database"
	"carte-backend/internal/logger"
	"carte-backend/internal/menucache"
	"carte-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type RestaurantSummary struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	TemplateID int    `json:"template_id"`
	OwnerEmail string `json:"owner_email"`
	ItemCount  int64  `json:"item_count"`
}

type Item3DResponse struct {
	ID             uint   `json:"id"`
	RestaurantID   uint   `json:"restaurant_id"`
	RestaurantName string `json:"restaurant_name"`
	Title          string `json:"title"`
	Model3DURL     string `json:"model_3d_url"`
	Redirect3DURL  string `json:"redirect_3d_url"`
}

type PatchItem3DRequest struct {
	Model3DURL    *string `json:"model_3d_url"`
	Redirect3DURL *string `json:"redirect_3d_url"`
}

// ListRestaurantsHandler - GET /api/admin/restaurants
// Vue d'ensemble de tous les tenants pour le super admin.
func ListRestaurantsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var restaurants []models.Restaurant
		if err := database.DB.Order("id asc").Find(&restaurants).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Liste des restaurants impossible")
		}

		out := make([]RestaurantSummary, 0, len(restaurants))
		for _, r := range restaurants {
			summary := RestaurantSummary{
				ID:         r.ID,
				Name:       r.Name,
				Slug:       r.Slug,
				TemplateID: r.TemplateID,
			}

			var owner models.User
			if err := database.DB.
				First(&owner, "restaurant_id = ? AND role = ?", r.ID, models.RoleOwner).Error; err == nil {
				summary.OwnerEmail = owner.Email
			}

			database.DB.Model(&models.MenuItem{}).
				Where("restaurant_id = ?", r.ID).
				Count(&summary.ItemCount)

			out = append(out, summary)
		}

		return c.JSON(out)
	}
}

// ListItems3DHandler - GET /api/admin/items-3d
// Tous les plats (tous tenants confondus) portant au moins un lien 3D.
func ListItems3DHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var items []models.MenuItem
		if err := database.DB.
			Where("model_3d_url <> '' OR redirect_3d_url <> ''").
			Order("restaurant_id asc, id asc").
			Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Liste des modèles 3D impossible")
		}

		// noms des restaurants en une seule passe
		names := map[uint]string{}
		var restaurants []models.Restaurant
		if err := database.DB.Find(&restaurants).Error; err == nil {
			for _, r := range restaurants {
				names[r.ID] = r.Name
			}
		}

		out := make([]Item3DResponse, 0, len(items))
		for _, it := range items {
			out = append(out, Item3DResponse{
				ID:             it.ID,
				RestaurantID:   it.RestaurantID,
				RestaurantName: names[it.RestaurantID],
				Title:          it.Title,
				Model3DURL:     it.Model3DURL,
				Redirect3DURL:  it.Redirect3DURL,
			})
		}

		return c.JSON(out)
	}
}

// PatchItem3DHandler - PATCH /api/admin/items/:id/3d
// Le super admin corrige les liens 3D de n'importe quel tenant, typiquement
// après avoir hébergé le modèle sur le CDN.
func PatchItem3DHandler(store menucache.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body PatchItem3DRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Requête invalide")
		}
		if body.Model3DURL == nil && body.Redirect3DURL == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Aucun champ à modifier")
		}

		var item models.MenuItem
		if err := database.DB.First(&item, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Plat introuvable")
		}

		before := item
		if body.Model3DURL != nil {
			item.Model3DURL = strings.TrimSpace(*body.Model3DURL)
		}
		if body.Redirect3DURL != nil {
			item.Redirect3DURL = strings.TrimSpace(*body.Redirect3DURL)
		}

		if err := database.DB.Save(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mise à jour du plat impossible")
		}

		if userID, ok := c.Locals(auth.CtxUserIDKey).(uint); ok {
			var admin models.User
			_ = database.DB.First(&admin, "id = ?", userID).Error
			_ = audit.WriteLog(audit.LogOptions{
				RestaurantID: &item.RestaurantID,
				UserID:       userID,
				UserName:     admin.Name,
				EntityType:   "menu_item",
				EntityID:     item.ID,
				Action:       models.AuditActionUpdate,
				Description:  "Liens 3D modifiés : " + item.Title,
				Before:       before,
				After:        item,
			})
		}

		// le tenant voit le changement immédiatement
		if store != nil {
			if err := store.Invalidate(c.Context(), item.RestaurantID); err != nil {
				logger.Error(err, "Invalidation du cache menu impossible")
			}
		}

		return c.JSON(Item3DResponse{
			ID:            item.ID,
			RestaurantID:  item.RestaurantID,
			Title:         item.Title,
			Model3DURL:    item.Model3DURL,
			Redirect3DURL: item.Redirect3DURL,
		})
	}
}
