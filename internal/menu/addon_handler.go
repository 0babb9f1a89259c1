package menu

import (
	"strings"

	"carte-backend/internal/audit"
	"carte-backend/internal/database"
	"carte-backend/internal/menucache"
	"carte-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AddonResponse struct {
	ID            uint    `json:"id"`
	CategoryID    *uint   `json:"category_id"`
	SubcategoryID *uint   `json:"subcategory_id"`
	Title         string  `json:"title"`
	TitleEN       string  `json:"title_en"`
	TitleIT       string  `json:"title_it"`
	TitleES       string  `json:"title_es"`
	Description   string  `json:"description"`
	DescriptionEN string  `json:"description_en"`
	DescriptionIT string  `json:"description_it"`
	DescriptionES string  `json:"description_es"`
	Price         float64 `json:"price"`
	Order         int     `json:"order"`
	Status        string  `json:"status"`
}

type CreateAddonRequest struct {
	CategoryID    *uint   `json:"category_id"`
	SubcategoryID *uint   `json:"subcategory_id"`
	Title         string  `json:"title"`
	TitleEN       string  `json:"title_en"`
	TitleIT       string  `json:"title_it"`
	TitleES       string  `json:"title_es"`
	Description   string  `json:"description"`
	DescriptionEN string  `json:"description_en"`
	DescriptionIT string  `json:"description_it"`
	DescriptionES string  `json:"description_es"`
	Price         float64 `json:"price"`
	Order         *int    `json:"order"`
	Status        string  `json:"status"`
}

type UpdateAddonRequest struct {
	CategoryID    *uint    `json:"category_id"`
	Title         *string  `json:"title"`
	TitleEN       *string  `json:"title_en"`
	TitleIT       *string  `json:"title_it"`
	TitleES       *string  `json:"title_es"`
	Description   *string  `json:"description"`
	DescriptionEN *string  `json:"description_en"`
	DescriptionIT *string  `json:"description_it"`
	DescriptionES *string  `json:"description_es"`
	Price         *float64 `json:"price"`
	Order         *int     `json:"order"`
	Status        *string  `json:"status"`
}

func addonResponse(a *models.Addon) AddonResponse {
	return AddonResponse{
		ID:            a.ID,
		CategoryID:    a.CategoryID,
		SubcategoryID: a.SubcategoryID,
		Title:         a.Title,
		TitleEN:       a.TitleEN,
		TitleIT:       a.TitleIT,
		TitleES:       a.TitleES,
		Description:   a.Description,
		DescriptionEN: a.DescriptionEN,
		DescriptionIT: a.DescriptionIT,
		DescriptionES: a.DescriptionES,
		Price:         a.Price,
		Order:         a.Order,
		Status:        string(a.Status),
	}
}

// ----------------------------------------
// CRUD SUPPLÉMENTS
// ----------------------------------------

func CreateAddonHandler(store menucache.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID, err := ownerRestaurantID(c)
		if err != nil {
			return err
		}

		var body CreateAddonRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Données invalides")
		}

		body.Title = strings.TrimSpace(body.Title)
		if body.Title == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Le titre ne peut pas être vide")
		}
		if body.Price < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Le prix ne peut pas être négatif")
		}

		if body.CategoryID != nil {
			var cat models.Category
			if err := database.DB.
				First(&cat, "id = ? AND restaurant_id = ?", *body.CategoryID, restaurantID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Catégorie introuvable")
			}
		}

		status, ok := parseStatus(body.Status)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Statut invalide (active/inactive)")
		}

		addon := models.Addon{
			RestaurantID:  restaurantID,
			CategoryID:    body.CategoryID,
			SubcategoryID: body.SubcategoryID,
			Title:         body.Title,
			TitleEN:       body.TitleEN,
			TitleIT:       body.TitleIT,
			TitleES:       body.TitleES,
			Description:   body.Description,
			DescriptionEN: body.DescriptionEN,
			DescriptionIT: body.DescriptionIT,
			DescriptionES: body.DescriptionES,
			Price:         body.Price,
			Status:        status,
		}
		if body.Order != nil {
			addon.Order = *body.Order
		}

		if err := database.DB.Create(&addon).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Création du supplément impossible")
		}

		if userID, userName, err := currentUser(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				RestaurantID: &restaurantID,
				UserID:       userID,
				UserName:     userName,
				EntityType:   "addon",
				EntityID:     addon.ID,
				Action:       models.AuditActionCreate,
				Description:  "Supplément créé : " + addon.Title,
				After:        addon,
			})
		}

		invalidateMenu(store, restaurantID)

		return c.Status(fiber.StatusCreated).JSON(addonResponse(&addon))
	}
}

func ListAddonsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID, err := ownerRestaurantID(c)
		if err != nil {
			return err
		}

		var addons []models.Addon
		if err := database.DB.
			Where("restaurant_id = ?", restaurantID).
			Order("sort_order ASC").
			Find(&addons).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Chargement des suppléments impossible")
		}

		res := make([]AddonResponse, 0, len(addons))
		for i := range addons {
			res = append(res, addonResponse(&addons[i]))
		}
		return c.JSON(res)
	}
}

func UpdateAddonHandler(store menucache.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID, err := ownerRestaurantID(c)
		if err != nil {
			return err
		}

		var addon models.Addon
		if err := database.DB.
			First(&addon, "id = ? AND restaurant_id = ?", c.Params("id"), restaurantID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Supplément introuvable")
		}
		before := addon

		var body UpdateAddonRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Données invalides")
		}

		if body.CategoryID != nil {
			var cat models.Category
			if err := database.DB.
				First(&cat, "id = ? AND restaurant_id = ?", *body.CategoryID, restaurantID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Catégorie introuvable")
			}
			addon.CategoryID = body.CategoryID
		}
		if body.Title != nil {
			title := strings.TrimSpace(*body.Title)
			if title == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Le titre ne peut pas être vide")
			}
			addon.Title = title
		}
		if body.TitleEN != nil {
			addon.TitleEN = *body.TitleEN
		}
		if body.TitleIT != nil {
			addon.TitleIT = *body.TitleIT
		}
		if body.TitleES != nil {
			addon.TitleES = *body.TitleES
		}
		if body.Description != nil {
			addon.Description = *body.Description
		}
		if body.DescriptionEN != nil {
			addon.DescriptionEN = *body.DescriptionEN
		}
		if body.DescriptionIT != nil {
			addon.DescriptionIT = *body.DescriptionIT
		}
		if body.DescriptionES != nil {
			addon.DescriptionES = *body.DescriptionES
		}
		if body.Price != nil {
			if *body.Price < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Le prix ne peut pas être négatif")
			}
			addon.Price = *body.Price
		}
		if body.Order != nil {
			addon.Order = *body.Order
		}
		if body.Status != nil {
			status, ok := parseStatus(*body.Status)
			if !ok {
				return fiber.NewError(fiber.StatusBadRequest, "Statut invalide (active/inactive)")
			}
			addon.Status = status
		}

		if err := database.DB.Save(&addon).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mise à jour du supplément impossible")
		}

		if userID, userName, err := currentUser(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				RestaurantID: &restaurantID,
				UserID:       userID,
				UserName:     userName,
				EntityType:   "addon",
				EntityID:     addon.ID,
				Action:       models.AuditActionUpdate,
				Description:  "Supplément modifié : " + addon.Title,
				Before:       before,
				After:        addon,
			})
		}

		invalidateMenu(store, restaurantID)

		return c.JSON(addonResponse(&addon))
	}
}

func DeleteAddonHandler(store menucache.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID, err := ownerRestaurantID(c)
		if err != nil {
			return err
		}

		var addon models.Addon
		if err := database.DB.
			First(&addon, "id = ? AND restaurant_id = ?", c.Params("id"), restaurantID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Supplément introuvable")
		}

		if err := database.DB.Delete(&addon).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Suppression du supplément impossible")
		}

		if userID, userName, err := currentUser(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				RestaurantID: &restaurantID,
				UserID:       userID,
				UserName:     userName,
				EntityType:   "addon",
				EntityID:     addon.ID,
				Action:       models.AuditActionDelete,
				Description:  "Supplément supprimé : " + addon.Title,
				Before:       addon,
			})
		}

		invalidateMenu(store, restaurantID)

		return c.SendStatus(fiber.StatusNoContent)
	}
}
