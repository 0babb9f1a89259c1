package menu

import (
	"strings"

	"carte-backend/internal/audit"
	"carte-backend/internal/database"
	"carte-backend/internal/menucache"
	"carte-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type MenuItemResponse struct {
	ID            uint    `json:"id"`
	SubcategoryID uint    `json:"subcategory_id"`
	Title         string  `json:"title"`
	TitleEN       string  `json:"title_en"`
	TitleIT       string  `json:"title_it"`
	TitleES       string  `json:"title_es"`
	Text          string  `json:"text"`
	TextEN        string  `json:"text_en"`
	TextIT        string  `json:"text_it"`
	TextES        string  `json:"text_es"`
	Description   string  `json:"description"`
	DescriptionEN string  `json:"description_en"`
	DescriptionIT string  `json:"description_it"`
	DescriptionES string  `json:"description_es"`
	Price         float64 `json:"price"`
	IsSpecial     bool    `json:"is_special"`
	ImagePath     string  `json:"image_path"`
	Model3DURL    string  `json:"model_3d_url"`
	Redirect3DURL string  `json:"redirect_3d_url"`
	Order         int     `json:"order"`
	Status        string  `json:"status"`
}

type CreateMenuItemRequest struct {
	SubcategoryID uint    `json:"subcategory_id"`
	Title         string  `json:"title"`
	TitleEN       string  `json:"title_en"`
	TitleIT       string  `json:"title_it"`
	TitleES       string  `json:"title_es"`
	Text          string  `json:"text"`
	TextEN        string  `json:"text_en"`
	TextIT        string  `json:"text_it"`
	TextES        string  `json:"text_es"`
	Description   string  `json:"description"`
	DescriptionEN string  `json:"description_en"`
	DescriptionIT string  `json:"description_it"`
	DescriptionES string  `json:"description_es"`
	Price         float64 `json:"price"`
	IsSpecial     bool    `json:"is_special"`
	Order         *int    `json:"order"`
	Status        string  `json:"status"`
}

type UpdateMenuItemRequest struct {
	SubcategoryID *uint    `json:"subcategory_id"`
	Title         *string  `json:"title"`
	TitleEN       *string  `json:"title_en"`
	TitleIT       *string  `json:"title_it"`
	TitleES       *string  `json:"title_es"`
	Text          *string  `json:"text"`
	TextEN        *string  `json:"text_en"`
	TextIT        *string  `json:"text_it"`
	TextES        *string  `json:"text_es"`
	Description   *string  `json:"description"`
	DescriptionEN *string  `json:"description_en"`
	DescriptionIT *string  `json:"description_it"`
	DescriptionES *string  `json:"description_es"`
	Price         *float64 `json:"price"`
	IsSpecial     *bool    `json:"is_special"`
	Order         *int     `json:"order"`
	Status        *string  `json:"status"`
}

func menuItemResponse(it *models.MenuItem) MenuItemResponse {
	return MenuItemResponse{
		ID:            it.ID,
		SubcategoryID: it.SubcategoryID,
		Title:         it.Title,
		TitleEN:       it.TitleEN,
		TitleIT:       it.TitleIT,
		TitleES:       it.TitleES,
		Text:          it.Text,
		TextEN:        it.TextEN,
		TextIT:        it.TextIT,
		TextES:        it.TextES,
		Description:   it.Description,
		DescriptionEN: it.DescriptionEN,
		DescriptionIT: it.DescriptionIT,
		DescriptionES: it.DescriptionES,
		Price:         it.Price,
		IsSpecial:     it.IsSpecial,
		ImagePath:     it.ImagePath,
		Model3DURL:    it.Model3DURL,
		Redirect3DURL: it.Redirect3DURL,
		Order:         it.Order,
		Status:        string(it.Status),
	}
}

// ----------------------------------------
// CRUD PLATS
// ----------------------------------------

func CreateMenuItemHandler(store menucache.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID, err := ownerRestaurantID(c)
		if err != nil {
			return err
		}

		var body CreateMenuItemRequest
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

		// la sous-catégorie doit appartenir au tenant
		var sc models.Subcategory
		if err := database.DB.
			First(&sc, "id = ? AND restaurant_id = ?", body.SubcategoryID, restaurantID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Sous-catégorie introuvable")
		}

		status, ok := parseStatus(body.Status)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Statut invalide (active/inactive)")
		}

		item := models.MenuItem{
			RestaurantID:  restaurantID,
			SubcategoryID: sc.ID,
			Title:         body.Title,
			TitleEN:       body.TitleEN,
			TitleIT:       body.TitleIT,
			TitleES:       body.TitleES,
			Text:          body.Text,
			TextEN:        body.TextEN,
			TextIT:        body.TextIT,
			TextES:        body.TextES,
			Description:   body.Description,
			DescriptionEN: body.DescriptionEN,
			DescriptionIT: body.DescriptionIT,
			DescriptionES: body.DescriptionES,
			Price:         body.Price,
			IsSpecial:     body.IsSpecial,
			Status:        status,
		}
		if body.Order != nil {
			item.Order = *body.Order
		}

		if err := database.DB.Create(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Création du plat impossible")
		}

		if userID, userName, err := currentUser(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				RestaurantID: &restaurantID,
				UserID:       userID,
				UserName:     userName,
				EntityType:   "menu_item",
				EntityID:     item.ID,
				Action:       models.AuditActionCreate,
				Description:  "Plat créé : " + item.Title,
				After:        item,
			})
		}

		invalidateMenu(store, restaurantID)

		return c.Status(fiber.StatusCreated).JSON(menuItemResponse(&item))
	}
}

// ListMenuItemsHandler - tous les plats du tenant, filtrables par
// sous-catégorie (?subcategory=)
func ListMenuItemsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID, err := ownerRestaurantID(c)
		if err != nil {
			return err
		}

		query := database.DB.
			Where("restaurant_id = ?", restaurantID).
			Order("sort_order ASC")

		if scID := c.QueryInt("subcategory"); scID > 0 {
			query = query.Where("subcategory_id = ?", scID)
		}

		var items []models.MenuItem
		if err := query.Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Chargement des plats impossible")
		}

		res := make([]MenuItemResponse, 0, len(items))
		for i := range items {
			res = append(res, menuItemResponse(&items[i]))
		}
		return c.JSON(res)
	}
}

func UpdateMenuItemHandler(store menucache.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID, err := ownerRestaurantID(c)
		if err != nil {
			return err
		}

		var item models.MenuItem
		if err := database.DB.
			First(&item, "id = ? AND restaurant_id = ?", c.Params("id"), restaurantID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Plat introuvable")
		}
		before := item

		var body UpdateMenuItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Données invalides")
		}

		if body.SubcategoryID != nil {
			var sc models.Subcategory
			if err := database.DB.
				First(&sc, "id = ? AND restaurant_id = ?", *body.SubcategoryID, restaurantID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Sous-catégorie introuvable")
			}
			item.SubcategoryID = sc.ID
		}
		if body.Title != nil {
			title := strings.TrimSpace(*body.Title)
			if title == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Le titre ne peut pas être vide")
			}
			item.Title = title
		}
		if body.TitleEN != nil {
			item.TitleEN = *body.TitleEN
		}
		if body.TitleIT != nil {
			item.TitleIT = *body.TitleIT
		}
		if body.TitleES != nil {
			item.TitleES = *body.TitleES
		}
		if body.Text != nil {
			item.Text = *body.Text
		}
		if body.TextEN != nil {
			item.TextEN = *body.TextEN
		}
		if body.TextIT != nil {
			item.TextIT = *body.TextIT
		}
		if body.TextES != nil {
			item.TextES = *body.TextES
		}
		if body.Description != nil {
			item.Description = *body.Description
		}
		if body.DescriptionEN != nil {
			item.DescriptionEN = *body.DescriptionEN
		}
		if body.DescriptionIT != nil {
			item.DescriptionIT = *body.DescriptionIT
		}
		if body.DescriptionES != nil {
			item.DescriptionES = *body.DescriptionES
		}
		if body.Price != nil {
			if *body.Price < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Le prix ne peut pas être négatif")
			}
			item.Price = *body.Price
		}
		if body.IsSpecial != nil {
			item.IsSpecial = *body.IsSpecial
		}
		if body.Order != nil {
			item.Order = *body.Order
		}
		if body.Status != nil {
			status, ok := parseStatus(*body.Status)
			if !ok {
				return fiber.NewError(fiber.StatusBadRequest, "Statut invalide (active/inactive)")
			}
			item.Status = status
		}

		if err := database.DB.Save(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mise à jour du plat impossible")
		}

		if userID, userName, err := currentUser(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				RestaurantID: &restaurantID,
				UserID:       userID,
				UserName:     userName,
				EntityType:   "menu_item",
				EntityID:     item.ID,
				Action:       models.AuditActionUpdate,
				Description:  "Plat modifié : " + item.Title,
				Before:       before,
				After:        item,
			})
		}

		invalidateMenu(store, restaurantID)

		return c.JSON(menuItemResponse(&item))
	}
}

func DeleteMenuItemHandler(store menucache.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID, err := ownerRestaurantID(c)
		if err != nil {
			return err
		}

		var item models.MenuItem
		if err := database.DB.
			First(&item, "id = ? AND restaurant_id = ?", c.Params("id"), restaurantID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Plat introuvable")
		}

		if err := database.DB.Delete(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Suppression du plat impossible")
		}

		if userID, userName, err := currentUser(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				RestaurantID: &restaurantID,
				UserID:       userID,
				UserName:     userName,
				EntityType:   "menu_item",
				EntityID:     item.ID,
				Action:       models.AuditActionDelete,
				Description:  "Plat supprimé : " + item.Title,
				Before:       item,
			})
		}

		invalidateMenu(store, restaurantID)

		return c.SendStatus(fiber.StatusNoContent)
	}
}
