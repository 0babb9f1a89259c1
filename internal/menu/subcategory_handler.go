package menu

import (
	"strings"

	"carte-backend/internal/assembly"
	"carte-backend/internal/audit"
	"carte-backend/internal/database"
	"carte-backend/internal/menucache"
	"carte-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type SubcategoryResponse struct {
	ID         uint   `json:"id"`
	CategoryID uint   `json:"category_id"`
	Title      string `json:"title"`
	TitleEN    string `json:"title_en"`
	TitleIT    string `json:"title_it"`
	TitleES    string `json:"title_es"`
	Text       string `json:"text"`
	TextEN     string `json:"text_en"`
	TextIT     string `json:"text_it"`
	TextES     string `json:"text_es"`
	Order      int    `json:"order"`
	Status     string `json:"status"`
	IsGeneral  bool   `json:"is_general"` // dérivé de la convention de nommage
}

type CreateSubcategoryRequest struct {
	Title   string `json:"title"`
	TitleEN string `json:"title_en"`
	TitleIT string `json:"title_it"`
	TitleES string `json:"title_es"`
	Text    string `json:"text"`
	TextEN  string `json:"text_en"`
	TextIT  string `json:"text_it"`
	TextES  string `json:"text_es"`
	Order   *int   `json:"order"`
	Status  string `json:"status"`
}

type UpdateSubcategoryRequest struct {
	Title   *string `json:"title"`
	TitleEN *string `json:"title_en"`
	TitleIT *string `json:"title_it"`
	TitleES *string `json:"title_es"`
	Text    *string `json:"text"`
	TextEN  *string `json:"text_en"`
	TextIT  *string `json:"text_it"`
	TextES  *string `json:"text_es"`
	Order   *int    `json:"order"`
	Status  *string `json:"status"`
}

func subcategoryResponse(sc *models.Subcategory) SubcategoryResponse {
	return SubcategoryResponse{
		ID:         sc.ID,
		CategoryID: sc.CategoryID,
		Title:      sc.Title,
		TitleEN:    sc.TitleEN,
		TitleIT:    sc.TitleIT,
		TitleES:    sc.TitleES,
		Text:       sc.Text,
		TextEN:     sc.TextEN,
		TextIT:     sc.TextIT,
		TextES:     sc.TextES,
		Order:      sc.Order,
		Status:     string(sc.Status),
		IsGeneral:  assembly.IsGeneralSubcategory(*sc),
	}
}

// ----------------------------------------
// CRUD SOUS-CATÉGORIES (par catégorie)
// ----------------------------------------

func CreateSubcategoryHandler(store menucache.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID, err := ownerRestaurantID(c)
		if err != nil {
			return err
		}

		var cat models.Category
		if err := database.DB.
			First(&cat, "id = ? AND restaurant_id = ?", c.Params("id"), restaurantID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Catégorie introuvable")
		}

		var body CreateSubcategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Données invalides")
		}

		body.Title = strings.TrimSpace(body.Title)
		if body.Title == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Le titre ne peut pas être vide")
		}

		status, ok := parseStatus(body.Status)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Statut invalide (active/inactive)")
		}

		sc := models.Subcategory{
			RestaurantID: restaurantID,
			CategoryID:   cat.ID,
			Title:        body.Title,
			TitleEN:      body.TitleEN,
			TitleIT:      body.TitleIT,
			TitleES:      body.TitleES,
			Text:         body.Text,
			TextEN:       body.TextEN,
			TextIT:       body.TextIT,
			TextES:       body.TextES,
			Status:       status,
		}
		if body.Order != nil {
			sc.Order = *body.Order
		}

		if err := database.DB.Create(&sc).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Création de la sous-catégorie impossible")
		}

		if userID, userName, err := currentUser(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				RestaurantID: &restaurantID,
				UserID:       userID,
				UserName:     userName,
				EntityType:   "subcategory",
				EntityID:     sc.ID,
				Action:       models.AuditActionCreate,
				Description:  "Sous-catégorie créée : " + sc.Title,
				After:        sc,
			})
		}

		invalidateMenu(store, restaurantID)

		return c.Status(fiber.StatusCreated).JSON(subcategoryResponse(&sc))
	}
}

func ListSubcategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID, err := ownerRestaurantID(c)
		if err != nil {
			return err
		}

		var subcategories []models.Subcategory
		if err := database.DB.
			Where("category_id = ? AND restaurant_id = ?", c.Params("id"), restaurantID).
			Order("sort_order ASC").
			Find(&subcategories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Chargement des sous-catégories impossible")
		}

		res := make([]SubcategoryResponse, 0, len(subcategories))
		for i := range subcategories {
			res = append(res, subcategoryResponse(&subcategories[i]))
		}
		return c.JSON(res)
	}
}

func UpdateSubcategoryHandler(store menucache.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID, err := ownerRestaurantID(c)
		if err != nil {
			return err
		}

		var sc models.Subcategory
		if err := database.DB.
			First(&sc, "id = ? AND restaurant_id = ?", c.Params("id"), restaurantID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sous-catégorie introuvable")
		}
		before := sc

		var body UpdateSubcategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Données invalides")
		}

		if body.Title != nil {
			title := strings.TrimSpace(*body.Title)
			if title == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Le titre ne peut pas être vide")
			}
			sc.Title = title
		}
		if body.TitleEN != nil {
			sc.TitleEN = *body.TitleEN
		}
		if body.TitleIT != nil {
			sc.TitleIT = *body.TitleIT
		}
		if body.TitleES != nil {
			sc.TitleES = *body.TitleES
		}
		if body.Text != nil {
			sc.Text = *body.Text
		}
		if body.TextEN != nil {
			sc.TextEN = *body.TextEN
		}
		if body.TextIT != nil {
			sc.TextIT = *body.TextIT
		}
		if body.TextES != nil {
			sc.TextES = *body.TextES
		}
		if body.Order != nil {
			sc.Order = *body.Order
		}
		if body.Status != nil {
			status, ok := parseStatus(*body.Status)
			if !ok {
				return fiber.NewError(fiber.StatusBadRequest, "Statut invalide (active/inactive)")
			}
			sc.Status = status
		}

		if err := database.DB.Save(&sc).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mise à jour de la sous-catégorie impossible")
		}

		if userID, userName, err := currentUser(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				RestaurantID: &restaurantID,
				UserID:       userID,
				UserName:     userName,
				EntityType:   "subcategory",
				EntityID:     sc.ID,
				Action:       models.AuditActionUpdate,
				Description:  "Sous-catégorie modifiée : " + sc.Title,
				Before:       before,
				After:        sc,
			})
		}

		invalidateMenu(store, restaurantID)

		return c.JSON(subcategoryResponse(&sc))
	}
}

func DeleteSubcategoryHandler(store menucache.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID, err := ownerRestaurantID(c)
		if err != nil {
			return err
		}

		var sc models.Subcategory
		if err := database.DB.
			First(&sc, "id = ? AND restaurant_id = ?", c.Params("id"), restaurantID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sous-catégorie introuvable")
		}

		// les plats rattachés partent avec la sous-catégorie
		var count int64
		database.DB.Model(&models.MenuItem{}).Where("subcategory_id = ?", sc.ID).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Supprime d'abord les plats de cette sous-catégorie")
		}

		if err := database.DB.Delete(&sc).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Suppression de la sous-catégorie impossible")
		}

		if userID, userName, err := currentUser(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				RestaurantID: &restaurantID,
				UserID:       userID,
				UserName:     userName,
				EntityType:   "subcategory",
				EntityID:     sc.ID,
				Action:       models.AuditActionDelete,
				Description:  "Sous-catégorie supprimée : " + sc.Title,
				Before:       sc,
			})
		}

		invalidateMenu(store, restaurantID)

		return c.SendStatus(fiber.StatusNoContent)
	}
}
