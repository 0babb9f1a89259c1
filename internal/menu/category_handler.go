package menu

import (
	"strings"

	"carte-backend/internal/audit"
	"carte-backend/internal/database"
	"carte-backend/internal/menucache"
	"carte-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CategoryResponse struct {
	ID      uint   `json:"id"`
	Title   string `json:"title"`
	TitleEN string `json:"title_en"`
	TitleIT string `json:"title_it"`
	TitleES string `json:"title_es"`
	Text    string `json:"text"`
	TextEN  string `json:"text_en"`
	TextIT  string `json:"text_it"`
	TextES  string `json:"text_es"`
	Order   int    `json:"order"`
	Status  string `json:"status"`
}

type CreateCategoryRequest struct {
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

type UpdateCategoryRequest struct {
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

type ReorderRequest struct {
	Items []struct {
		ID    uint `json:"id"`
		Order int  `json:"order"`
	} `json:"items"`
}

func categoryResponse(cat *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:      cat.ID,
		Title:   cat.Title,
		TitleEN: cat.TitleEN,
		TitleIT: cat.TitleIT,
		TitleES: cat.TitleES,
		Text:    cat.Text,
		TextEN:  cat.TextEN,
		TextIT:  cat.TextIT,
		TextES:  cat.TextES,
		Order:   cat.Order,
		Status:  string(cat.Status),
	}
}

func parseStatus(s string) (models.RecordStatus, bool) {
	switch models.RecordStatus(s) {
	case models.StatusActive, models.StatusInactive:
		return models.RecordStatus(s), true
	case "":
		return models.StatusActive, true
	default:
		return "", false
	}
}

// ----------------------------------------
// CRUD CATÉGORIES
// ----------------------------------------

func CreateCategoryHandler(store menucache.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID, err := ownerRestaurantID(c)
		if err != nil {
			return err
		}

		var body CreateCategoryRequest
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

		cat := models.Category{
			RestaurantID: restaurantID,
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
			cat.Order = *body.Order
		}

		if err := database.DB.Create(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Création de la catégorie impossible")
		}

		if userID, userName, err := currentUser(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				RestaurantID: &restaurantID,
				UserID:       userID,
				UserName:     userName,
				EntityType:   "category",
				EntityID:     cat.ID,
				Action:       models.AuditActionCreate,
				Description:  "Catégorie créée : " + cat.Title,
				After:        cat,
			})
		}

		invalidateMenu(store, restaurantID)

		return c.Status(fiber.StatusCreated).JSON(categoryResponse(&cat))
	}
}

func ListCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID, err := ownerRestaurantID(c)
		if err != nil {
			return err
		}

		var categories []models.Category
		if err := database.DB.
			Where("restaurant_id = ?", restaurantID).
			Order("sort_order ASC").
			Find(&categories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Chargement des catégories impossible")
		}

		res := make([]CategoryResponse, 0, len(categories))
		for i := range categories {
			res = append(res, categoryResponse(&categories[i]))
		}
		return c.JSON(res)
	}
}

func UpdateCategoryHandler(store menucache.Store) fiber.Handler {
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
		before := cat

		var body UpdateCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Données invalides")
		}

		if body.Title != nil {
			title := strings.TrimSpace(*body.Title)
			if title == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Le titre ne peut pas être vide")
			}
			cat.Title = title
		}
		if body.TitleEN != nil {
			cat.TitleEN = *body.TitleEN
		}
		if body.TitleIT != nil {
			cat.TitleIT = *body.TitleIT
		}
		if body.TitleES != nil {
			cat.TitleES = *body.TitleES
		}
		if body.Text != nil {
			cat.Text = *body.Text
		}
		if body.TextEN != nil {
			cat.TextEN = *body.TextEN
		}
		if body.TextIT != nil {
			cat.TextIT = *body.TextIT
		}
		if body.TextES != nil {
			cat.TextES = *body.TextES
		}
		if body.Order != nil {
			cat.Order = *body.Order
		}
		if body.Status != nil {
			status, ok := parseStatus(*body.Status)
			if !ok {
				return fiber.NewError(fiber.StatusBadRequest, "Statut invalide (active/inactive)")
			}
			cat.Status = status
		}

		if err := database.DB.Save(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mise à jour de la catégorie impossible")
		}

		if userID, userName, err := currentUser(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				RestaurantID: &restaurantID,
				UserID:       userID,
				UserName:     userName,
				EntityType:   "category",
				EntityID:     cat.ID,
				Action:       models.AuditActionUpdate,
				Description:  "Catégorie modifiée : " + cat.Title,
				Before:       before,
				After:        cat,
			})
		}

		invalidateMenu(store, restaurantID)

		return c.JSON(categoryResponse(&cat))
	}
}

func DeleteCategoryHandler(store menucache.Store) fiber.Handler {
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

		if err := database.DB.Delete(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Suppression de la catégorie impossible")
		}

		if userID, userName, err := currentUser(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				RestaurantID: &restaurantID,
				UserID:       userID,
				UserName:     userName,
				EntityType:   "category",
				EntityID:     cat.ID,
				Action:       models.AuditActionDelete,
				Description:  "Catégorie supprimée : " + cat.Title,
				Before:       cat,
			})
		}

		invalidateMenu(store, restaurantID)

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ReorderCategoriesHandler - réordonne les onglets en un seul appel
func ReorderCategoriesHandler(store menucache.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID, err := ownerRestaurantID(c)
		if err != nil {
			return err
		}

		var body ReorderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Données invalides")
		}

		for _, item := range body.Items {
			if err := database.DB.Model(&models.Category{}).
				Where("id = ? AND restaurant_id = ?", item.ID, restaurantID).
				Update("sort_order", item.Order).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Réordonnancement impossible")
			}
		}

		invalidateMenu(store, restaurantID)

		return c.SendStatus(fiber.StatusNoContent)
	}
}
