package menu

import (
	"strings"

	"carte-backend/internal/database"
	"carte-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Les quatre gabarits visuels de la carte publique. Ils rendent tous la même
// liste de sections, seul l'habillage change.
const templateCount = 4

type RestaurantSettingsResponse struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	TemplateID int    `json:"template_id"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	Hours      string `json:"hours"`
}

type UpdateRestaurantRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Hours   *string `json:"hours"`
}

type SelectTemplateRequest struct {
	TemplateID int `json:"template_id"`
}

func settingsResponse(r *models.Restaurant) RestaurantSettingsResponse {
	return RestaurantSettingsResponse{
		ID:         r.ID,
		Name:       r.Name,
		Slug:       r.Slug,
		TemplateID: r.TemplateID,
		Address:    r.Address,
		Phone:      r.Phone,
		Hours:      r.Hours,
	}
}

func GetRestaurantSettingsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID, err := ownerRestaurantID(c)
		if err != nil {
			return err
		}

		var restaurant models.Restaurant
		if err := database.DB.First(&restaurant, restaurantID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Restaurant introuvable")
		}

		return c.JSON(settingsResponse(&restaurant))
	}
}

func UpdateRestaurantSettingsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID, err := ownerRestaurantID(c)
		if err != nil {
			return err
		}

		var restaurant models.Restaurant
		if err := database.DB.First(&restaurant, restaurantID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Restaurant introuvable")
		}

		var body UpdateRestaurantRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Données invalides")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Le nom ne peut pas être vide")
			}
			restaurant.Name = name
		}
		if body.Address != nil {
			restaurant.Address = *body.Address
		}
		if body.Phone != nil {
			restaurant.Phone = strings.TrimSpace(*body.Phone)
		}
		if body.Hours != nil {
			restaurant.Hours = *body.Hours
		}

		if err := database.DB.Save(&restaurant).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mise à jour du restaurant impossible")
		}

		return c.JSON(settingsResponse(&restaurant))
	}
}

// SelectTemplateHandler - choix du gabarit visuel (1..4)
func SelectTemplateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID, err := ownerRestaurantID(c)
		if err != nil {
			return err
		}

		var body SelectTemplateRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Données invalides")
		}

		if body.TemplateID < 1 || body.TemplateID > templateCount {
			return fiber.NewError(fiber.StatusBadRequest, "Le gabarit doit être compris entre 1 et 4")
		}

		if err := database.DB.Model(&models.Restaurant{}).
			Where("id = ?", restaurantID).
			Update("template_id", body.TemplateID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Changement de gabarit impossible")
		}

		return c.JSON(fiber.Map{"template_id": body.TemplateID})
	}
}
