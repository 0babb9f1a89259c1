package menu

import (
	"time"

	"carte-backend/internal/database"
	"carte-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

type SetReservationDayRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

func parseReservationStatus(s string) (models.ReservationStatus, bool) {
	switch models.ReservationStatus(s) {
	case models.ReservationOpen, models.ReservationFull, models.ReservationClosed:
		return models.ReservationStatus(s), true
	default:
		return "", false
	}
}

// SetReservationDayHandler - upsert du statut d'un jour (clé: date)
func SetReservationDayHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID, err := ownerRestaurantID(c)
		if err != nil {
			return err
		}

		date, err := time.Parse("2006-01-02", c.Params("date"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Date attendue au format AAAA-MM-JJ")
		}

		var body SetReservationDayRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Données invalides")
		}

		status, ok := parseReservationStatus(body.Status)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Statut invalide (open/full/closed)")
		}

		day := models.ReservationDay{
			RestaurantID: restaurantID,
			Date:         date,
			Status:       status,
			Note:         body.Note,
		}

		if err := database.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "restaurant_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "note", "updated_at"}),
		}).Create(&day).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Enregistrement du jour impossible")
		}

		return c.JSON(fiber.Map{
			"date":   date.Format("2006-01-02"),
			"status": status,
			"note":   day.Note,
		})
	}
}

func DeleteReservationDayHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID, err := ownerRestaurantID(c)
		if err != nil {
			return err
		}

		date, err := time.Parse("2006-01-02", c.Params("date"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Date attendue au format AAAA-MM-JJ")
		}

		if err := database.DB.
			Where("restaurant_id = ? AND date = ?", restaurantID, date).
			Delete(&models.ReservationDay{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Suppression du jour impossible")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
