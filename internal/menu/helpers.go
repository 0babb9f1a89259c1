package menu

import (
	"context"

	"carte-backend/internal/auth"
	"carte-backend/internal/database"
	"carte-backend/internal/logger"
	"carte-backend/internal/menucache"
	"carte-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// -------------------------
// Aide : restaurant du propriétaire connecté
// -------------------------
func ownerRestaurantID(c *fiber.Ctx) (uint, error) {
	ridVal := c.Locals(auth.CtxRestaurantIDKey)
	rid, ok := ridVal.(*uint)
	if !ok || rid == nil {
		return 0, fiber.NewError(fiber.StatusForbidden, "Restaurant introuvable")
	}
	return *rid, nil
}

// -------------------------
// Aide : infos utilisateur pour l'audit
// -------------------------
func currentUser(c *fiber.Ctx) (uint, string, error) {
	userIDVal := c.Locals(auth.CtxUserIDKey)
	userID, ok := userIDVal.(uint)
	if !ok {
		return 0, "", fiber.NewError(fiber.StatusForbidden, "Utilisateur introuvable")
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return 0, "", fiber.NewError(fiber.StatusInternalServerError, "Utilisateur introuvable")
	}

	return userID, user.Name, nil
}

// invalidateMenu vide le cache du tenant en bloc après toute écriture sur la
// carte et notifie les clients publics. L'échec n'annule pas l'écriture.
func invalidateMenu(store menucache.Store, restaurantID uint) {
	if store == nil {
		return
	}
	if err := store.Invalidate(context.Background(), restaurantID); err != nil {
		logger.Error(err, "Invalidation du cache menu impossible")
	}
}
