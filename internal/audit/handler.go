package audit

import (
	"carte-backend/internal/auth"
	"carte-backend/internal/database"
	"carte-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ListAuditLogsHandler - historique des modifications. Un propriétaire ne
// voit que son restaurant ; le super admin peut filtrer par restaurant_id.
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleVal := c.Locals(auth.CtxUserRoleKey)
		role, ok := roleVal.(models.UserRole)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Rôle introuvable")
		}

		query := database.DB.Model(&models.AuditLog{}).Order("created_at DESC").Limit(200)

		if role == models.RoleOwner {
			ridVal := c.Locals(auth.CtxRestaurantIDKey)
			rid, ok := ridVal.(*uint)
			if !ok || rid == nil {
				return fiber.NewError(fiber.StatusForbidden, "Restaurant introuvable")
			}
			query = query.Where("restaurant_id = ?", *rid)
		} else if rid := c.QueryInt("restaurant_id"); rid > 0 {
			query = query.Where("restaurant_id = ?", rid)
		}

		var logs []models.AuditLog
		if err := query.Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Chargement de l'historique impossible")
		}

		return c.JSON(logs)
	}
}
