package auth

import (
	"context"
	"strings"
	"time"

	"carte-backend/internal/config"
	"carte-backend/internal/database"
	"carte-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	CtxUserIDKey       = "user_id"
	CtxUserRoleKey     = "user_role"
	CtxRestaurantIDKey = "restaurant_id"
)

// Délai max pour revalider l'utilisateur en base ; au-delà on traite la
// session comme non authentifiée plutôt que de bloquer la requête
const sessionCheckTimeout = 3 * time.Second

func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "En-tête Authorization manquant")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Le format attendu est 'Bearer <token>'")
		}

		claims, err := ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Token invalide ou expiré")
		}

		// L'utilisateur doit toujours exister côté base
		ctx, cancel := context.WithTimeout(c.Context(), sessionCheckTimeout)
		defer cancel()

		var count int64
		if err := database.DB.WithContext(ctx).Model(&models.User{}).
			Where("id = ?", claims.UserID).
			Count(&count).Error; err != nil || count == 0 {
			return fiber.NewError(fiber.StatusUnauthorized, "Session invalide")
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxUserRoleKey, claims.Role)
		c.Locals(CtxRestaurantIDKey, claims.RestaurantID)

		return c.Next()
	}
}

func RequireRole(allowedRoles ...models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleVal := c.Locals(CtxUserRoleKey)
		role, ok := roleVal.(models.UserRole)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Rôle introuvable")
		}

		for _, r := range allowedRoles {
			if r == role {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "Tu n'as pas les droits pour cette opération")
	}
}
