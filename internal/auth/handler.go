package auth

import (
	"fmt"
	"strings"

	"carte-backend/internal/config"
	"carte-backend/internal/database"
	"carte-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterSuperAdminRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	RestaurantName string `json:"restaurant_name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func RegisterSuperAdminHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterSuperAdminRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		if body.Email == "" || body.Password == "" || body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nom, email et mot de passe obligatoires")
		}

		// Un seul super admin pour toute la plateforme
		var count int64
		database.DB.Model(&models.User{}).
			Where("role = ?", models.RoleSuperAdmin).
			Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusForbidden, "Un super admin existe déjà")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hachage du mot de passe impossible")
		}

		user := models.User{
			Name:         body.Name,
			Email:        body.Email,
			PasswordHash: string(hash),
			Role:         models.RoleSuperAdmin,
		}

		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Création de l'utilisateur impossible")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		})
	}
}

// RegisterHandler - inscription d'un restaurateur : crée l'utilisateur
// propriétaire et son restaurant avec un slug unique
func RegisterHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		body.Name = strings.TrimSpace(body.Name)
		body.RestaurantName = strings.TrimSpace(body.RestaurantName)

		if body.Email == "" || body.Password == "" || body.Name == "" || body.RestaurantName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nom, email, mot de passe et nom du restaurant obligatoires")
		}

		var exist models.User
		if err := database.DB.Where("email = ?", body.Email).First(&exist).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cet email est déjà enregistré")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hachage du mot de passe impossible")
		}

		var user models.User
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			restaurant := models.Restaurant{
				Name:       body.RestaurantName,
				Slug:       uniqueSlug(tx, body.RestaurantName),
				TemplateID: 1,
			}
			if err := tx.Create(&restaurant).Error; err != nil {
				return err
			}

			user = models.User{
				Name:         body.Name,
				Email:        body.Email,
				PasswordHash: string(hash),
				Role:         models.RoleOwner,
				RestaurantID: &restaurant.ID,
			}
			return tx.Create(&user).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Création du compte impossible")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Génération du token impossible")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":            user.ID,
				"name":          user.Name,
				"email":         user.Email,
				"role":          user.Role,
				"restaurant_id": user.RestaurantID,
			},
		})
	}
}

func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		var user models.User
		if err := database.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Email ou mot de passe incorrect")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Email ou mot de passe incorrect")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Génération du token impossible")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":            user.ID,
				"name":          user.Name,
				"email":         user.Email,
				"role":          user.Role,
				"restaurant_id": user.RestaurantID,
			},
		})
	}
}

func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userIDVal := c.Locals(CtxUserIDKey)

		var user models.User
		if userID, ok := userIDVal.(uint); ok {
			if err := database.DB.First(&user, userID).Error; err == nil {
				response := fiber.Map{
					"user_id":       user.ID,
					"name":          user.Name,
					"email":         user.Email,
					"role":          user.Role,
					"restaurant_id": user.RestaurantID,
				}

				if user.RestaurantID != nil {
					var restaurant models.Restaurant
					if err := database.DB.First(&restaurant, *user.RestaurantID).Error; err == nil {
						response["restaurant"] = fiber.Map{
							"id":          restaurant.ID,
							"name":        restaurant.Name,
							"slug":        restaurant.Slug,
							"template_id": restaurant.TemplateID,
						}
					}
				}

				return c.JSON(response)
			}
		}

		return fiber.NewError(fiber.StatusUnauthorized, "Session invalide")
	}
}

// Slugify transforme un nom de restaurant en slug d'URL.
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case strings.ContainsRune("àâä", r):
			b.WriteRune('a')
			lastDash = false
		case strings.ContainsRune("éèêë", r):
			b.WriteRune('e')
			lastDash = false
		case strings.ContainsRune("îï", r):
			b.WriteRune('i')
			lastDash = false
		case strings.ContainsRune("ôö", r):
			b.WriteRune('o')
			lastDash = false
		case strings.ContainsRune("ùûü", r):
			b.WriteRune('u')
			lastDash = false
		case r == 'ç':
			b.WriteRune('c')
			lastDash = false
		default:
			if !lastDash {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func uniqueSlug(tx *gorm.DB, name string) string {
	base := Slugify(name)
	if base == "" {
		base = "restaurant"
	}

	slug := base
	for i := 2; ; i++ {
		var count int64
		tx.Model(&models.Restaurant{}).Where("slug = ?", slug).Count(&count)
		if count == 0 {
			return slug
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
