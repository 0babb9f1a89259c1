package main

import (
	"strings"

	"carte-backend/internal/admin"
	"carte-backend/internal/audit"
	"carte-backend/internal/auth"
	"carte-backend/internal/config"
	"carte-backend/internal/database"
	"carte-backend/internal/logger"
	"carte-backend/internal/menu"
	"carte-backend/internal/menucache"
	"carte-backend/internal/models"
	"carte-backend/internal/publicmenu"
	"carte-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	logger.Init()
	database.Init(cfg)

	redisClient := menucache.NewRedisClient(cfg)
	store := menucache.NewRedisStore(redisClient)
	provider := publicmenu.NewProvider(database.DB, store)
	importer := storage.NewImporter()

	app := fiber.New(fiber.Config{
		BodyLimit: 32 * 1024 * 1024, // uploads de modèles 3D
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			logger.Error(err, "Erreur inattendue")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Erreur serveur inattendue",
			})
		},
	})

	app.Use(logger.RequestLogger())

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	// photos et modèles 3D uploadés
	app.Static("/media", cfg.MediaPath)

	api := app.Group("/api")

	// Auth publique
	api.Post("/auth/register-super-admin", auth.RegisterSuperAdminHandler(cfg))
	api.Post("/auth/register", auth.RegisterHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Carte publique (aucun JWT)
	api.Get("/public/:slug", publicmenu.GetRestaurantHandler())
	api.Get("/public/:slug/menu", publicmenu.GetMenuHandler(provider))
	api.Get("/public/:slug/events", publicmenu.EventsHandler(store))
	api.Get("/public/:slug/reservations", publicmenu.ReservationsHandler())

	// Protégé
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Routes super admin
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleSuperAdmin))

	adminRoutes.Get("/restaurants", admin.ListRestaurantsHandler())
	adminRoutes.Get("/items-3d", admin.ListItems3DHandler())
	adminRoutes.Patch("/items/:id/3d", admin.PatchItem3DHandler(store))

	// Routes propriétaire
	owner := protected.Group("")
	owner.Use(auth.RequireRole(models.RoleOwner))

	// Restaurant & template
	owner.Get("/restaurant", menu.GetRestaurantSettingsHandler())
	owner.Put("/restaurant", menu.UpdateRestaurantSettingsHandler())
	owner.Put("/restaurant/template", menu.SelectTemplateHandler())

	// Catégories ("reorder" avant ":id", fiber matche dans l'ordre)
	owner.Post("/categories", menu.CreateCategoryHandler(store))
	owner.Get("/categories", menu.ListCategoriesHandler())
	owner.Put("/categories/reorder", menu.ReorderCategoriesHandler(store))
	owner.Put("/categories/:id", menu.UpdateCategoryHandler(store))
	owner.Delete("/categories/:id", menu.DeleteCategoryHandler(store))

	// Sous-catégories
	owner.Post("/categories/:id/subcategories", menu.CreateSubcategoryHandler(store))
	owner.Get("/subcategories", menu.ListSubcategoriesHandler())
	owner.Put("/subcategories/:id", menu.UpdateSubcategoryHandler(store))
	owner.Delete("/subcategories/:id", menu.DeleteSubcategoryHandler(store))

	// Plats
	owner.Post("/items", menu.CreateMenuItemHandler(store))
	owner.Get("/items", menu.ListMenuItemsHandler())
	owner.Put("/items/:id", menu.UpdateMenuItemHandler(store))
	owner.Delete("/items/:id", menu.DeleteMenuItemHandler(store))

	// Médias des plats
	owner.Post("/items/:id/image", menu.UploadItemImageHandler(store, cfg.MediaPath))
	owner.Post("/items/:id/image/import", menu.ImportItemImageHandler(store, importer, cfg.MediaPath))
	owner.Post("/items/:id/model", menu.UploadItemModelHandler(store, cfg.MediaPath))

	// Suppléments
	owner.Post("/addons", menu.CreateAddonHandler(store))
	owner.Get("/addons", menu.ListAddonsHandler())
	owner.Put("/addons/:id", menu.UpdateAddonHandler(store))
	owner.Delete("/addons/:id", menu.DeleteAddonHandler(store))

	// Jours de réservation
	owner.Put("/reservations/:date", menu.SetReservationDayHandler())
	owner.Delete("/reservations/:date", menu.DeleteReservationDayHandler())

	// Journal d'audit (propriétaire et super admin)
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())

	logger.Info("Serveur démarré sur le port " + cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		logger.Error(err, "Le serveur s'est arrêté")
	}
}
