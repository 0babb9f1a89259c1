package publicmenu

import (
	"bufio"
	"context"
	"fmt"
	"time"

	"carte-backend/internal/assembly"
	"carte-backend/internal/database"
	"carte-backend/internal/menucache"
	"carte-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

type CategoryTab struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text,omitempty"`
}

type RestaurantResponse struct {
	ID         uint          `json:"id"`
	Name       string        `json:"name"`
	Slug       string        `json:"slug"`
	TemplateID int           `json:"template_id"`
	Address    string        `json:"address,omitempty"`
	Phone      string        `json:"phone,omitempty"`
	Hours      string        `json:"hours,omitempty"`
	Categories []CategoryTab `json:"categories"`
}

type MenuResponse struct {
	CategoryID    uint               `json:"category_id"`
	CategoryTitle string             `json:"category_title"`
	CategoryText  string             `json:"category_text,omitempty"`
	Sections      []assembly.Section `json:"sections"`
}

func restaurantBySlug(slug string) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := database.DB.Where("slug = ?", slug).First(&restaurant).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Restaurant introuvable")
	}
	return &restaurant, nil
}

// GetRestaurantHandler - profil public + onglets de catégories localisés
func GetRestaurantHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurant, err := restaurantBySlug(c.Params("slug"))
		if err != nil {
			return err
		}

		lang := assembly.ParseLanguage(c.Query("lang"))

		var categories []models.Category
		if err := database.DB.
			Where("restaurant_id = ? AND status = ?", restaurant.ID, models.StatusActive).
			Order("sort_order ASC").
			Find(&categories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Chargement de la carte impossible")
		}

		tabs := make([]CategoryTab, 0, len(categories))
		for i := range categories {
			cat := categories[i]
			tabs = append(tabs, CategoryTab{
				ID:    cat.ID,
				Title: assembly.Resolve(&cat, assembly.FieldTitle, lang),
				Text:  assembly.Resolve(&cat, assembly.FieldText, lang),
			})
		}

		return c.JSON(RestaurantResponse{
			ID:         restaurant.ID,
			Name:       restaurant.Name,
			Slug:       restaurant.Slug,
			TemplateID: restaurant.TemplateID,
			Address:    restaurant.Address,
			Phone:      restaurant.Phone,
			Hours:      restaurant.Hours,
			Categories: tabs,
		})
	}
}

// GetMenuHandler - sections assemblées de la catégorie demandée. Sans
// paramètre category, la première catégorie active est sélectionnée (état
// initial des onglets côté client).
func GetMenuHandler(provider *Provider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurant, err := restaurantBySlug(c.Params("slug"))
		if err != nil {
			return err
		}

		lang := assembly.ParseLanguage(c.Query("lang"))

		bundles, err := provider.MenuData(c.Context(), restaurant.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Chargement de la carte impossible")
		}

		categoryID := uint(c.QueryInt("category"))
		if categoryID == 0 {
			categoryID = firstCategoryID(bundles)
		}

		bundle, ok := bundles[categoryID]
		if !ok {
			// rien à afficher pour cette catégorie : séquence vide, pas une erreur
			return c.JSON(MenuResponse{
				CategoryID: categoryID,
				Sections:   []assembly.Section{},
			})
		}

		sections := assembly.BuildSections(&bundle, lang, SpecialsLabel(lang), SupplementsLabel(lang))

		return c.JSON(MenuResponse{
			CategoryID:    bundle.Category.ID,
			CategoryTitle: assembly.Resolve(&bundle.Category, assembly.FieldTitle, lang),
			CategoryText:  assembly.Resolve(&bundle.Category, assembly.FieldText, lang),
			Sections:      sections,
		})
	}
}

func firstCategoryID(bundles map[uint]assembly.Bundle) uint {
	var first uint
	bestOrder := 0
	found := false
	for id, b := range bundles {
		if !found || b.Category.Order < bestOrder || (b.Category.Order == bestOrder && id < first) {
			first = id
			bestOrder = b.Category.Order
			found = true
		}
	}
	return first
}

// EventsHandler - flux SSE notifiant les clients publics qu'un menu a changé.
// Les événements ne portent pas de payload : au signal, le client recharge.
func EventsHandler(store menucache.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurant, err := restaurantBySlug(c.Params("slug"))
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		changes, unsubscribe, err := store.Subscribe(ctx, restaurant.ID)
		if err != nil {
			cancel()
			return fiber.NewError(fiber.StatusServiceUnavailable, "Notifications indisponibles")
		}

		c.Set("Content-Type", "text/event-stream")
		c.Set("Cache-Control", "no-cache")
		c.Set("Connection", "keep-alive")

		c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
			defer cancel()
			defer unsubscribe()

			keepalive := time.NewTicker(30 * time.Second)
			defer keepalive.Stop()

			for {
				select {
				case _, ok := <-changes:
					if !ok {
						return
					}
					fmt.Fprint(w, "event: menu-changed\ndata:\n\n")
				case <-keepalive.C:
					fmt.Fprint(w, ": keepalive\n\n")
				}
				if err := w.Flush(); err != nil {
					// client parti
					return
				}
			}
		}))

		return nil
	}
}

// ReservationsHandler - calendrier public du mois demandé (format 2026-08)
func ReservationsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurant, err := restaurantBySlug(c.Params("slug"))
		if err != nil {
			return err
		}

		monthStr := c.Query("month")
		month, err := time.Parse("2006-01", monthStr)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Paramètre month attendu au format AAAA-MM")
		}

		from := month
		to := month.AddDate(0, 1, 0)

		var days []models.ReservationDay
		if err := database.DB.
			Where("restaurant_id = ? AND date >= ? AND date < ?", restaurant.ID, from, to).
			Order("date ASC").
			Find(&days).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Chargement du calendrier impossible")
		}

		type dayResponse struct {
			Date   string                   `json:"date"`
			Status models.ReservationStatus `json:"status"`
			Note   string                   `json:"note,omitempty"`
		}
		res := make([]dayResponse, 0, len(days))
		for _, d := range days {
			res = append(res, dayResponse{
				Date:   d.Date.Format("2006-01-02"),
				Status: d.Status,
				Note:   d.Note,
			})
		}

		return c.JSON(res)
	}
}
