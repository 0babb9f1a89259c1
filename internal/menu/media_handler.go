package menu

import (
	"strings"

	"carte-backend/internal/audit"
	"carte-backend/internal/database"
	"carte-backend/internal/menucache"
	"carte-backend/internal/models"
	"carte-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
)

type ImportImageRequest struct {
	URL string `json:"url"`
}

type MediaResponse struct {
	ID         uint   `json:"id"`
	ImagePath  string `json:"image_path"`
	Model3DURL string `json:"model_3d_url"`
}

func mediaResponse(it *models.MenuItem) MediaResponse {
	return MediaResponse{
		ID:         it.ID,
		ImagePath:  it.ImagePath,
		Model3DURL: it.Model3DURL,
	}
}

// itemForOwner charge un plat en vérifiant qu'il appartient bien au tenant.
func itemForOwner(c *fiber.Ctx, restaurantID uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := database.DB.
		First(&item, "id = ? AND restaurant_id = ?", c.Params("id"), restaurantID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Plat introuvable")
	}
	return &item, nil
}

// UploadItemImageHandler - POST /api/items/:id/image (multipart, champ "image")
func UploadItemImageHandler(store menucache.Store, mediaPath string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID, err := ownerRestaurantID(c)
		if err != nil {
			return err
		}

		item, err := itemForOwner(c, restaurantID)
		if err != nil {
			return err
		}

		file, err := c.FormFile("image")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Fichier image manquant")
		}

		path, err := storage.NewImagePath(mediaPath, file.Filename)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := storage.SaveUpload(file, path); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Enregistrement de l'image impossible")
		}

		// on persiste le chemin public /media/..., pas le chemin disque
		oldURL := item.ImagePath
		item.ImagePath = storage.ServedURL(mediaPath, path)
		if err := database.DB.Save(item).Error; err != nil {
			storage.Remove(path)
			return fiber.NewError(fiber.StatusInternalServerError, "Mise à jour du plat impossible")
		}
		storage.Remove(storage.DiskPath(mediaPath, oldURL))

		if userID, userName, err := currentUser(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				RestaurantID: &restaurantID,
				UserID:       userID,
				UserName:     userName,
				EntityType:   "menu_item",
				EntityID:     item.ID,
				Action:       models.AuditActionUpdate,
				Description:  "Photo remplacée : " + item.Title,
			})
		}

		invalidateMenu(store, restaurantID)

		return c.JSON(mediaResponse(item))
	}
}

// ImportItemImageHandler - POST /api/items/:id/image/import
// Récupère la photo depuis une URL externe (image directe ou page produit).
func ImportItemImageHandler(store menucache.Store, importer *storage.Importer, mediaPath string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID, err := ownerRestaurantID(c)
		if err != nil {
			return err
		}

		item, err := itemForOwner(c, restaurantID)
		if err != nil {
			return err
		}

		var body ImportImageRequest
		if err := c.BodyParser(&body); err != nil || strings.TrimSpace(body.URL) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "URL manquante")
		}

		path, err := importer.ImportImage(c.Context(), strings.TrimSpace(body.URL), mediaPath)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "Import de l'image impossible : "+err.Error())
		}

		oldURL := item.ImagePath
		item.ImagePath = storage.ServedURL(mediaPath, path)
		if err := database.DB.Save(item).Error; err != nil {
			storage.Remove(path)
			return fiber.NewError(fiber.StatusInternalServerError, "Mise à jour du plat impossible")
		}
		storage.Remove(storage.DiskPath(mediaPath, oldURL))

		if userID, userName, err := currentUser(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				RestaurantID: &restaurantID,
				UserID:       userID,
				UserName:     userName,
				EntityType:   "menu_item",
				EntityID:     item.ID,
				Action:       models.AuditActionUpdate,
				Description:  "Photo importée : " + item.Title,
			})
		}

		invalidateMenu(store, restaurantID)

		return c.JSON(mediaResponse(item))
	}
}

// UploadItemModelHandler - POST /api/items/:id/model (multipart, champ "model")
// Modèles 3D .glb ou .usdz pour la visionneuse AR.
func UploadItemModelHandler(store menucache.Store, mediaPath string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID, err := ownerRestaurantID(c)
		if err != nil {
			return err
		}

		item, err := itemForOwner(c, restaurantID)
		if err != nil {
			return err
		}

		file, err := c.FormFile("model")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Fichier modèle manquant")
		}

		path, err := storage.NewModelPath(mediaPath, file.Filename)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := storage.SaveUpload(file, path); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Enregistrement du modèle impossible")
		}

		// un lien CDN posé par le super admin donne un DiskPath vide : on ne
		// supprime rien sur disque dans ce cas
		oldURL := item.Model3DURL
		item.Model3DURL = storage.ServedURL(mediaPath, path)
		if err := database.DB.Save(item).Error; err != nil {
			storage.Remove(path)
			return fiber.NewError(fiber.StatusInternalServerError, "Mise à jour du plat impossible")
		}
		storage.Remove(storage.DiskPath(mediaPath, oldURL))

		if userID, userName, err := currentUser(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				RestaurantID: &restaurantID,
				UserID:       userID,
				UserName:     userName,
				EntityType:   "menu_item",
				EntityID:     item.ID,
				Action:       models.AuditActionUpdate,
				Description:  "Modèle 3D remplacé : " + item.Title,
			})
		}

		invalidateMenu(store, restaurantID)

		return c.JSON(mediaResponse(item))
	}
}
