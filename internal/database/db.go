package database

import (
	"log"

	"carte-backend/internal/config"
	"carte-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Connexion à la base de données impossible : %v", err)
	}

	// Migration manuelle : les anciennes tables utilisaient la colonne "order"
	// (mot réservé SQL), renommée en sort_order AVANT l'AutoMigrate pour
	// conserver les valeurs existantes
	for _, table := range []string{"categories", "subcategories", "menu_items", "addons"} {
		if DB.Migrator().HasTable(table) && DB.Migrator().HasColumn(table, "order") && !DB.Migrator().HasColumn(table, "sort_order") {
			log.Printf("Renommage de %s.order en sort_order...", table)
			if err := DB.Exec(`ALTER TABLE ` + table + ` RENAME COLUMN "order" TO sort_order`).Error; err != nil {
				log.Printf("Renommage de la colonne order impossible sur %s : %v", table, err)
			}
		}
	}

	err = DB.AutoMigrate(
		&models.Restaurant{},
		&models.User{},
		&models.Category{},
		&models.Subcategory{},
		&models.MenuItem{},
		&models.Addon{},
		&models.ReservationDay{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("Erreur AutoMigrate : %v", err)
	}

	// Backfill des slugs manquants (restaurants créés avant l'ajout du slug)
	var missing int64
	DB.Raw("SELECT COUNT(*) FROM restaurants WHERE slug IS NULL OR slug = ''").Scan(&missing)
	if missing > 0 {
		log.Printf("%d restaurants sans slug, backfill depuis l'id...", missing)
		DB.Exec("UPDATE restaurants SET slug = 'restaurant-' || id WHERE slug IS NULL OR slug = ''")
	}

	log.Println("Connexion à la base réussie. Migration terminée.")
}
