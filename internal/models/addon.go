package models

import "time"

// Addon est rattaché au tenant. category_id/subcategory_id sont des
// métadonnées optionnelles, le placement reste la section Suppléments.
type Addon struct {
	ID            uint   `gorm:"primaryKey"`
	RestaurantID  uint   `gorm:"index;not null"`
	CategoryID    *uint  `gorm:"index"`
	SubcategoryID *uint  `gorm:"index"`
	Title         string `gorm:"size:150;not null"`
	TitleEN       string `gorm:"size:150;column:title_en"`
	TitleIT       string `gorm:"size:150;column:title_it"`
	TitleES       string `gorm:"size:150;column:title_es"`
	Description   string `gorm:"size:1000"`
	DescriptionEN string `gorm:"size:1000;column:description_en"`
	DescriptionIT string `gorm:"size:1000;column:description_it"`
	DescriptionES string `gorm:"size:1000;column:description_es"`
	Price         float64
	Order         int          `gorm:"column:sort_order;index;not null;default:0"`
	Status        RecordStatus `gorm:"size:20;not null;default:active"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
