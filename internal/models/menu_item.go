package models

import "time"

type MenuItem struct {
	ID            uint `gorm:"primaryKey"`
	RestaurantID  uint `gorm:"index;not null"`
	SubcategoryID uint `gorm:"index;not null"`
	Subcategory   Subcategory
	Title         string `gorm:"size:150;not null"`
	TitleEN       string `gorm:"size:150;column:title_en"`
	TitleIT       string `gorm:"size:150;column:title_it"`
	TitleES       string `gorm:"size:150;column:title_es"`
	Text          string `gorm:"size:500"`
	TextEN        string `gorm:"size:500;column:text_en"`
	TextIT        string `gorm:"size:500;column:text_it"`
	TextES        string `gorm:"size:500;column:text_es"`
	Description   string `gorm:"size:1000"`
	DescriptionEN string `gorm:"size:1000;column:description_en"`
	DescriptionIT string `gorm:"size:1000;column:description_it"`
	DescriptionES string `gorm:"size:1000;column:description_es"`
	Price         float64
	IsSpecial     bool         `gorm:"not null;default:false"` // promu dans la section Spéciaux
	ImagePath     string       `gorm:"size:255"`
	Model3DURL    string       `gorm:"size:255;column:model_3d_url"`    // modèle .glb
	Redirect3DURL string       `gorm:"size:255;column:redirect_3d_url"` // modèle AR iOS (.usdz)
	Order         int          `gorm:"column:sort_order;index;not null;default:0"`
	Status        RecordStatus `gorm:"size:20;not null;default:active"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
