package models

import "time"

type Subcategory struct {
	ID           uint `gorm:"primaryKey"`
	RestaurantID uint `gorm:"index;not null"`
	CategoryID   uint `gorm:"index;not null"`
	Category     Category
	Title        string       `gorm:"size:150;not null"`
	TitleEN      string       `gorm:"size:150;column:title_en"`
	TitleIT      string       `gorm:"size:150;column:title_it"`
	TitleES      string       `gorm:"size:150;column:title_es"`
	Text         string       `gorm:"size:500"`
	TextEN       string       `gorm:"size:500;column:text_en"`
	TextIT       string       `gorm:"size:500;column:text_it"`
	TextES       string       `gorm:"size:500;column:text_es"`
	Order        int          `gorm:"column:sort_order;index;not null;default:0"`
	Status       RecordStatus `gorm:"size:20;not null;default:active"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
