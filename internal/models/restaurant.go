package models

import "time"

type Restaurant struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"size:100;not null"`
	Slug       string `gorm:"size:100;uniqueIndex;not null"` // URL publique: /public/:slug
	TemplateID int    `gorm:"not null;default:1"`            // 1..4
	Address    string `gorm:"size:255"`
	Phone      string `gorm:"size:50"` // Téléphone optionnel
	Hours      string `gorm:"size:255"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Users []User
}
