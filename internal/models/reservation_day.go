package models

import "time"

type ReservationStatus string

const (
	ReservationOpen   ReservationStatus = "open"
	ReservationFull   ReservationStatus = "full"
	ReservationClosed ReservationStatus = "closed"
)

// ReservationDay - statut d'ouverture par jour, clé (restaurant, date)
type ReservationDay struct {
	ID           uint              `gorm:"primaryKey"`
	RestaurantID uint              `gorm:"uniqueIndex:idx_reservation_day;not null"`
	Date         time.Time         `gorm:"uniqueIndex:idx_reservation_day;type:date;not null"`
	Status       ReservationStatus `gorm:"size:20;not null"`
	Note         string            `gorm:"size:255"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
