package audit

import (
	"encoding/json"
	"fmt"

	"carte-backend/internal/database"
	"carte-backend/internal/models"
)

type LogOptions struct {
	RestaurantID *uint
	UserID       uint
	UserName     string
	EntityType   string
	EntityID     uint
	Action       models.AuditAction
	Description  string
	Before       any
	After        any
}

func WriteLog(opts LogOptions) error {
	// jsonb Postgres : "null" plutôt qu'une chaîne vide
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	log := models.AuditLog{
		RestaurantID: opts.RestaurantID,
		UserID:       opts.UserID,
		UserName:     opts.UserName,
		EntityType:   opts.EntityType,
		EntityID:     opts.EntityID,
		Action:       opts.Action,
		Description:  opts.Description,
		BeforeData:   beforeStr,
		AfterData:    afterStr,
	}

	if err := database.DB.Create(&log).Error; err != nil {
		return fmt.Errorf("enregistrement du log d'audit impossible : %w", err)
	}

	return nil
}
