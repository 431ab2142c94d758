package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ActionCreateCalculation   = "CREATE_DMV_CALCULATION"
	ActionUpdateCalculation   = "UPDATE_DMV_CALCULATION"
	ActionDeleteCalculation   = "DELETE_DMV_CALCULATION"
	ActionCreateMarketListing = "CREATE_MARKET_LISTING"
)

// AuditLog tracks Who, What, and When for changes to calculations
type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     string    `gorm:"type:varchar(128);index" json:"userId"` // empty for automated imports
	Action     string    `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string    `gorm:"type:varchar(50);index" json:"entityId"`
	EntityName string    `gorm:"type:varchar(255)" json:"entityName,omitempty"`
	Details    string    `gorm:"type:jsonb" json:"details"` // Serialized JSON payload of the action
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`
}

// BeforeCreate assigns the id client-side so every dialect gets one.
func (a *AuditLog) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
