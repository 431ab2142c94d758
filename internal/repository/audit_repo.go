package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"dmvcalc/internal/model"

	"gorm.io/gorm"
)

type AuditRepository interface {
	Log(ctx context.Context, entry *model.AuditLog) error
	Record(ctx context.Context, userID, action, entityID, entityName string, details any) error
	ListByEntity(ctx context.Context, entityID string, actions ...string) ([]model.AuditLog, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Log(ctx context.Context, entry *model.AuditLog) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

// Record serializes details to JSON and writes the entry.
func (r *auditRepository) Record(ctx context.Context, userID, action, entityID, entityName string, details any) error {
	payload, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("failed to encode audit details: %w", err)
	}
	return r.Log(ctx, &model.AuditLog{
		UserID:     userID,
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(payload),
	})
}

// ListByEntity returns the entity's history, oldest first, optionally
// restricted to some actions.
func (r *auditRepository) ListByEntity(ctx context.Context, entityID string, actions ...string) ([]model.AuditLog, error) {
	var logs []model.AuditLog
	query := GetDB(ctx, r.db).Where("entity_id = ?", entityID)
	if len(actions) > 0 {
		query = query.Where("action IN ?", actions)
	}
	if err := query.Order("created_at asc").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
