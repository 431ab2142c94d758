package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"dmvcalc/internal/model"
	"dmvcalc/internal/repository"
)

var calculationActions = []string{
	model.ActionCreateCalculation,
	model.ActionUpdateCalculation,
	model.ActionDeleteCalculation,
}

type AuditLogResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"userId"`
	Action     string `json:"action"`
	EntityID   string `json:"entityId"`
	EntityName string `json:"entityName"`
	Details    string `json:"details"`
	CreatedAt  string `json:"createdAt"`
}

type AuditService interface {
	CalculationHistory(ctx context.Context, ownerID string, id uint) ([]AuditLogResponse, error)
}

type auditService struct {
	calcRepo  repository.CalculationRepository
	auditRepo repository.AuditRepository
}

// NewAuditService creates a new AuditService instance
func NewAuditService(calcRepo repository.CalculationRepository, auditRepo repository.AuditRepository) AuditService {
	return &auditService{calcRepo: calcRepo, auditRepo: auditRepo}
}

// CalculationHistory lists the changes made to one of the owner's calculations, oldest first.
func (s *auditService) CalculationHistory(ctx context.Context, ownerID string, id uint) ([]AuditLogResponse, error) {
	calc, err := s.calcRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCalculationNotFound
		}
		return nil, fmt.Errorf("failed to fetch dmv calculation: %w", err)
	}
	if calc.OwnerUserID != ownerID {
		return nil, ErrForbidden
	}

	logs, err := s.auditRepo.ListByEntity(ctx, entityID(id), calculationActions...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch audit logs: %w", err)
	}

	res := make([]AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		res = append(res, AuditLogResponse{
			ID:         l.ID.String(),
			UserID:     l.UserID,
			Action:     l.Action,
			EntityID:   l.EntityID,
			EntityName: l.EntityName,
			Details:    l.Details,
			CreatedAt:  l.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return res, nil
}
