package repository

import (
	"context"

	"dmvcalc/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CalculationRepository interface {
	Create(ctx context.Context, calc *model.DmvCalculation) error
	Update(ctx context.Context, calc *model.DmvCalculation) error
	FindByID(ctx context.Context, id uint) (*model.DmvCalculation, error)
	ListByOwner(ctx context.Context, ownerID string, page, limit int) ([]model.DmvCalculation, int64, error)
	SoftDelete(ctx context.Context, id uint) error
}

type calculationRepository struct {
	db *gorm.DB
}

func NewCalculationRepository(db *gorm.DB) CalculationRepository {
	return &calculationRepository{db: db}
}

func (r *calculationRepository) Create(ctx context.Context, calc *model.DmvCalculation) error {
	return GetDB(ctx, r.db).Create(calc).Error
}

// Update rewrites every column of a live row, zero values included, so an
// unlinked listing clears the column. A soft-deleted row is left untouched
// and reported as gorm.ErrRecordNotFound.
func (r *calculationRepository) Update(ctx context.Context, calc *model.DmvCalculation) error {
	res := GetDB(ctx, r.db).Model(calc).
		Omit(clause.Associations, "is_deleted").
		Where("is_deleted = ?", false).
		Select("*").
		Updates(calc)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID never returns soft-deleted rows.
func (r *calculationRepository) FindByID(ctx context.Context, id uint) (*model.DmvCalculation, error) {
	var calc model.DmvCalculation
	if err := GetDB(ctx, r.db).Preload("MarketListing").
		Where("is_deleted = ?", false).
		First(&calc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &calc, nil
}

func (r *calculationRepository) ListByOwner(ctx context.Context, ownerID string, page, limit int) ([]model.DmvCalculation, int64, error) {
	var calcs []model.DmvCalculation
	var total int64

	scope := func(db *gorm.DB) *gorm.DB {
		return db.Where("owner_user_id = ? AND is_deleted = ?", ownerID, false)
	}

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.DmvCalculation{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Scopes(scope).Order("created_on desc, id desc").Offset(offset).Limit(limit).Find(&calcs).Error; err != nil {
		return nil, 0, err
	}

	return calcs, total, nil
}

// SoftDelete flags the row; rows are never removed.
func (r *calculationRepository) SoftDelete(ctx context.Context, id uint) error {
	res := GetDB(ctx, r.db).Model(&model.DmvCalculation{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
