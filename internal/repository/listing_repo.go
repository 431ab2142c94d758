package repository

import (
	"context"

	"dmvcalc/internal/model"

	"gorm.io/gorm"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *model.MarketListing) error
	FindByID(ctx context.Context, id uint) (*model.MarketListing, error)
}

type listingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) Create(ctx context.Context, listing *model.MarketListing) error {
	return GetDB(ctx, r.db).Create(listing).Error
}

func (r *listingRepository) FindByID(ctx context.Context, id uint) (*model.MarketListing, error) {
	var listing model.MarketListing
	if err := GetDB(ctx, r.db).First(&listing, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}
