package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"dmvcalc/internal/model"
	"dmvcalc/internal/repository"
)

// --- DTOs ---

type CreateListingRequest struct {
	ExternalID             string `json:"externalId" binding:"required"`
	Source                 string `json:"source"`
	Make                   string `json:"make" binding:"required"`
	Model                  string `json:"model"`
	FirstRegistration      string `json:"firstRegistration"` // YYYY-MM-DD, optional
	Price                  string `json:"price"`             // Decimal string
	Currency               string `json:"currency"`
	CO2EmissionsGramsPerKm int    `json:"co2EmissionsGramsPerKm" binding:"gte=0"`
	FuelType               int    `json:"fuelType" binding:"gte=0"`
	EnginePowerKw          int    `json:"enginePowerKw" binding:"gte=0"`
	URL                    string `json:"url"`
}

// --- Interface ---

type ListingService interface {
	Create(ctx context.Context, userID string, req CreateListingRequest) (*model.MarketListing, error)
	Get(ctx context.Context, id uint) (*model.MarketListing, error)
}

type listingService struct {
	listingRepo repository.ListingRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
}

func NewListingService(listingRepo repository.ListingRepository, auditRepo repository.AuditRepository, txManager repository.TransactionManager) ListingService {
	return &listingService{listingRepo: listingRepo, auditRepo: auditRepo, txManager: txManager}
}

// --- Implementation ---

func (s *listingService) Create(ctx context.Context, userID string, req CreateListingRequest) (*model.MarketListing, error) {
	listing := &model.MarketListing{
		ExternalID:             strings.TrimSpace(req.ExternalID),
		Source:                 req.Source,
		Make:                   req.Make,
		Model:                  req.Model,
		Currency:               strings.ToUpper(req.Currency),
		CO2EmissionsGramsPerKm: req.CO2EmissionsGramsPerKm,
		FuelTypeID:             req.FuelType,
		EnginePowerKw:          req.EnginePowerKw,
		URL:                    req.URL,
	}
	if listing.Source == "" {
		listing.Source = "mobile.de"
	}
	if listing.Currency == "" {
		listing.Currency = "EUR"
	}

	if req.Price != "" {
		price, err := decimal.NewFromString(req.Price)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid price: %v", ErrInvalidInput, err)
		}
		listing.Price = price
	}
	if req.FirstRegistration != "" {
		reg, err := time.Parse(dateLayout, req.FirstRegistration)
		if err != nil {
			return nil, fmt.Errorf("%w: firstRegistration must be YYYY-MM-DD", ErrInvalidInput)
		}
		listing.FirstRegistration = &reg
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.listingRepo.Create(txCtx, listing); createErr != nil {
			if errors.Is(createErr, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: externalId %q", ErrDuplicateListing, listing.ExternalID)
			}
			return fmt.Errorf("failed to create market listing: %w", createErr)
		}
		return s.auditRepo.Record(txCtx, userID, model.ActionCreateMarketListing, entityID(listing.ID), listing.Make+" "+listing.Model, req)
	})
	if err != nil {
		return nil, err
	}
	return listing, nil
}

func (s *listingService) Get(ctx context.Context, id uint) (*model.MarketListing, error) {
	listing, err := s.listingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to fetch market listing: %w", err)
	}
	return listing, nil
}
