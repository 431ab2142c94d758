package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"dmvcalc/internal/metrics"
	"dmvcalc/internal/model"
	"dmvcalc/internal/repository"
	"dmvcalc/internal/taxcalc"
)

var (
	ErrCalculationNotFound = errors.New("dmv calculation not found")
	ErrListingNotFound     = errors.New("market listing not found")
	ErrForbidden           = errors.New("dmv calculation belongs to another user")
	ErrInvalidInput        = errors.New("invalid input")
	ErrDuplicateListing    = errors.New("market listing already exists")
)

// SaveNotifier is told about every persisted calculation.
type SaveNotifier interface {
	NotifySaved(ownerID string, resp CalculationResponse)
}

// --- Interface ---

type CalculationService interface {
	Preview(ctx context.Context, req CalculationRequest) (PreviewResponse, error)
	Create(ctx context.Context, ownerID string, req CalculationRequest) (CalculationResponse, error)
	Update(ctx context.Context, ownerID string, id uint, req CalculationRequest) (CalculationResponse, error)
	Get(ctx context.Context, ownerID string, id uint) (CalculationResponse, error)
	List(ctx context.Context, ownerID string, page, limit int) ([]CalculationResponse, int64, error)
	Delete(ctx context.Context, ownerID string, id uint) error
}

type calculationService struct {
	calcRepo    repository.CalculationRepository
	listingRepo repository.ListingRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
	processor   *taxcalc.Processor
	format      Formatter
	metrics     *metrics.Metrics
	notifier    SaveNotifier
	log         *zap.Logger
	now         func() time.Time
}

// Option customizes a CalculationService.
type Option func(*calculationService)

// WithNotifier pushes saved calculations to n.
func WithNotifier(n SaveNotifier) Option {
	return func(s *calculationService) { s.notifier = n }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *calculationService) { s.now = now }
}

func NewCalculationService(
	calcRepo repository.CalculationRepository,
	listingRepo repository.ListingRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	processor *taxcalc.Processor,
	m *metrics.Metrics,
	log *zap.Logger,
	opts ...Option,
) CalculationService {
	s := &calculationService{
		calcRepo:    calcRepo,
		listingRepo: listingRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
		processor:   processor,
		format:      NewFormatter(processor.Rounding()),
		metrics:     m,
		log:         log,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// --- Implementation ---

// Preview processes the request without touching storage; the listing is
// only checked for presence.
func (s *calculationService) Preview(_ context.Context, req CalculationRequest) (PreviewResponse, error) {
	raw, err := req.toRecord(s.now())
	if err != nil {
		return PreviewResponse{}, err
	}

	res := s.processor.Process(raw)
	s.metrics.ObserveResult("preview", res)

	return PreviewResponse{
		Record:     s.format.Response(res.Record),
		Violations: res.Violations,
		Valid:      res.Valid(),
	}, nil
}

func (s *calculationService) Create(ctx context.Context, ownerID string, req CalculationRequest) (CalculationResponse, error) {
	raw, err := req.toRecord(s.now())
	if err != nil {
		return CalculationResponse{}, err
	}

	rec, err := s.process(ctx, "create", raw)
	if err != nil {
		return CalculationResponse{}, err
	}
	rec.OwnerUserID = ownerID
	rec.CreatedOn = s.now().UTC()

	row := model.FromRecord(rec)
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.calcRepo.Create(txCtx, &row); createErr != nil {
			return fmt.Errorf("failed to create dmv calculation: %w", createErr)
		}
		if auditErr := s.auditRepo.Record(txCtx, ownerID, model.ActionCreateCalculation, entityID(row.ID), auditName(rec), req); auditErr != nil {
			return fmt.Errorf("failed to write audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return CalculationResponse{}, err
	}

	saved := row.ToRecord()
	s.metrics.ObserveSaved(saved)
	s.log.Info("dmv calculation created",
		zap.Uint("id", saved.ID),
		zap.String("owner", ownerID),
		zap.String("total_tax", saved.TotalTaxAmount.String()))

	return s.saved(ownerID, saved), nil
}

// Update re-runs the whole create/validate/derive cycle on the new input.
// Identity, owner and creation time are kept. The ownership check and the
// write share one transaction so a concurrent delete is never undone.
func (s *calculationService) Update(ctx context.Context, ownerID string, id uint, req CalculationRequest) (CalculationResponse, error) {
	raw, err := req.toRecord(s.now())
	if err != nil {
		return CalculationResponse{}, err
	}

	var rec taxcalc.Record
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		existing, ownErr := s.owned(txCtx, ownerID, id)
		if ownErr != nil {
			return ownErr
		}

		processed, procErr := s.process(txCtx, "update", raw)
		if procErr != nil {
			return procErr
		}
		processed.ID = existing.ID
		processed.OwnerUserID = existing.OwnerUserID
		processed.CreatedOn = existing.CreatedOn

		row := model.FromRecord(processed)
		if updateErr := s.calcRepo.Update(txCtx, &row); updateErr != nil {
			if errors.Is(updateErr, gorm.ErrRecordNotFound) {
				return ErrCalculationNotFound
			}
			return fmt.Errorf("failed to update dmv calculation: %w", updateErr)
		}
		if auditErr := s.auditRepo.Record(txCtx, ownerID, model.ActionUpdateCalculation, entityID(row.ID), auditName(processed), req); auditErr != nil {
			return fmt.Errorf("failed to write audit log: %w", auditErr)
		}
		rec = processed
		return nil
	})
	if err != nil {
		return CalculationResponse{}, err
	}

	s.metrics.ObserveSaved(rec)
	return s.saved(ownerID, rec), nil
}

func (s *calculationService) Get(ctx context.Context, ownerID string, id uint) (CalculationResponse, error) {
	row, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return CalculationResponse{}, err
	}
	return s.format.Response(s.load(row)), nil
}

func (s *calculationService) List(ctx context.Context, ownerID string, page, limit int) ([]CalculationResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	rows, total, err := s.calcRepo.ListByOwner(ctx, ownerID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch dmv calculations: %w", err)
	}

	res := make([]CalculationResponse, 0, len(rows))
	for _, r := range rows {
		res = append(res, s.format.Response(s.load(&r)))
	}
	return res, total, nil
}

// Delete flags the calculation as deleted; nothing is removed.
func (s *calculationService) Delete(ctx context.Context, ownerID string, id uint) error {
	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		row, err := s.owned(txCtx, ownerID, id)
		if err != nil {
			return err
		}
		if delErr := s.calcRepo.SoftDelete(txCtx, row.ID); delErr != nil {
			if errors.Is(delErr, gorm.ErrRecordNotFound) {
				return ErrCalculationNotFound
			}
			return fmt.Errorf("failed to delete dmv calculation: %w", delErr)
		}
		if auditErr := s.auditRepo.Record(txCtx, ownerID, model.ActionDeleteCalculation, entityID(row.ID), auditName(s.load(row)), map[string]uint{"deletedId": row.ID}); auditErr != nil {
			return fmt.Errorf("failed to write audit log: %w", auditErr)
		}
		return nil
	})
}

// --- Helpers ---

// process runs the core and rejects invalid records with their violations.
func (s *calculationService) process(ctx context.Context, operation string, raw taxcalc.Record) (taxcalc.Record, error) {
	res := s.processor.Process(raw)
	s.metrics.ObserveResult(operation, res)
	if !res.Valid() {
		return taxcalc.Record{}, res.Violations
	}

	if raw.Listing != nil {
		if _, err := s.listingRepo.FindByID(ctx, raw.Listing.ID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return taxcalc.Record{}, ErrListingNotFound
			}
			return taxcalc.Record{}, fmt.Errorf("failed to fetch market listing: %w", err)
		}
	}
	return res.Record, nil
}

func (s *calculationService) owned(ctx context.Context, ownerID string, id uint) (*model.DmvCalculation, error) {
	row, err := s.calcRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCalculationNotFound
		}
		return nil, fmt.Errorf("failed to fetch dmv calculation: %w", err)
	}
	if row.OwnerUserID != ownerID {
		return nil, ErrForbidden
	}
	return row, nil
}

// load rebuilds the derived fields of a stored row from its inputs.
func (s *calculationService) load(row *model.DmvCalculation) taxcalc.Record {
	return s.processor.Derive(row.ToRecord())
}

func (s *calculationService) saved(ownerID string, rec taxcalc.Record) CalculationResponse {
	resp := s.format.Response(rec)
	if s.notifier != nil {
		s.notifier.NotifySaved(ownerID, resp)
	}
	return resp
}

func entityID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func auditName(r taxcalc.Record) string {
	return fmt.Sprintf("%s %s %s", r.VehicleType, r.FuelType, r.TotalVehicleValueWithTax.StringFixed(2))
}
