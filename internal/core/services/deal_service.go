package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/renteq/rentalcrm/internal/apperrors"
	"github.com/renteq/rentalcrm/internal/core/domain"
	portsrepo "github.com/renteq/rentalcrm/internal/core/ports/repositories"
	portssvc "github.com/renteq/rentalcrm/internal/core/ports/services"
	"github.com/renteq/rentalcrm/internal/dto"
	"github.com/renteq/rentalcrm/internal/middleware"
)

// dealService is the lifecycle orchestrator. It validates commands, derives
// amounts, and hands the repository one multi-entity write per operation; the
// repository re-verifies transition preconditions under row locks, so a
// concurrent operator racing on the same deal loses cleanly. Collaborator
// notifications run only after the commit and never roll it back.
type dealService struct {
	dealRepo      portsrepo.DealRepository
	assetRepo     portsrepo.AssetRepository
	clientRepo    portsrepo.ClientRepository
	accessoryRepo portsrepo.AccessoryRepository

	payments  portssvc.PaymentNotifier
	audit     portssvc.AuditRecorder
	documents portssvc.DocumentRequester
	delivery  portssvc.DeliveryScheduler

	// defaultLocation is the storage location accessory reservations draw from.
	defaultLocation string
}

// NewDealService creates the lifecycle orchestrator.
func NewDealService(
	dealRepo portsrepo.DealRepository,
	assetRepo portsrepo.AssetRepository,
	clientRepo portsrepo.ClientRepository,
	accessoryRepo portsrepo.AccessoryRepository,
	payments portssvc.PaymentNotifier,
	audit portssvc.AuditRecorder,
	documents portssvc.DocumentRequester,
	delivery portssvc.DeliveryScheduler,
	defaultLocation string,
) portssvc.DealSvcFacade {
	return &dealService{
		dealRepo:        dealRepo,
		assetRepo:       assetRepo,
		clientRepo:      clientRepo,
		accessoryRepo:   accessoryRepo,
		payments:        payments,
		audit:           audit,
		documents:       documents,
		delivery:        delivery,
		defaultLocation: defaultLocation,
	}
}

var _ portssvc.DealSvcFacade = (*dealService)(nil)

// CreateDealWithRental creates the deal header, its rental, the first billing
// period and the accessory reservations in one transaction. A reservation
// failure aborts everything: no deal, rental or movement row survives.
func (s *dealService) CreateDealWithRental(ctx context.Context, req dto.CreateDealRequest, userID string) (*domain.Deal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	status := domain.DealBooked
	if req.InitialStatus != nil {
		status = domain.DealStatus(*req.InitialStatus)
		if !status.IsValid() || status.IsTerminal() {
			return nil, fmt.Errorf("%w: %q is not a valid initial deal status", apperrors.ErrValidation, *req.InitialStatus)
		}
	}

	if _, err := s.clientRepo.FindClientByID(ctx, req.ClientID); err != nil {
		return nil, fmt.Errorf("failed to resolve client %s: %w", req.ClientID, err)
	}

	asset, err := s.assetRepo.FindAssetByID(ctx, req.AssetID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve asset %s: %w", req.AssetID, err)
	}
	if asset.Status != domain.AssetAvailable {
		return nil, fmt.Errorf("%w: asset %s is %s, not available", apperrors.ErrValidation, asset.Code, asset.Status)
	}

	for _, line := range req.Lines {
		if _, err := s.accessoryRepo.FindAccessoryByID(ctx, line.AccessoryID); err != nil {
			return nil, fmt.Errorf("failed to resolve accessory %s: %w", line.AccessoryID, err)
		}
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID}

	deal := domain.Deal{
		DealID:      uuid.NewString(),
		ClientID:    req.ClientID,
		Type:        req.Type,
		Status:      status,
		Origin:      domain.FreshDeal(),
		Source:      req.Source,
		Comment:     req.Comment,
		AuditFields: audit,
	}

	rental := domain.Rental{
		RentalID:        uuid.NewString(),
		DealID:          deal.DealID,
		AssetID:         req.AssetID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Outcome:         domain.OpenRental(),
		RentCents:       req.RentCents,
		DeliveryCents:   req.DeliveryCents,
		AssemblyCents:   req.AssemblyCents,
		DepositCents:    req.DepositCents,
		DiscountCents:   req.DiscountCents,
		DeliveryAddress: req.DeliveryAddress,
		PickupAddress:   req.PickupAddress,
		AuditFields:     audit,
	}
	if err := rental.Validate(); err != nil {
		return nil, err
	}

	rental.Lines = make([]domain.RentalAccessoryLine, len(req.Lines))
	for i, line := range req.Lines {
		rental.Lines[i] = domain.RentalAccessoryLine{
			LineID:      uuid.NewString(),
			RentalID:    rental.RentalID,
			AccessoryID: line.AccessoryID,
			Qty:         line.Qty,
			PriceCents:  line.PriceCents,
			IsIncluded:  line.IsIncluded,
		}
	}

	rental.PlannedMonths = PlannedMonths(rental.StartDate, rental.EndDate)
	rental.TotalCents = TotalPlannedCents(rental)

	period := domain.RentalPeriod{
		PeriodID:      uuid.NewString(),
		RentalID:      rental.RentalID,
		DealID:        deal.DealID,
		StartDate:     rental.StartDate,
		EndDate:       rental.EndDate,
		RentCents:     rental.RentCents,
		DeliveryCents: rental.DeliveryCents,
		DiscountCents: rental.DiscountCents,
		TotalCents:    ExtensionTotalCents(rental.RentCents, rental.DeliveryCents, rental.DiscountCents),
		CreatedAt:     now,
	}

	agg := portsrepo.DealWithRental{Deal: deal, Rental: rental, Period: period}
	if err := s.dealRepo.CreateDealWithRental(ctx, agg, s.defaultLocation); err != nil {
		logger.Error("Failed to create deal with rental", slog.String("error", err.Error()), slog.String("asset_id", req.AssetID))
		return nil, err
	}

	logger.Info("Deal created",
		slog.String("deal_id", deal.DealID),
		slog.String("rental_id", rental.RentalID),
		slog.Int64("total_cents", rental.TotalCents),
	)

	s.recordAudit(ctx, "deal", deal.DealID, "deal.create", map[string]string{
		"rentalID": rental.RentalID,
		"assetID":  rental.AssetID,
		"status":   string(deal.Status),
	})
	s.requestDocument(ctx, deal.DealID, domain.DocRentalContract)
	if rental.DeliveryAddress != "" {
		if err := s.delivery.ScheduleDelivery(ctx, rental.RentalID); err != nil {
			logger.Warn("Failed to schedule delivery", slog.String("rental_id", rental.RentalID), slog.String("error", err.Error()))
		}
	}

	return &deal, nil
}

// ActivateDeal marks a booked or delivered deal active and the asset rented.
func (s *dealService) ActivateDeal(ctx context.Context, dealID string, userID string) (*domain.Deal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	deal, err := s.dealRepo.FindDealByID(ctx, dealID)
	if err != nil {
		return nil, fmt.Errorf("failed to find deal %s: %w", dealID, err)
	}
	if err := deal.CanActivate(); err != nil {
		return nil, err
	}

	updated, err := s.dealRepo.ActivateDeal(ctx, dealID, userID, time.Now().UTC())
	if err != nil {
		logger.Error("Failed to activate deal", slog.String("deal_id", dealID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Deal activated", slog.String("deal_id", dealID))
	s.recordAudit(ctx, "deal", dealID, "deal.activate", map[string]string{"from": string(deal.Status)})
	s.requestDocument(ctx, dealID, domain.DocTransferAct)
	return updated, nil
}

// ExtendRental renews an open rental under a new deal linked to the original.
// The same asset and accessory reservations carry over; no stock moves.
func (s *dealService) ExtendRental(ctx context.Context, req dto.ExtendRentalRequest, userID string) (*domain.Deal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	rental, err := s.dealRepo.FindRentalByID(ctx, req.RentalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find rental %s: %w", req.RentalID, err)
	}
	if !rental.Outcome.IsOpen() {
		return nil, fmt.Errorf("%w: cannot extend a rental closed as %q", apperrors.ErrInvalidTransition, rental.Outcome.Kind)
	}

	deal, err := s.dealRepo.FindDealByID(ctx, rental.DealID)
	if err != nil {
		return nil, fmt.Errorf("failed to find deal %s: %w", rental.DealID, err)
	}
	if err := deal.CanExtend(); err != nil {
		return nil, err
	}

	if !req.NewEndDate.After(rental.EndDate) {
		return nil, fmt.Errorf("%w: new end date %s must be after current end date %s",
			apperrors.ErrValidation, req.NewEndDate.Format("2006-01-02"), rental.EndDate.Format("2006-01-02"))
	}

	now := time.Now().UTC()
	extension := domain.Deal{
		DealID:   uuid.NewString(),
		ClientID: deal.ClientID,
		Type:     deal.Type,
		Status:   domain.DealExtended,
		Origin:   domain.ExtensionOf(deal.DealID),
		Source:   deal.Source,
		Comment:  req.Comment,
		AuditFields: domain.AuditFields{
			CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID,
		},
	}
	period := domain.RentalPeriod{
		PeriodID:      uuid.NewString(),
		RentalID:      rental.RentalID,
		DealID:        extension.DealID,
		StartDate:     rental.EndDate,
		EndDate:       req.NewEndDate,
		RentCents:     req.RentCents,
		DeliveryCents: req.DeliveryCents,
		DiscountCents: req.DiscountCents,
		TotalCents:    ExtensionTotalCents(req.RentCents, req.DeliveryCents, req.DiscountCents),
		CreatedAt:     now,
	}

	if err := s.dealRepo.CreateExtension(ctx, extension, period, req.NewEndDate, userID); err != nil {
		logger.Error("Failed to create extension", slog.String("rental_id", req.RentalID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Rental extended",
		slog.String("rental_id", rental.RentalID),
		slog.String("extension_deal_id", extension.DealID),
		slog.Time("new_end_date", req.NewEndDate),
	)
	s.recordAudit(ctx, "deal", extension.DealID, "deal.extend", map[string]string{
		"parentDealID": deal.DealID,
		"rentalID":     rental.RentalID,
		"newEndDate":   req.NewEndDate.Format("2006-01-02"),
	})
	return &extension, nil
}

// CloseRentalByReturn ends a rental with the asset coming back: the deal
// closes as returned, the asset frees up, and reserved line stock is released.
func (s *dealService) CloseRentalByReturn(ctx context.Context, rentalID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	deal, rental, err := s.closeRental(ctx, rentalID, domain.OutcomeClosedReturn, userID)
	if err != nil {
		return err
	}

	logger.Info("Rental closed by return", slog.String("rental_id", rentalID), slog.String("deal_id", deal.DealID))
	s.recordAudit(ctx, "rental", rentalID, "rental.close_return", map[string]string{
		"dealID":  deal.DealID,
		"assetID": rental.AssetID,
	})
	s.requestDocument(ctx, deal.DealID, domain.DocReturnAct)
	return nil
}

// CloseRentalByBuyout ends a rental by selling the asset to the client. The
// issued accessory stock stays with the client; if a purchase amount is
// supplied a sale payment event is emitted after commit.
func (s *dealService) CloseRentalByBuyout(ctx context.Context, rentalID string, purchaseAmountCents *int64, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	deal, rental, err := s.closeRental(ctx, rentalID, domain.OutcomeClosedPurchase, userID)
	if err != nil {
		return err
	}

	logger.Info("Rental closed by buyout", slog.String("rental_id", rentalID), slog.String("deal_id", deal.DealID))
	s.recordAudit(ctx, "rental", rentalID, "rental.close_buyout", map[string]string{
		"dealID":  deal.DealID,
		"assetID": rental.AssetID,
	})
	s.requestDocument(ctx, deal.DealID, domain.DocBuyout)

	if purchaseAmountCents != nil {
		event := domain.PaymentEvent{
			DealID:      deal.DealID,
			RentalID:    rentalID,
			Kind:        domain.PaymentSale,
			AmountCents: *purchaseAmountCents,
			OccurredAt:  time.Now().UTC(),
		}
		if err := s.payments.NotifyPayment(ctx, event); err != nil {
			logger.Warn("Failed to notify payment for buyout", slog.String("deal_id", deal.DealID), slog.String("error", err.Error()))
		}
	}
	return nil
}

// closeRental validates and runs the shared close path for both terminal kinds.
func (s *dealService) closeRental(ctx context.Context, rentalID string, kind domain.OutcomeKind, userID string) (*domain.Deal, *domain.Rental, error) {
	rental, err := s.dealRepo.FindRentalByID(ctx, rentalID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find rental %s: %w", rentalID, err)
	}
	if !rental.Outcome.IsOpen() {
		return nil, nil, fmt.Errorf("%w: rental already closed as %q", apperrors.ErrInvalidTransition, rental.Outcome.Kind)
	}

	deal, err := s.dealRepo.FindDealByID(ctx, rental.DealID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find deal %s: %w", rental.DealID, err)
	}
	if err := deal.CanClose(); err != nil {
		return nil, nil, err
	}

	closedDeal, closedRental, err := s.dealRepo.CloseRental(ctx, rentalID, kind, s.defaultLocation, userID, time.Now().UTC())
	if err != nil {
		return nil, nil, err
	}
	return closedDeal, closedRental, nil
}

// CancelDeal cancels any non-terminal deal, releasing its reservations.
func (s *dealService) CancelDeal(ctx context.Context, dealID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	deal, err := s.dealRepo.FindDealByID(ctx, dealID)
	if err != nil {
		return fmt.Errorf("failed to find deal %s: %w", dealID, err)
	}
	if err := deal.CanCancel(); err != nil {
		return err
	}

	if _, err := s.dealRepo.CancelDeal(ctx, dealID, s.defaultLocation, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to cancel deal", slog.String("deal_id", dealID), slog.String("error", err.Error()))
		return err
	}

	logger.Info("Deal canceled", slog.String("deal_id", dealID))
	s.recordAudit(ctx, "deal", dealID, "deal.cancel", map[string]string{"from": string(deal.Status)})
	return nil
}

// GetDeal retrieves one deal header.
func (s *dealService) GetDeal(ctx context.Context, dealID string) (*domain.Deal, error) {
	return s.dealRepo.FindDealByID(ctx, dealID)
}

// GetRental retrieves one rental with its accessory lines.
func (s *dealService) GetRental(ctx context.Context, rentalID string) (*domain.Rental, error) {
	return s.dealRepo.FindRentalByID(ctx, rentalID)
}

// ListDeals retrieves deals, optionally filtered by status.
func (s *dealService) ListDeals(ctx context.Context, status *domain.DealStatus, limit, offset int) ([]domain.Deal, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.dealRepo.ListDeals(ctx, status, limit, offset)
}

// recordAudit records a post-commit audit entry; failure is logged only.
func (s *dealService) recordAudit(ctx context.Context, entityType, entityID, action string, metadata map[string]string) {
	if err := s.audit.Record(ctx, entityType, entityID, action, metadata); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to record audit entry",
			slog.String("entity_type", entityType),
			slog.String("entity_id", entityID),
			slog.String("action", action),
			slog.String("error", err.Error()),
		)
	}
}

// requestDocument asks the document collaborator for an artifact; best effort.
func (s *dealService) requestDocument(ctx context.Context, dealID string, docType domain.DocType) {
	if err := s.documents.RequestDocument(ctx, dealID, docType); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to request document",
			slog.String("deal_id", dealID),
			slog.String("doc_type", string(docType)),
			slog.String("error", err.Error()),
		)
	}
}
