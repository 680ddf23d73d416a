package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/renteq/rentalcrm/internal/core/domain"
	portsrepo "github.com/renteq/rentalcrm/internal/core/ports/repositories"
	portssvc "github.com/renteq/rentalcrm/internal/core/ports/services"
	"github.com/renteq/rentalcrm/internal/dto"
	"github.com/renteq/rentalcrm/internal/middleware"
)

// inventoryService is the stock ledger entry point. Validation happens here;
// the counter invariants are re-enforced under the row lock in the repository
// so concurrent adjustments on the same (accessory, location) key serialize.
type inventoryService struct {
	invRepo       portsrepo.InventoryRepository
	accessoryRepo portsrepo.AccessoryRepository
	audit         portssvc.AuditRecorder
}

// NewInventoryService creates the stock ledger service.
func NewInventoryService(invRepo portsrepo.InventoryRepository, accessoryRepo portsrepo.AccessoryRepository, audit portssvc.AuditRecorder) portssvc.InventorySvcFacade {
	return &inventoryService{
		invRepo:       invRepo,
		accessoryRepo: accessoryRepo,
		audit:         audit,
	}
}

var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

// Adjust applies one validated stock movement and appends its audit record.
func (s *inventoryService) Adjust(ctx context.Context, req dto.AdjustStockRequest, userID string) (*domain.InventoryItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	movementType := domain.MovementType(req.Type)
	effect, err := movementType.Effect()
	if err != nil {
		return nil, err
	}

	// Reject adjustments against accessories that were never registered.
	if _, err := s.accessoryRepo.FindAccessoryByID(ctx, req.AccessoryID); err != nil {
		return nil, fmt.Errorf("failed to resolve accessory %s: %w", req.AccessoryID, err)
	}

	adj := domain.StockAdjustment{
		AccessoryID: req.AccessoryID,
		Location:    req.Location,
		Type:        movementType,
		Qty:         req.Qty,
		Comment:     req.Comment,
	}

	item, err := s.invRepo.Adjust(ctx, adj, effect, userID)
	if err != nil {
		return nil, err
	}

	logger.Info("Stock adjusted",
		slog.String("accessory_id", req.AccessoryID),
		slog.String("location", req.Location),
		slog.String("type", req.Type),
		slog.Int64("qty", req.Qty),
		slog.Int64("on_hand", item.QtyOnHand),
		slog.Int64("reserved", item.QtyReserved),
	)

	// Best-effort post-commit audit; failure is logged, never surfaced.
	if auditErr := s.audit.Record(ctx, "inventory_item", item.ItemID, "stock."+req.Type, map[string]string{
		"accessoryID": req.AccessoryID,
		"location":    req.Location,
		"qty":         fmt.Sprintf("%d", req.Qty),
	}); auditErr != nil {
		logger.Warn("Failed to record stock audit entry", slog.String("error", auditErr.Error()))
	}

	return item, nil
}

// Levels returns the per-location counters of one accessory.
func (s *inventoryService) Levels(ctx context.Context, accessoryID string) ([]domain.InventoryItem, error) {
	if _, err := s.accessoryRepo.FindAccessoryByID(ctx, accessoryID); err != nil {
		return nil, fmt.Errorf("failed to resolve accessory %s: %w", accessoryID, err)
	}
	return s.invRepo.FindItemsByAccessory(ctx, accessoryID)
}

// Movements returns the accessory's movement log, newest first.
func (s *inventoryService) Movements(ctx context.Context, accessoryID string, limit, offset int) ([]domain.InventoryMovement, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.invRepo.ListMovements(ctx, accessoryID, limit, offset)
}
