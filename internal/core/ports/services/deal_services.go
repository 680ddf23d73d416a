package services

import (
	"context"

	"github.com/renteq/rentalcrm/internal/core/domain"
	"github.com/renteq/rentalcrm/internal/dto"
)

// DealSvcFacade is the lifecycle orchestrator consumed by the HTTP layer.
// Every mutating operation is one atomic unit of work; post-commit side
// effects (audit, payment notification) are best-effort and never roll the
// business transaction back.
type DealSvcFacade interface {
	CreateDealWithRental(ctx context.Context, req dto.CreateDealRequest, userID string) (*domain.Deal, error)
	ActivateDeal(ctx context.Context, dealID string, userID string) (*domain.Deal, error)
	ExtendRental(ctx context.Context, req dto.ExtendRentalRequest, userID string) (*domain.Deal, error)
	CloseRentalByReturn(ctx context.Context, rentalID string, userID string) error
	CloseRentalByBuyout(ctx context.Context, rentalID string, purchaseAmountCents *int64, userID string) error
	CancelDeal(ctx context.Context, dealID string, userID string) error
	GetDeal(ctx context.Context, dealID string) (*domain.Deal, error)
	GetRental(ctx context.Context, rentalID string) (*domain.Rental, error)
	ListDeals(ctx context.Context, status *domain.DealStatus, limit, offset int) ([]domain.Deal, error)
}

// InventorySvcFacade exposes the stock ledger.
type InventorySvcFacade interface {
	Adjust(ctx context.Context, req dto.AdjustStockRequest, userID string) (*domain.InventoryItem, error)
	Levels(ctx context.Context, accessoryID string) ([]domain.InventoryItem, error)
	Movements(ctx context.Context, accessoryID string, limit, offset int) ([]domain.InventoryMovement, error)
}
