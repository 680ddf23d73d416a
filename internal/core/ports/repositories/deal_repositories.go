package repositories

import (
	"context"
	"time"

	"github.com/renteq/rentalcrm/internal/core/domain"
)

// DealWithRental bundles the aggregate created by the lifecycle orchestrator.
type DealWithRental struct {
	Deal   domain.Deal
	Rental domain.Rental
	Period domain.RentalPeriod
}

// DealRepository persists deals, rentals and their accessory lines. The
// multi-entity mutators each run inside a single database transaction, lock
// the rows they touch and re-verify transition preconditions under the lock,
// so a stale caller gets ErrInvalidTransition instead of a lost update.
type DealRepository interface {
	// CreateDealWithRental inserts the deal, rental, first billing period and
	// accessory lines, and reserves line stock at defaultLocation. A failed
	// reservation aborts the whole transaction: no partial rows survive.
	CreateDealWithRental(ctx context.Context, agg DealWithRental, defaultLocation string) error

	FindDealByID(ctx context.Context, dealID string) (*domain.Deal, error)
	FindRentalByID(ctx context.Context, rentalID string) (*domain.Rental, error)
	FindRentalByDealID(ctx context.Context, dealID string) (*domain.Rental, error)
	ListDeals(ctx context.Context, status *domain.DealStatus, limit, offset int) ([]domain.Deal, error)

	// ActivateDeal moves the deal to active and the asset to rented.
	ActivateDeal(ctx context.Context, dealID string, userID string, now time.Time) (*domain.Deal, error)

	// CloseRental applies a terminal outcome to the rental and its deal, frees
	// the asset, and (for closed_return) releases reserved line stock at
	// defaultLocation. Buyout closes keep the issued stock committed.
	CloseRental(ctx context.Context, rentalID string, kind domain.OutcomeKind, defaultLocation string, userID string, now time.Time) (*domain.Deal, *domain.Rental, error)

	// CancelDeal cancels a non-terminal deal, releasing reservations and
	// reverting the asset to available when the deal had advanced that far.
	CancelDeal(ctx context.Context, dealID string, defaultLocation string, userID string, now time.Time) (*domain.Deal, error)

	// CreateExtension inserts the extension deal and billing period and moves
	// the original rental's planned end date forward. No stock is touched.
	CreateExtension(ctx context.Context, extension domain.Deal, period domain.RentalPeriod, newEndDate time.Time, userID string) error
}
