package domain

import (
	"fmt"
	"time"

	"github.com/renteq/rentalcrm/internal/apperrors"
)

// OutcomeKind tags how (or whether) a rental has ended.
type OutcomeKind string

const (
	OutcomeOpen           OutcomeKind = "open"
	OutcomeClosedReturn   OutcomeKind = "closed_return"
	OutcomeClosedPurchase OutcomeKind = "closed_purchase"
	OutcomeCanceled       OutcomeKind = "canceled"
)

// RentalOutcome is the single source of truth for a rental's terminal state.
// It replaces the informal pair of a status string and a nullable
// actualEndDate: a terminal kind always carries its timestamp.
type RentalOutcome struct {
	Kind     OutcomeKind `json:"kind"`
	ClosedAt *time.Time  `json:"closedAt,omitempty"`
}

// OpenRental is the outcome of a rental that is still running.
func OpenRental() RentalOutcome {
	return RentalOutcome{Kind: OutcomeOpen}
}

// ClosedOutcome builds a terminal outcome carrying its timestamp.
func ClosedOutcome(kind OutcomeKind, at time.Time) (RentalOutcome, error) {
	switch kind {
	case OutcomeClosedReturn, OutcomeClosedPurchase, OutcomeCanceled:
		return RentalOutcome{Kind: kind, ClosedAt: &at}, nil
	default:
		return RentalOutcome{}, fmt.Errorf("%w: %q is not a terminal rental outcome", apperrors.ErrValidation, kind)
	}
}

// IsOpen reports whether the rental has not yet reached a terminal outcome.
func (o RentalOutcome) IsOpen() bool {
	return o.Kind == OutcomeOpen
}

// Close transitions an open outcome to a terminal one. A terminal outcome is
// never unset and its timestamp is never moved.
func (o RentalOutcome) Close(kind OutcomeKind, at time.Time) (RentalOutcome, error) {
	if !o.IsOpen() {
		return o, fmt.Errorf("%w: rental already closed as %q at %s",
			apperrors.ErrInvalidTransition, o.Kind, o.ClosedAt.Format(time.RFC3339))
	}
	return ClosedOutcome(kind, at)
}

// RentalAccessoryLine commits accessory units to one rental. Non-included
// lines are billed at qty x price; included lines are bundled at no charge
// but still consume stock.
type RentalAccessoryLine struct {
	LineID      string `json:"lineID"`
	RentalID    string `json:"rentalID"`
	AccessoryID string `json:"accessoryID"`
	Qty         int64  `json:"qty"`
	PriceCents  int64  `json:"priceCents"`
	IsIncluded  bool   `json:"isIncluded"`
}

// RentalPeriod is one billing period of a rental. The first period is created
// with the rental; each extension appends another, linked to the extension deal.
type RentalPeriod struct {
	PeriodID      string    `json:"periodID"`
	RentalID      string    `json:"rentalID"`
	DealID        string    `json:"dealID"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	RentCents     int64     `json:"rentCents"`
	DeliveryCents int64     `json:"deliveryCents"`
	DiscountCents int64     `json:"discountCents"`
	TotalCents    int64     `json:"totalCents"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Rental is the leasing/sale record for one asset within one deal.
type Rental struct {
	RentalID        string                `json:"rentalID"`
	DealID          string                `json:"dealID"`
	AssetID         string                `json:"assetID"`
	StartDate       time.Time             `json:"startDate"`
	EndDate         time.Time             `json:"endDate"` // planned
	Outcome         RentalOutcome         `json:"outcome"`
	PlannedMonths   int                   `json:"plannedMonths"`
	RentCents       int64                 `json:"rentCents"`
	DeliveryCents   int64                 `json:"deliveryCents"`
	AssemblyCents   int64                 `json:"assemblyCents"`
	DepositCents    int64                 `json:"depositCents"`
	DiscountCents   int64                 `json:"discountCents"`
	TotalCents      int64                 `json:"totalCents"` // derived, see pricing
	DeliveryAddress string                `json:"deliveryAddress,omitempty"`
	PickupAddress   string                `json:"pickupAddress,omitempty"`
	Lines           []RentalAccessoryLine `json:"lines,omitempty"`
	AuditFields
}

// ActualEndDate exposes the terminal timestamp in the shape the persisted
// model and external collaborators expect, or nil while the rental is open.
func (r *Rental) ActualEndDate() *time.Time {
	return r.Outcome.ClosedAt
}

// Validate checks the temporal invariant on creation and extension.
func (r *Rental) Validate() error {
	if !r.EndDate.After(r.StartDate) {
		return fmt.Errorf("%w: rental end date %s must be after start date %s",
			apperrors.ErrValidation, r.EndDate.Format("2006-01-02"), r.StartDate.Format("2006-01-02"))
	}
	return nil
}
