package domain

import (
	"fmt"

	"github.com/renteq/rentalcrm/internal/apperrors"
)

// DealType classifies the commercial transaction a deal represents.
type DealType string

const (
	DealRent           DealType = "rent"
	DealSale           DealType = "sale"
	DealRentToPurchase DealType = "rent_to_purchase"
	DealReservation    DealType = "reservation"
	DealReturn         DealType = "return_deal"
	DealExchange       DealType = "exchange"
)

// DealStatus is the coarse-grained lifecycle status of a deal.
type DealStatus string

const (
	DealLead              DealStatus = "lead"
	DealBooked            DealStatus = "booked"
	DealDeliveryScheduled DealStatus = "delivery_scheduled"
	DealDelivered         DealStatus = "delivered"
	DealActive            DealStatus = "active"
	DealExtended          DealStatus = "extended"
	DealReturnScheduled   DealStatus = "return_scheduled"
	DealClosedReturn      DealStatus = "closed_return"
	DealClosedPurchase    DealStatus = "closed_purchase"
	DealCanceled          DealStatus = "canceled"
)

// IsTerminal reports whether no further transition may leave the status.
func (s DealStatus) IsTerminal() bool {
	switch s {
	case DealCanceled, DealClosedReturn, DealClosedPurchase:
		return true
	}
	return false
}

// IsValid reports whether s is one of the known deal statuses.
func (s DealStatus) IsValid() bool {
	switch s {
	case DealLead, DealBooked, DealDeliveryScheduled, DealDelivered, DealActive,
		DealExtended, DealReturnScheduled, DealClosedReturn, DealClosedPurchase, DealCanceled:
		return true
	}
	return false
}

// DealOrigin distinguishes a fresh deal from an extension of an earlier one.
// The extension link is a first-class case rather than an incidental
// nullable column.
type DealOrigin struct {
	parentDealID string
}

// FreshDeal is the origin of a deal created directly for a client.
func FreshDeal() DealOrigin {
	return DealOrigin{}
}

// ExtensionOf is the origin of a deal created by extending parentDealID.
func ExtensionOf(parentDealID string) DealOrigin {
	return DealOrigin{parentDealID: parentDealID}
}

// Extension returns the parent deal ID and true when the deal is an
// extension, or ("", false) for a fresh deal.
func (o DealOrigin) Extension() (string, bool) {
	return o.parentDealID, o.parentDealID != ""
}

// Deal is the client transaction header. One deal normally owns exactly one
// rental; extending a rental creates a new deal linked to the original via
// its origin. Deals are never deleted: cancellation is a status.
type Deal struct {
	DealID   string     `json:"dealID"`
	ClientID string     `json:"clientID"`
	Type     DealType   `json:"type"`
	Status   DealStatus `json:"status"`
	Origin   DealOrigin `json:"-"`
	Source   string     `json:"source,omitempty"`
	Comment  string     `json:"comment,omitempty"`
	AuditFields
}

// invalidTransition builds the typed failure naming both statuses.
func invalidTransition(from DealStatus, requested string) error {
	return fmt.Errorf("%w: cannot %s a deal in status %q", apperrors.ErrInvalidTransition, requested, from)
}

// CanActivate validates the booked|delivery_scheduled|delivered -> active transition.
func (d *Deal) CanActivate() error {
	switch d.Status {
	case DealBooked, DealDeliveryScheduled, DealDelivered:
		return nil
	}
	return invalidTransition(d.Status, "activate")
}

// CanClose validates the preconditions shared by close-by-return and
// close-by-buyout: active|extended|return_scheduled.
func (d *Deal) CanClose() error {
	switch d.Status {
	case DealActive, DealExtended, DealReturnScheduled:
		return nil
	}
	return invalidTransition(d.Status, "close")
}

// CanExtend validates that the deal may spawn an extension deal. Any open
// status that has reached booking qualifies; terminal deals never do.
func (d *Deal) CanExtend() error {
	switch d.Status {
	case DealBooked, DealDeliveryScheduled, DealDelivered, DealActive, DealExtended, DealReturnScheduled:
		return nil
	}
	return invalidTransition(d.Status, "extend")
}

// CanCancel validates the any-non-terminal -> canceled transition.
func (d *Deal) CanCancel() error {
	if d.Status.IsTerminal() {
		return invalidTransition(d.Status, "cancel")
	}
	return nil
}
