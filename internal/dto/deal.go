package dto

import (
	"time"

	"github.com/renteq/rentalcrm/internal/core/domain"
)

// AccessoryLineRequest is one accessory line of a new rental. Included lines
// are bundled at no charge but still consume stock.
type AccessoryLineRequest struct {
	AccessoryID string `json:"accessoryID" binding:"required,uuid"`
	Qty         int64  `json:"qty" binding:"required,gt=0"`
	PriceCents  int64  `json:"priceCents" binding:"gte=0"`
	IsIncluded  bool   `json:"isIncluded"`
}

// CreateDealRequest creates a deal together with its rental.
type CreateDealRequest struct {
	ClientID      string          `json:"clientID" binding:"required,uuid"`
	AssetID       string          `json:"assetID" binding:"required,uuid"`
	Type          domain.DealType `json:"type" binding:"required,oneof=rent sale rent_to_purchase reservation return_deal exchange"`
	InitialStatus *string         `json:"initialStatus,omitempty" binding:"omitempty,oneof=lead booked delivery_scheduled delivered"`
	Source        string          `json:"source,omitempty"`
	Comment       string          `json:"comment,omitempty"`

	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`

	RentCents     int64 `json:"rentCents" binding:"gte=0"`
	DeliveryCents int64 `json:"deliveryCents" binding:"gte=0"`
	AssemblyCents int64 `json:"assemblyCents" binding:"gte=0"`
	DepositCents  int64 `json:"depositCents" binding:"gte=0"`
	DiscountCents int64 `json:"discountCents" binding:"gte=0"`

	DeliveryAddress string                 `json:"deliveryAddress,omitempty"`
	PickupAddress   string                 `json:"pickupAddress,omitempty"`
	Lines           []AccessoryLineRequest `json:"lines,omitempty" binding:"omitempty,dive"`
}

// ExtendRentalRequest renews a rental for a further period under a new,
// linked deal. The amounts are set by the operator for the renewed term and
// are not re-derived from the original rental.
type ExtendRentalRequest struct {
	RentalID      string    `json:"rentalID" binding:"omitempty,uuid"` // taken from the URL when omitted
	NewEndDate    time.Time `json:"newEndDate" binding:"required"`
	RentCents     int64     `json:"rentCents" binding:"gte=0"`
	DeliveryCents int64     `json:"deliveryCents" binding:"gte=0"`
	DiscountCents int64     `json:"discountCents" binding:"gte=0"`
	Comment       string    `json:"comment,omitempty"`
}

// CloseBuyoutRequest optionally records the buyout price as a sale payment.
type CloseBuyoutRequest struct {
	PurchaseAmountCents *int64 `json:"purchaseAmountCents,omitempty" binding:"omitempty,gt=0"`
}

// DealResponse is the deal shape returned to the caller.
type DealResponse struct {
	DealID       string    `json:"dealID"`
	ClientID     string    `json:"clientID"`
	Type         string    `json:"type"`
	Status       string    `json:"status"`
	ParentDealID *string   `json:"parentDealID,omitempty"`
	Source       string    `json:"source,omitempty"`
	Comment      string    `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	CreatedBy    string    `json:"createdBy"`
}

// AccessoryLineResponse mirrors one persisted accessory line.
type AccessoryLineResponse struct {
	LineID      string `json:"lineID"`
	AccessoryID string `json:"accessoryID"`
	Qty         int64  `json:"qty"`
	PriceCents  int64  `json:"priceCents"`
	IsIncluded  bool   `json:"isIncluded"`
}

// RentalResponse is the rental shape returned to the caller.
type RentalResponse struct {
	RentalID        string                  `json:"rentalID"`
	DealID          string                  `json:"dealID"`
	AssetID         string                  `json:"assetID"`
	StartDate       time.Time               `json:"startDate"`
	EndDate         time.Time               `json:"endDate"`
	Outcome         string                  `json:"outcome"`
	ActualEndDate   *time.Time              `json:"actualEndDate,omitempty"`
	PlannedMonths   int                     `json:"plannedMonths"`
	RentCents       int64                   `json:"rentCents"`
	DeliveryCents   int64                   `json:"deliveryCents"`
	AssemblyCents   int64                   `json:"assemblyCents"`
	DepositCents    int64                   `json:"depositCents"`
	DiscountCents   int64                   `json:"discountCents"`
	TotalCents      int64                   `json:"totalCents"`
	DeliveryAddress string                  `json:"deliveryAddress,omitempty"`
	PickupAddress   string                  `json:"pickupAddress,omitempty"`
	Lines           []AccessoryLineResponse `json:"lines,omitempty"`
}

// ToDealResponse converts a domain.Deal to its response DTO.
func ToDealResponse(d *domain.Deal) DealResponse {
	resp := DealResponse{
		DealID:    d.DealID,
		ClientID:  d.ClientID,
		Type:      string(d.Type),
		Status:    string(d.Status),
		Source:    d.Source,
		Comment:   d.Comment,
		CreatedAt: d.CreatedAt,
		CreatedBy: d.CreatedBy,
	}
	if parentID, ok := d.Origin.Extension(); ok {
		resp.ParentDealID = &parentID
	}
	return resp
}

// ToDealResponses converts a slice of deals.
func ToDealResponses(deals []domain.Deal) []DealResponse {
	responses := make([]DealResponse, len(deals))
	for i := range deals {
		responses[i] = ToDealResponse(&deals[i])
	}
	return responses
}

// ToRentalResponse converts a domain.Rental to its response DTO.
func ToRentalResponse(r *domain.Rental) RentalResponse {
	lines := make([]AccessoryLineResponse, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = AccessoryLineResponse{
			LineID:      l.LineID,
			AccessoryID: l.AccessoryID,
			Qty:         l.Qty,
			PriceCents:  l.PriceCents,
			IsIncluded:  l.IsIncluded,
		}
	}
	return RentalResponse{
		RentalID:        r.RentalID,
		DealID:          r.DealID,
		AssetID:         r.AssetID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		Outcome:         string(r.Outcome.Kind),
		ActualEndDate:   r.ActualEndDate(),
		PlannedMonths:   r.PlannedMonths,
		RentCents:       r.RentCents,
		DeliveryCents:   r.DeliveryCents,
		AssemblyCents:   r.AssemblyCents,
		DepositCents:    r.DepositCents,
		DiscountCents:   r.DiscountCents,
		TotalCents:      r.TotalCents,
		DeliveryAddress: r.DeliveryAddress,
		PickupAddress:   r.PickupAddress,
		Lines:           lines,
	}
}
