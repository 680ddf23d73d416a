package dto

import (
	"time"

	"github.com/renteq/rentalcrm/internal/core/domain"
)

// AdjustStockRequest changes stock at one location by one movement.
type AdjustStockRequest struct {
	AccessoryID string `json:"accessoryID" binding:"required,uuid"`
	Location    string `json:"location" binding:"required"`
	Type        string `json:"type" binding:"required,oneof=incoming reserve issue return_item writeoff repair lost"`
	Qty         int64  `json:"qty" binding:"required,gt=0"`
	Comment     string `json:"comment,omitempty"`
}

// InventoryItemResponse mirrors one per-location stock row.
type InventoryItemResponse struct {
	ItemID      string `json:"itemID"`
	AccessoryID string `json:"accessoryID"`
	Location    string `json:"location"`
	QtyOnHand   int64  `json:"qtyOnHand"`
	QtyReserved int64  `json:"qtyReserved"`
	Available   int64  `json:"available"`
}

// MovementResponse mirrors one immutable stock movement.
type MovementResponse struct {
	MovementID   string    `json:"movementID"`
	AccessoryID  string    `json:"accessoryID"`
	Type         string    `json:"type"`
	Qty          int64     `json:"qty"`
	LocationFrom string    `json:"locationFrom,omitempty"`
	LocationTo   string    `json:"locationTo,omitempty"`
	Comment      string    `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	CreatedBy    string    `json:"createdBy"`
}

// ToInventoryItemResponse converts a domain.InventoryItem.
func ToInventoryItemResponse(it *domain.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ItemID:      it.ItemID,
		AccessoryID: it.AccessoryID,
		Location:    it.Location,
		QtyOnHand:   it.QtyOnHand,
		QtyReserved: it.QtyReserved,
		Available:   it.Available(),
	}
}

// ToInventoryItemResponses converts a slice of items.
func ToInventoryItemResponses(items []domain.InventoryItem) []InventoryItemResponse {
	responses := make([]InventoryItemResponse, len(items))
	for i := range items {
		responses[i] = ToInventoryItemResponse(&items[i])
	}
	return responses
}

// ToMovementResponses converts a slice of movements.
func ToMovementResponses(movements []domain.InventoryMovement) []MovementResponse {
	responses := make([]MovementResponse, len(movements))
	for i, m := range movements {
		responses[i] = MovementResponse{
			MovementID:   m.MovementID,
			AccessoryID:  m.AccessoryID,
			Type:         string(m.Type),
			Qty:          m.Qty,
			LocationFrom: m.LocationFrom,
			LocationTo:   m.LocationTo,
			Comment:      m.Comment,
			CreatedAt:    m.CreatedAt,
			CreatedBy:    m.CreatedBy,
		}
	}
	return responses
}
