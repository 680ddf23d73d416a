package domain

import (
	"fmt"
	"time"

	"github.com/renteq/rentalcrm/internal/apperrors"
)

// MovementType identifies the kind of a single stock change. The set is
// closed: every type must be handled by Effect, so a new type cannot
// silently no-op.
type MovementType string

const (
	MovementIncoming   MovementType = "incoming"
	MovementReserve    MovementType = "reserve"
	MovementIssue      MovementType = "issue"
	MovementReturnItem MovementType = "return_item"
	MovementWriteoff   MovementType = "writeoff"
	MovementRepair     MovementType = "repair"
	MovementLost       MovementType = "lost"
)

// MovementEffect is the signed per-unit effect of a movement on an
// inventory item's counters.
type MovementEffect struct {
	OnHand   int64
	Reserved int64
}

// Effect maps a movement type to its per-unit counter effect.
func (t MovementType) Effect() (MovementEffect, error) {
	switch t {
	case MovementIncoming, MovementReturnItem:
		return MovementEffect{OnHand: 1}, nil
	case MovementIssue, MovementWriteoff, MovementRepair, MovementLost:
		return MovementEffect{OnHand: -1}, nil
	case MovementReserve:
		return MovementEffect{Reserved: 1}, nil
	default:
		return MovementEffect{}, fmt.Errorf("%w: unknown movement type %q", apperrors.ErrValidation, t)
	}
}

// ReservationReleaseEffect reverses a prior reservation without touching the
// on-hand counter. Used when a rental is closed by return or canceled; the
// movement is logged as return_item.
func ReservationReleaseEffect() MovementEffect {
	return MovementEffect{Reserved: -1}
}

// Accessory is a stock-keeping unit sold or bundled alongside assets.
type Accessory struct {
	AccessoryID   string `json:"accessoryID"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	PurchasePrice int64  `json:"purchasePriceCents"`
	DealerPrice   int64  `json:"dealerPriceCents"`
	RetailPrice   int64  `json:"retailPriceCents"`
	IsActive      bool   `json:"isActive"`
	AuditFields
}

// InventoryItem holds the stock counters of one accessory at one storage
// location. Counters are mutated only through the stock ledger's atomic
// adjustments; qtyOnHand >= 0 and qtyReserved <= qtyOnHand always hold.
type InventoryItem struct {
	ItemID      string `json:"itemID"`
	AccessoryID string `json:"accessoryID"`
	Location    string `json:"location"`
	QtyOnHand   int64  `json:"qtyOnHand"`
	QtyReserved int64  `json:"qtyReserved"`
	AuditFields
}

// Available returns the quantity that can still be reserved.
func (it *InventoryItem) Available() int64 {
	return it.QtyOnHand - it.QtyReserved
}

// Apply mutates the item's counters by effect x qty after validating the
// stock invariants. It is the single guard between a locked row read and the
// subsequent write; callers must hold the row lock for the item.
func (it *InventoryItem) Apply(effect MovementEffect, qty int64) error {
	if qty <= 0 {
		return fmt.Errorf("%w: quantity must be positive, got %d", apperrors.ErrValidation, qty)
	}

	newOnHand := it.QtyOnHand + effect.OnHand*qty
	newReserved := it.QtyReserved + effect.Reserved*qty

	if newOnHand < 0 {
		return fmt.Errorf("%w: accessory %s at %s has %d on hand, cannot remove %d",
			apperrors.ErrInsufficientStock, it.AccessoryID, it.Location, it.QtyOnHand, qty)
	}
	if newReserved < 0 {
		return fmt.Errorf("%w: accessory %s at %s has %d reserved, cannot release %d",
			apperrors.ErrInsufficientStock, it.AccessoryID, it.Location, it.QtyReserved, qty)
	}
	if newReserved > newOnHand {
		return fmt.Errorf("%w: accessory %s at %s has %d available, requested %d",
			apperrors.ErrInsufficientStock, it.AccessoryID, it.Location, it.Available(), qty)
	}

	it.QtyOnHand = newOnHand
	it.QtyReserved = newReserved
	return nil
}

// InventoryMovement is the immutable audit record of a single stock change.
// Rows are only ever appended, never updated or deleted.
type InventoryMovement struct {
	MovementID   string       `json:"movementID"`
	AccessoryID  string       `json:"accessoryID"`
	Type         MovementType `json:"type"`
	Qty          int64        `json:"qty"`
	LocationFrom string       `json:"locationFrom,omitempty"`
	LocationTo   string       `json:"locationTo,omitempty"`
	Comment      string       `json:"comment,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	CreatedBy    string       `json:"createdBy"`
}

// StockAdjustment is a validated request to change stock at one location.
type StockAdjustment struct {
	AccessoryID string
	Location    string
	Type        MovementType
	Qty         int64
	Comment     string
}
