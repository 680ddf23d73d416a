package models

import "time"

// InventoryItem is the inventory_items table row; (accessory_id, location) is unique.
type InventoryItem struct {
	ItemID      string
	AccessoryID string
	Location    string
	QtyOnHand   int64
	QtyReserved int64
	AuditFields
}

// InventoryMovement is the append-only inventory_movements table row.
type InventoryMovement struct {
	MovementID   string
	AccessoryID  string
	Type         string
	Qty          int64
	LocationFrom *string
	LocationTo   *string
	Comment      string
	CreatedAt    time.Time
	CreatedBy    string
}
