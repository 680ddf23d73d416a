package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/renteq/rentalcrm/internal/core/domain"
)

// InventoryRepository is the stock ledger's persistence port. Adjust performs
// the read-validate-increment sequence atomically for one (accessory,
// location) key and appends exactly one movement row; concurrent writers on
// the same key are serialized by a row lock.
type InventoryRepository interface {
	// Adjust runs the adjustment in its own transaction.
	Adjust(ctx context.Context, adj domain.StockAdjustment, effect domain.MovementEffect, userID string) (*domain.InventoryItem, error)
	// AdjustInTx runs the adjustment inside a caller-owned transaction so the
	// deal lifecycle can reserve and release stock atomically with its own writes.
	AdjustInTx(ctx context.Context, tx pgx.Tx, adj domain.StockAdjustment, effect domain.MovementEffect, userID string) (*domain.InventoryItem, error)
	FindItemsByAccessory(ctx context.Context, accessoryID string) ([]domain.InventoryItem, error)
	FindItem(ctx context.Context, accessoryID, location string) (*domain.InventoryItem, error)
	ListMovements(ctx context.Context, accessoryID string, limit, offset int) ([]domain.InventoryMovement, error)
}
