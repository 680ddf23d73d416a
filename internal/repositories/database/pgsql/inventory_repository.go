package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/renteq/rentalcrm/internal/apperrors"
	"github.com/renteq/rentalcrm/internal/core/domain"
	portsrepo "github.com/renteq/rentalcrm/internal/core/ports/repositories"
	"github.com/renteq/rentalcrm/internal/models"
)

type PgxInventoryRepository struct {
	BaseRepository
}

// NewPgxInventoryRepository creates a new repository for stock counters and movements.
func NewPgxInventoryRepository(pool *pgxpool.Pool) *PgxInventoryRepository {
	return &PgxInventoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxInventoryRepository implements portsrepo.InventoryRepository
var _ portsrepo.InventoryRepository = (*PgxInventoryRepository)(nil)

// Adjust applies one stock adjustment in its own transaction.
func (r *PgxInventoryRepository) Adjust(ctx context.Context, adj domain.StockAdjustment, effect domain.MovementEffect, userID string) (*domain.InventoryItem, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	item, err := r.AdjustInTx(ctx, tx, adj, effect, userID)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return item, nil
}

// AdjustInTx applies one stock adjustment inside a caller-owned transaction.
// It locks the (accessory, location) row, validates and applies the counter
// effect, and appends the movement record. A missing row is created on the
// fly for inflow effects and is a not-found error for outflow effects.
func (r *PgxInventoryRepository) AdjustInTx(ctx context.Context, tx pgx.Tx, adj domain.StockAdjustment, effect domain.MovementEffect, userID string) (*domain.InventoryItem, error) {
	now := time.Now()

	item, err := findItemForUpdate(ctx, tx, adj.AccessoryID, adj.Location)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		if effect.OnHand < 0 || effect.Reserved < 0 {
			return nil, apperrors.NewNotFoundError("no stock record for accessory " + adj.AccessoryID + " at location " + adj.Location)
		}
		item = &domain.InventoryItem{
			ItemID:      uuid.NewString(),
			AccessoryID: adj.AccessoryID,
			Location:    adj.Location,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		insertQuery := `
			INSERT INTO inventory_items (item_id, accessory_id, location, qty_on_hand, qty_reserved, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, 0, 0, $4, $5, $4, $5);
		`
		if _, err := tx.Exec(ctx, insertQuery, item.ItemID, item.AccessoryID, item.Location, now, userID); err != nil {
			return nil, mapPgError(err, "failed to insert inventory item for accessory "+adj.AccessoryID)
		}
	}

	if err := item.Apply(effect, adj.Qty); err != nil {
		return nil, err
	}

	updateQuery := `
		UPDATE inventory_items
		SET qty_on_hand = $1, qty_reserved = $2, last_updated_at = $3, last_updated_by = $4
		WHERE item_id = $5;
	`
	if _, err := tx.Exec(ctx, updateQuery, item.QtyOnHand, item.QtyReserved, now, userID, item.ItemID); err != nil {
		return nil, mapPgError(err, "failed to update inventory item "+item.ItemID)
	}

	movement := models.InventoryMovement{
		MovementID:  uuid.NewString(),
		AccessoryID: adj.AccessoryID,
		Type:        string(adj.Type),
		Qty:         adj.Qty,
		Comment:     adj.Comment,
		CreatedAt:   now,
		CreatedBy:   userID,
	}
	if effect.OnHand < 0 || effect.Reserved < 0 {
		movement.LocationFrom = &adj.Location
	} else {
		movement.LocationTo = &adj.Location
	}

	movementQuery := `
		INSERT INTO inventory_movements (movement_id, accessory_id, type, qty, location_from, location_to, comment, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, movementQuery,
		movement.MovementID,
		movement.AccessoryID,
		movement.Type,
		movement.Qty,
		movement.LocationFrom,
		movement.LocationTo,
		movement.Comment,
		movement.CreatedAt,
		movement.CreatedBy,
	)
	if err != nil {
		return nil, mapPgError(err, "failed to insert movement for accessory "+adj.AccessoryID)
	}

	item.LastUpdatedAt = now
	item.LastUpdatedBy = userID
	return item, nil
}

// findItemForUpdate locks and returns the counter row for one (accessory,
// location) key. The lock serializes concurrent adjustments on the same key.
func findItemForUpdate(ctx context.Context, tx pgx.Tx, accessoryID, location string) (*domain.InventoryItem, error) {
	query := `
		SELECT item_id, accessory_id, location, qty_on_hand, qty_reserved, created_at, created_by, last_updated_at, last_updated_by
		FROM inventory_items
		WHERE accessory_id = $1 AND location = $2
		FOR UPDATE;
	`
	var m models.InventoryItem
	err := tx.QueryRow(ctx, query, accessoryID, location).Scan(
		&m.ItemID,
		&m.AccessoryID,
		&m.Location,
		&m.QtyOnHand,
		&m.QtyReserved,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, mapPgError(err, "failed to lock inventory item for accessory "+accessoryID)
	}
	item := toDomainInventoryItem(m)
	return &item, nil
}

// FindItem returns the counter row for one (accessory, location) key.
func (r *PgxInventoryRepository) FindItem(ctx context.Context, accessoryID, location string) (*domain.InventoryItem, error) {
	query := `
		SELECT item_id, accessory_id, location, qty_on_hand, qty_reserved, created_at, created_by, last_updated_at, last_updated_by
		FROM inventory_items
		WHERE accessory_id = $1 AND location = $2;
	`
	var m models.InventoryItem
	err := r.Pool.QueryRow(ctx, query, accessoryID, location).Scan(
		&m.ItemID,
		&m.AccessoryID,
		&m.Location,
		&m.QtyOnHand,
		&m.QtyReserved,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no stock record for accessory " + accessoryID + " at location " + location)
		}
		return nil, mapPgError(err, "failed to find inventory item for accessory "+accessoryID)
	}
	item := toDomainInventoryItem(m)
	return &item, nil
}

// FindItemsByAccessory returns the counter rows of one accessory across all locations.
func (r *PgxInventoryRepository) FindItemsByAccessory(ctx context.Context, accessoryID string) ([]domain.InventoryItem, error) {
	query := `
		SELECT item_id, accessory_id, location, qty_on_hand, qty_reserved, created_at, created_by, last_updated_at, last_updated_by
		FROM inventory_items
		WHERE accessory_id = $1
		ORDER BY location;
	`
	rows, err := r.Pool.Query(ctx, query, accessoryID)
	if err != nil {
		return nil, mapPgError(err, "failed to query inventory items for accessory "+accessoryID)
	}
	defer rows.Close()

	var items []domain.InventoryItem
	for rows.Next() {
		var m models.InventoryItem
		if err := rows.Scan(
			&m.ItemID,
			&m.AccessoryID,
			&m.Location,
			&m.QtyOnHand,
			&m.QtyReserved,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, mapPgError(err, "failed to scan inventory item row")
		}
		items = append(items, toDomainInventoryItem(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "error iterating inventory item rows")
	}
	return items, nil
}

// ListMovements returns the movement log of one accessory, newest first.
func (r *PgxInventoryRepository) ListMovements(ctx context.Context, accessoryID string, limit, offset int) ([]domain.InventoryMovement, error) {
	query := `
		SELECT movement_id, accessory_id, type, qty, location_from, location_to, comment, created_at, created_by
		FROM inventory_movements
		WHERE accessory_id = $1
		ORDER BY created_at DESC, movement_id DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, accessoryID, limit, offset)
	if err != nil {
		return nil, mapPgError(err, "failed to query movements for accessory "+accessoryID)
	}
	defer rows.Close()

	var movements []domain.InventoryMovement
	for rows.Next() {
		var m models.InventoryMovement
		if err := rows.Scan(
			&m.MovementID,
			&m.AccessoryID,
			&m.Type,
			&m.Qty,
			&m.LocationFrom,
			&m.LocationTo,
			&m.Comment,
			&m.CreatedAt,
			&m.CreatedBy,
		); err != nil {
			return nil, mapPgError(err, "failed to scan movement row")
		}
		movements = append(movements, toDomainInventoryMovement(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "error iterating movement rows")
	}
	return movements, nil
}

func toDomainInventoryItem(m models.InventoryItem) domain.InventoryItem {
	return domain.InventoryItem{
		ItemID:      m.ItemID,
		AccessoryID: m.AccessoryID,
		Location:    m.Location,
		QtyOnHand:   m.QtyOnHand,
		QtyReserved: m.QtyReserved,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func toDomainInventoryMovement(m models.InventoryMovement) domain.InventoryMovement {
	movement := domain.InventoryMovement{
		MovementID:  m.MovementID,
		AccessoryID: m.AccessoryID,
		Type:        domain.MovementType(m.Type),
		Qty:         m.Qty,
		Comment:     m.Comment,
		CreatedAt:   m.CreatedAt,
		CreatedBy:   m.CreatedBy,
	}
	if m.LocationFrom != nil {
		movement.LocationFrom = *m.LocationFrom
	}
	if m.LocationTo != nil {
		movement.LocationTo = *m.LocationTo
	}
	return movement
}
