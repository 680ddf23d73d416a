package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/renteq/rentalcrm/internal/apperrors"
	"github.com/renteq/rentalcrm/internal/core/domain"
	portsrepo "github.com/renteq/rentalcrm/internal/core/ports/repositories"
	"github.com/renteq/rentalcrm/internal/models"
)

type PgxAccessoryRepository struct {
	BaseRepository
}

// NewPgxAccessoryRepository creates a new repository for stock-keeping units.
func NewPgxAccessoryRepository(pool *pgxpool.Pool) portsrepo.AccessoryRepository {
	return &PgxAccessoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAccessoryRepository implements portsrepo.AccessoryRepository
var _ portsrepo.AccessoryRepository = (*PgxAccessoryRepository)(nil)

// SaveAccessory inserts a new accessory.
func (r *PgxAccessoryRepository) SaveAccessory(ctx context.Context, accessory domain.Accessory) error {
	query := `
		INSERT INTO accessories (accessory_id, name, category, purchase_price_cents, dealer_price_cents, retail_price_cents, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		accessory.AccessoryID,
		accessory.Name,
		accessory.Category,
		accessory.PurchasePrice,
		accessory.DealerPrice,
		accessory.RetailPrice,
		accessory.IsActive,
		accessory.CreatedAt,
		accessory.CreatedBy,
		accessory.LastUpdatedAt,
		accessory.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to insert accessory "+accessory.AccessoryID)
	}
	return nil
}

// FindAccessoryByID retrieves an accessory by its ID.
func (r *PgxAccessoryRepository) FindAccessoryByID(ctx context.Context, accessoryID string) (*domain.Accessory, error) {
	query := `
		SELECT accessory_id, name, category, purchase_price_cents, dealer_price_cents, retail_price_cents, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM accessories
		WHERE accessory_id = $1;
	`
	var m models.Accessory
	err := r.Pool.QueryRow(ctx, query, accessoryID).Scan(
		&m.AccessoryID,
		&m.Name,
		&m.Category,
		&m.PurchasePriceCents,
		&m.DealerPriceCents,
		&m.RetailPriceCents,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("accessory " + accessoryID + " not found")
		}
		return nil, mapPgError(err, "failed to find accessory "+accessoryID)
	}
	accessory := toDomainAccessory(m)
	return &accessory, nil
}

// ListAccessories returns accessories ordered by name.
func (r *PgxAccessoryRepository) ListAccessories(ctx context.Context, limit, offset int) ([]domain.Accessory, error) {
	query := `
		SELECT accessory_id, name, category, purchase_price_cents, dealer_price_cents, retail_price_cents, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM accessories
		ORDER BY name
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, mapPgError(err, "failed to query accessories")
	}
	defer rows.Close()

	var accessories []domain.Accessory
	for rows.Next() {
		var m models.Accessory
		if err := rows.Scan(
			&m.AccessoryID,
			&m.Name,
			&m.Category,
			&m.PurchasePriceCents,
			&m.DealerPriceCents,
			&m.RetailPriceCents,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, mapPgError(err, "failed to scan accessory row")
		}
		accessories = append(accessories, toDomainAccessory(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "error iterating accessory rows")
	}
	return accessories, nil
}

func toDomainAccessory(m models.Accessory) domain.Accessory {
	return domain.Accessory{
		AccessoryID:   m.AccessoryID,
		Name:          m.Name,
		Category:      m.Category,
		PurchasePrice: m.PurchasePriceCents,
		DealerPrice:   m.DealerPriceCents,
		RetailPrice:   m.RetailPriceCents,
		IsActive:      m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}
