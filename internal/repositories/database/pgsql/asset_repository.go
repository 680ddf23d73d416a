package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/renteq/rentalcrm/internal/apperrors"
	"github.com/renteq/rentalcrm/internal/core/domain"
	portsrepo "github.com/renteq/rentalcrm/internal/core/ports/repositories"
	"github.com/renteq/rentalcrm/internal/models"
)

type PgxAssetRepository struct {
	BaseRepository
}

// NewPgxAssetRepository creates a new repository for rentable units.
func NewPgxAssetRepository(pool *pgxpool.Pool) portsrepo.AssetRepository {
	return &PgxAssetRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAssetRepository implements portsrepo.AssetRepository
var _ portsrepo.AssetRepository = (*PgxAssetRepository)(nil)

// SaveAsset inserts a new asset. The unit code is unique.
func (r *PgxAssetRepository) SaveAsset(ctx context.Context, asset domain.Asset) error {
	query := `
		INSERT INTO assets (asset_id, code, status, purchase_price_cents, dealer_price_cents, retail_price_cents, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		asset.AssetID,
		asset.Code,
		string(asset.Status),
		asset.PurchasePriceCents,
		asset.DealerPriceCents,
		asset.RetailPriceCents,
		asset.IsActive,
		asset.CreatedAt,
		asset.CreatedBy,
		asset.LastUpdatedAt,
		asset.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to insert asset "+asset.AssetID)
	}
	return nil
}

// FindAssetByID retrieves an asset by its ID.
func (r *PgxAssetRepository) FindAssetByID(ctx context.Context, assetID string) (*domain.Asset, error) {
	query := `
		SELECT asset_id, code, status, purchase_price_cents, dealer_price_cents, retail_price_cents, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM assets
		WHERE asset_id = $1;
	`
	var m models.Asset
	err := r.Pool.QueryRow(ctx, query, assetID).Scan(
		&m.AssetID,
		&m.Code,
		&m.Status,
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
			return nil, apperrors.NewNotFoundError("asset " + assetID + " not found")
		}
		return nil, mapPgError(err, "failed to find asset "+assetID)
	}
	asset := toDomainAsset(m)
	return &asset, nil
}

// ListAssets returns assets, optionally filtered by status.
func (r *PgxAssetRepository) ListAssets(ctx context.Context, status *domain.AssetStatus, limit, offset int) ([]domain.Asset, error) {
	query := `
		SELECT asset_id, code, status, purchase_price_cents, dealer_price_cents, retail_price_cents, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM assets
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY code
		LIMIT $2 OFFSET $3;
	`
	var statusArg *string
	if status != nil {
		s := string(*status)
		statusArg = &s
	}

	rows, err := r.Pool.Query(ctx, query, statusArg, limit, offset)
	if err != nil {
		return nil, mapPgError(err, "failed to query assets")
	}
	defer rows.Close()

	var assets []domain.Asset
	for rows.Next() {
		var m models.Asset
		if err := rows.Scan(
			&m.AssetID,
			&m.Code,
			&m.Status,
			&m.PurchasePriceCents,
			&m.DealerPriceCents,
			&m.RetailPriceCents,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, mapPgError(err, "failed to scan asset row")
		}
		assets = append(assets, toDomainAsset(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "error iterating asset rows")
	}
	return assets, nil
}

// UpdateAssetStatus sets the status of one asset.
func (r *PgxAssetRepository) UpdateAssetStatus(ctx context.Context, assetID string, status domain.AssetStatus, userID string) error {
	query := `
		UPDATE assets
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE asset_id = $4;
	`
	tag, err := r.Pool.Exec(ctx, query, string(status), time.Now(), userID, assetID)
	if err != nil {
		return mapPgError(err, "failed to update status of asset "+assetID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("asset " + assetID + " not found")
	}
	return nil
}

func toDomainAsset(m models.Asset) domain.Asset {
	return domain.Asset{
		AssetID:            m.AssetID,
		Code:               m.Code,
		Status:             domain.AssetStatus(m.Status),
		PurchasePriceCents: m.PurchasePriceCents,
		DealerPriceCents:   m.DealerPriceCents,
		RetailPriceCents:   m.RetailPriceCents,
		IsActive:           m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}
