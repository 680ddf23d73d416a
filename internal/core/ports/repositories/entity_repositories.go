package repositories

import (
	"context"

	"github.com/renteq/rentalcrm/internal/core/domain"
)

// AssetRepository persists rentable units.
type AssetRepository interface {
	SaveAsset(ctx context.Context, asset domain.Asset) error
	FindAssetByID(ctx context.Context, assetID string) (*domain.Asset, error)
	ListAssets(ctx context.Context, status *domain.AssetStatus, limit, offset int) ([]domain.Asset, error)
	UpdateAssetStatus(ctx context.Context, assetID string, status domain.AssetStatus, userID string) error
}

// AccessoryRepository persists stock-keeping units.
type AccessoryRepository interface {
	SaveAccessory(ctx context.Context, accessory domain.Accessory) error
	FindAccessoryByID(ctx context.Context, accessoryID string) (*domain.Accessory, error)
	ListAccessories(ctx context.Context, limit, offset int) ([]domain.Accessory, error)
}

// ClientRepository persists clients.
type ClientRepository interface {
	SaveClient(ctx context.Context, client domain.Client) error
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)
	ListClients(ctx context.Context, limit, offset int) ([]domain.Client, error)
}
