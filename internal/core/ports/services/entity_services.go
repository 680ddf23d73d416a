package services

import (
	"context"

	"github.com/renteq/rentalcrm/internal/core/domain"
	"github.com/renteq/rentalcrm/internal/dto"
)

// AssetSvcFacade manages rentable units.
type AssetSvcFacade interface {
	CreateAsset(ctx context.Context, req dto.CreateAssetRequest, userID string) (*domain.Asset, error)
	GetAsset(ctx context.Context, assetID string) (*domain.Asset, error)
	ListAssets(ctx context.Context, status *domain.AssetStatus, limit, offset int) ([]domain.Asset, error)
}

// AccessorySvcFacade manages stock-keeping units.
type AccessorySvcFacade interface {
	CreateAccessory(ctx context.Context, req dto.CreateAccessoryRequest, userID string) (*domain.Accessory, error)
	GetAccessory(ctx context.Context, accessoryID string) (*domain.Accessory, error)
	ListAccessories(ctx context.Context, limit, offset int) ([]domain.Accessory, error)
}

// ClientSvcFacade manages clients.
type ClientSvcFacade interface {
	CreateClient(ctx context.Context, req dto.CreateClientRequest, userID string) (*domain.Client, error)
	GetClient(ctx context.Context, clientID string) (*domain.Client, error)
	ListClients(ctx context.Context, limit, offset int) ([]domain.Client, error)
}
