package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/renteq/rentalcrm/internal/core/domain"
	portsrepo "github.com/renteq/rentalcrm/internal/core/ports/repositories"
	portssvc "github.com/renteq/rentalcrm/internal/core/ports/services"
	"github.com/renteq/rentalcrm/internal/dto"
	"github.com/renteq/rentalcrm/internal/middleware"
)

// assetService manages rentable units.
type assetService struct {
	assetRepo portsrepo.AssetRepository
}

// NewAssetService creates the asset service.
func NewAssetService(assetRepo portsrepo.AssetRepository) portssvc.AssetSvcFacade {
	return &assetService{assetRepo: assetRepo}
}

var _ portssvc.AssetSvcFacade = (*assetService)(nil)

func (s *assetService) CreateAsset(ctx context.Context, req dto.CreateAssetRequest, userID string) (*domain.Asset, error) {
	now := time.Now().UTC()
	asset := domain.Asset{
		AssetID:            uuid.NewString(),
		Code:               req.Code,
		Status:             domain.AssetAvailable,
		PurchasePriceCents: req.PurchasePriceCents,
		DealerPriceCents:   req.DealerPriceCents,
		RetailPriceCents:   req.RetailPriceCents,
		IsActive:           true,
		AuditFields:        domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID},
	}
	if err := s.assetRepo.SaveAsset(ctx, asset); err != nil {
		return nil, err
	}
	middleware.GetLoggerFromCtx(ctx).Info("Asset created", slog.String("asset_id", asset.AssetID), slog.String("code", asset.Code))
	return &asset, nil
}

func (s *assetService) GetAsset(ctx context.Context, assetID string) (*domain.Asset, error) {
	return s.assetRepo.FindAssetByID(ctx, assetID)
}

func (s *assetService) ListAssets(ctx context.Context, status *domain.AssetStatus, limit, offset int) ([]domain.Asset, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.assetRepo.ListAssets(ctx, status, limit, offset)
}

// accessoryService manages stock-keeping units.
type accessoryService struct {
	accessoryRepo portsrepo.AccessoryRepository
}

// NewAccessoryService creates the accessory service.
func NewAccessoryService(accessoryRepo portsrepo.AccessoryRepository) portssvc.AccessorySvcFacade {
	return &accessoryService{accessoryRepo: accessoryRepo}
}

var _ portssvc.AccessorySvcFacade = (*accessoryService)(nil)

func (s *accessoryService) CreateAccessory(ctx context.Context, req dto.CreateAccessoryRequest, userID string) (*domain.Accessory, error) {
	now := time.Now().UTC()
	accessory := domain.Accessory{
		AccessoryID:   uuid.NewString(),
		Name:          req.Name,
		Category:      req.Category,
		PurchasePrice: req.PurchasePriceCents,
		DealerPrice:   req.DealerPriceCents,
		RetailPrice:   req.RetailPriceCents,
		IsActive:      true,
		AuditFields:   domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID},
	}
	if err := s.accessoryRepo.SaveAccessory(ctx, accessory); err != nil {
		return nil, err
	}
	middleware.GetLoggerFromCtx(ctx).Info("Accessory created", slog.String("accessory_id", accessory.AccessoryID), slog.String("name", accessory.Name))
	return &accessory, nil
}

func (s *accessoryService) GetAccessory(ctx context.Context, accessoryID string) (*domain.Accessory, error) {
	return s.accessoryRepo.FindAccessoryByID(ctx, accessoryID)
}

func (s *accessoryService) ListAccessories(ctx context.Context, limit, offset int) ([]domain.Accessory, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.accessoryRepo.ListAccessories(ctx, limit, offset)
}

// clientService manages clients.
type clientService struct {
	clientRepo portsrepo.ClientRepository
}

// NewClientService creates the client service.
func NewClientService(clientRepo portsrepo.ClientRepository) portssvc.ClientSvcFacade {
	return &clientService{clientRepo: clientRepo}
}

var _ portssvc.ClientSvcFacade = (*clientService)(nil)

func (s *clientService) CreateClient(ctx context.Context, req dto.CreateClientRequest, userID string) (*domain.Client, error) {
	now := time.Now().UTC()
	client := domain.Client{
		ClientID:    uuid.NewString(),
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		Comment:     req.Comment,
		IsActive:    true,
		AuditFields: domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID},
	}
	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		return nil, err
	}
	middleware.GetLoggerFromCtx(ctx).Info("Client created", slog.String("client_id", client.ClientID))
	return &client, nil
}

func (s *clientService) GetClient(ctx context.Context, clientID string) (*domain.Client, error) {
	return s.clientRepo.FindClientByID(ctx, clientID)
}

func (s *clientService) ListClients(ctx context.Context, limit, offset int) ([]domain.Client, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.clientRepo.ListClients(ctx, limit, offset)
}
