package dto

import (
	"time"

	"github.com/renteq/rentalcrm/internal/core/domain"
)

// CreateAssetRequest registers a new rentable unit.
type CreateAssetRequest struct {
	Code               string `json:"code" binding:"required"`
	PurchasePriceCents int64  `json:"purchasePriceCents" binding:"gte=0"`
	DealerPriceCents   int64  `json:"dealerPriceCents" binding:"gte=0"`
	RetailPriceCents   int64  `json:"retailPriceCents" binding:"gte=0"`
}

// AssetResponse mirrors one asset.
type AssetResponse struct {
	AssetID            string    `json:"assetID"`
	Code               string    `json:"code"`
	Status             string    `json:"status"`
	PurchasePriceCents int64     `json:"purchasePriceCents"`
	DealerPriceCents   int64     `json:"dealerPriceCents"`
	RetailPriceCents   int64     `json:"retailPriceCents"`
	IsActive           bool      `json:"isActive"`
	CreatedAt          time.Time `json:"createdAt"`
}

// CreateAccessoryRequest registers a new stock-keeping unit.
type CreateAccessoryRequest struct {
	Name               string `json:"name" binding:"required"`
	Category           string `json:"category" binding:"required"`
	PurchasePriceCents int64  `json:"purchasePriceCents" binding:"gte=0"`
	DealerPriceCents   int64  `json:"dealerPriceCents" binding:"gte=0"`
	RetailPriceCents   int64  `json:"retailPriceCents" binding:"gte=0"`
}

// AccessoryResponse mirrors one accessory.
type AccessoryResponse struct {
	AccessoryID        string    `json:"accessoryID"`
	Name               string    `json:"name"`
	Category           string    `json:"category"`
	PurchasePriceCents int64     `json:"purchasePriceCents"`
	DealerPriceCents   int64     `json:"dealerPriceCents"`
	RetailPriceCents   int64     `json:"retailPriceCents"`
	IsActive           bool      `json:"isActive"`
	CreatedAt          time.Time `json:"createdAt"`
}

// CreateClientRequest registers a new client.
type CreateClientRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty" binding:"omitempty,email"`
	Comment string `json:"comment,omitempty"`
}

// ClientResponse mirrors one client.
type ClientResponse struct {
	ClientID  string    `json:"clientID"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Comment   string    `json:"comment,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToAssetResponse converts a domain.Asset.
func ToAssetResponse(a *domain.Asset) AssetResponse {
	return AssetResponse{
		AssetID:            a.AssetID,
		Code:               a.Code,
		Status:             string(a.Status),
		PurchasePriceCents: a.PurchasePriceCents,
		DealerPriceCents:   a.DealerPriceCents,
		RetailPriceCents:   a.RetailPriceCents,
		IsActive:           a.IsActive,
		CreatedAt:          a.CreatedAt,
	}
}

// ToAccessoryResponse converts a domain.Accessory.
func ToAccessoryResponse(a *domain.Accessory) AccessoryResponse {
	return AccessoryResponse{
		AccessoryID:        a.AccessoryID,
		Name:               a.Name,
		Category:           a.Category,
		PurchasePriceCents: a.PurchasePrice,
		DealerPriceCents:   a.DealerPrice,
		RetailPriceCents:   a.RetailPrice,
		IsActive:           a.IsActive,
		CreatedAt:          a.CreatedAt,
	}
}

// ToClientResponse converts a domain.Client.
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:  c.ClientID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Comment:   c.Comment,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
	}
}
