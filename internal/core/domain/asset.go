package domain

// AssetStatus is the lifecycle status of a rentable physical unit.
type AssetStatus string

const (
	AssetAvailable   AssetStatus = "available"
	AssetReserved    AssetStatus = "reserved"
	AssetRented      AssetStatus = "rented"
	AssetMaintenance AssetStatus = "maintenance"
	AssetSold        AssetStatus = "sold"
	AssetArchived    AssetStatus = "archived"
)

// Asset is a rentable physical unit (a station). It has many rentals over
// time but at most one open rental at any moment.
type Asset struct {
	AssetID            string      `json:"assetID"`
	Code               string      `json:"code"` // identity code printed on the unit
	Status             AssetStatus `json:"status"`
	PurchasePriceCents int64       `json:"purchasePriceCents"`
	DealerPriceCents   int64       `json:"dealerPriceCents"`
	RetailPriceCents   int64       `json:"retailPriceCents"`
	IsActive           bool        `json:"isActive"`
	AuditFields
}
