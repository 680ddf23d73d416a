package models

// Asset is the assets table row.
type Asset struct {
	AssetID            string
	Code               string
	Status             string
	PurchasePriceCents int64
	DealerPriceCents   int64
	RetailPriceCents   int64
	IsActive           bool
	AuditFields
}

// Accessory is the accessories table row.
type Accessory struct {
	AccessoryID        string
	Name               string
	Category           string
	PurchasePriceCents int64
	DealerPriceCents   int64
	RetailPriceCents   int64
	IsActive           bool
	AuditFields
}

// Client is the clients table row.
type Client struct {
	ClientID string
	Name     string
	Phone    string
	Email    string
	Comment  string
	IsActive bool
	AuditFields
}
