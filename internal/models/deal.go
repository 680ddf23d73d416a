package models

import "time"

// Deal is the deals table row. ParentDealID is NULL for fresh deals.
type Deal struct {
	DealID       string
	ClientID     string
	Type         string
	Status       string
	ParentDealID *string
	Source       string
	Comment      string
	AuditFields
}

// Rental is the rentals table row. ActualEndDate is NULL while the rental is
// open; Outcome mirrors the terminal kind ("open" otherwise).
type Rental struct {
	RentalID        string
	DealID          string
	AssetID         string
	StartDate       time.Time
	EndDate         time.Time
	ActualEndDate   *time.Time
	Outcome         string
	PlannedMonths   int
	RentCents       int64
	DeliveryCents   int64
	AssemblyCents   int64
	DepositCents    int64
	DiscountCents   int64
	TotalCents      int64
	DeliveryAddress string
	PickupAddress   string
	AuditFields
}

// RentalAccessoryLine is the rental_accessory_lines table row.
type RentalAccessoryLine struct {
	LineID      string
	RentalID    string
	AccessoryID string
	Qty         int64
	PriceCents  int64
	IsIncluded  bool
}

// RentalPeriod is the rental_periods table row.
type RentalPeriod struct {
	PeriodID      string
	RentalID      string
	DealID        string
	StartDate     time.Time
	EndDate       time.Time
	RentCents     int64
	DeliveryCents int64
	DiscountCents int64
	TotalCents    int64
	CreatedAt     time.Time
}
