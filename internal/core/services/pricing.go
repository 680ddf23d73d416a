package services

import (
	"time"

	"github.com/renteq/rentalcrm/internal/core/domain"
)

// Pricing is pure derivation over integer minor-currency units. Nothing here
// touches storage; the lifecycle service calls these before persisting.

// TotalPlannedCents derives a rental's planned total:
// rent + delivery + assembly + deposit - discount, plus the line totals of
// accessory lines that are not bundled into the rent.
func TotalPlannedCents(r domain.Rental) int64 {
	total := r.RentCents + r.DeliveryCents + r.AssemblyCents + r.DepositCents - r.DiscountCents
	for _, line := range r.Lines {
		if !line.IsIncluded {
			total += line.Qty * line.PriceCents
		}
	}
	return total
}

// ExtensionTotalCents derives the amount owed for a renewed term. The
// components are supplied by the operator for the new period rather than
// re-derived from the original rental, so a renewal can carry its own rate.
func ExtensionTotalCents(rentCents, deliveryCents, discountCents int64) int64 {
	return rentCents + deliveryCents - discountCents
}

// PlannedMonths counts the whole or partial calendar months between start and
// end. A started month is billed as a full one.
func PlannedMonths(start, end time.Time) int {
	if !end.After(start) {
		return 0
	}
	months := 0
	cursor := start
	for {
		next := cursor.AddDate(0, 1, 0)
		if next.After(end) {
			break
		}
		months++
		cursor = next
	}
	if cursor.Before(end) {
		months++
	}
	return months
}
