package services_test

import (
	"testing"
	"time"

	"github.com/renteq/rentalcrm/internal/core/domain"
	"github.com/renteq/rentalcrm/internal/core/services"
	"github.com/stretchr/testify/assert"
)

func TestTotalPlannedCents(t *testing.T) {
	tests := []struct {
		name   string
		rental domain.Rental
		want   int64
	}{
		{
			name: "rent with delivery, discount and a billed accessory line",
			rental: domain.Rental{
				RentCents:     10000,
				DeliveryCents: 2000,
				DiscountCents: 1000,
				Lines: []domain.RentalAccessoryLine{
					{Qty: 2, PriceCents: 500, IsIncluded: false},
				},
			},
			want: 12000,
		},
		{
			name: "included lines consume stock but cost nothing",
			rental: domain.Rental{
				RentCents: 10000,
				Lines: []domain.RentalAccessoryLine{
					{Qty: 3, PriceCents: 700, IsIncluded: true},
					{Qty: 1, PriceCents: 700, IsIncluded: false},
				},
			},
			want: 10700,
		},
		{
			name: "assembly and deposit count toward the total",
			rental: domain.Rental{
				RentCents:     8000,
				AssemblyCents: 1500,
				DepositCents:  5000,
			},
			want: 14500,
		},
		{
			name:   "empty rental totals zero",
			rental: domain.Rental{},
			want:   0,
		},
		{
			name: "discount can exceed the fee components",
			rental: domain.Rental{
				RentCents:     1000,
				DiscountCents: 1500,
			},
			want: -500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, services.TotalPlannedCents(tt.rental))
		})
	}
}

func TestExtensionTotalCents(t *testing.T) {
	assert.Equal(t, int64(11000), services.ExtensionTotalCents(10000, 2000, 1000))
	assert.Equal(t, int64(0), services.ExtensionTotalCents(0, 0, 0))
	assert.Equal(t, int64(9500), services.ExtensionTotalCents(10000, 0, 500))
}

func TestPlannedMonths(t *testing.T) {
	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"exactly one month", date(2025, 3, 1), date(2025, 4, 1), 1},
		{"one month and a day bills two", date(2025, 3, 1), date(2025, 4, 2), 2},
		{"two weeks bills one", date(2025, 3, 1), date(2025, 3, 15), 1},
		{"exactly three months", date(2025, 1, 15), date(2025, 4, 15), 3},
		{"end before start", date(2025, 5, 1), date(2025, 4, 1), 0},
		{"zero-length term", date(2025, 5, 1), date(2025, 5, 1), 0},
		{"across a year boundary", date(2024, 11, 20), date(2025, 2, 20), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, services.PlannedMonths(tt.start, tt.end))
		})
	}
}
