package domain_test

import (
	"testing"

	"github.com/renteq/rentalcrm/internal/apperrors"
	"github.com/renteq/rentalcrm/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allDealStatuses = []domain.DealStatus{
	domain.DealLead,
	domain.DealBooked,
	domain.DealDeliveryScheduled,
	domain.DealDelivered,
	domain.DealActive,
	domain.DealExtended,
	domain.DealReturnScheduled,
	domain.DealClosedReturn,
	domain.DealClosedPurchase,
	domain.DealCanceled,
}

func TestDealStatus_IsTerminal(t *testing.T) {
	terminal := map[domain.DealStatus]bool{
		domain.DealClosedReturn:   true,
		domain.DealClosedPurchase: true,
		domain.DealCanceled:       true,
	}

	for _, status := range allDealStatuses {
		assert.Equal(t, terminal[status], status.IsTerminal(), "status %s", status)
	}
}

func TestDealStatus_IsValid(t *testing.T) {
	for _, status := range allDealStatuses {
		assert.True(t, status.IsValid(), "status %s", status)
	}
	assert.False(t, domain.DealStatus("negotiating").IsValid())
	assert.False(t, domain.DealStatus("").IsValid())
}

func TestDeal_CanActivate(t *testing.T) {
	allowed := map[domain.DealStatus]bool{
		domain.DealBooked:            true,
		domain.DealDeliveryScheduled: true,
		domain.DealDelivered:         true,
	}

	for _, status := range allDealStatuses {
		deal := domain.Deal{Status: status}
		err := deal.CanActivate()
		if allowed[status] {
			assert.NoError(t, err, "status %s", status)
		} else {
			require.Error(t, err, "status %s", status)
			assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
		}
	}
}

func TestDeal_CanClose(t *testing.T) {
	allowed := map[domain.DealStatus]bool{
		domain.DealActive:          true,
		domain.DealExtended:        true,
		domain.DealReturnScheduled: true,
	}

	for _, status := range allDealStatuses {
		deal := domain.Deal{Status: status}
		err := deal.CanClose()
		if allowed[status] {
			assert.NoError(t, err, "status %s", status)
		} else {
			require.Error(t, err, "status %s", status)
			assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
		}
	}
}

func TestDeal_CanExtend(t *testing.T) {
	denied := map[domain.DealStatus]bool{
		domain.DealLead:           true,
		domain.DealClosedReturn:   true,
		domain.DealClosedPurchase: true,
		domain.DealCanceled:       true,
	}

	for _, status := range allDealStatuses {
		deal := domain.Deal{Status: status}
		err := deal.CanExtend()
		if denied[status] {
			require.Error(t, err, "status %s", status)
			assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
		} else {
			assert.NoError(t, err, "status %s", status)
		}
	}
}

func TestDeal_CanCancel(t *testing.T) {
	for _, status := range allDealStatuses {
		deal := domain.Deal{Status: status}
		err := deal.CanCancel()
		if status.IsTerminal() {
			require.Error(t, err, "status %s", status)
			assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
		} else {
			assert.NoError(t, err, "status %s", status)
		}
	}
}

func TestDealOrigin(t *testing.T) {
	fresh := domain.FreshDeal()
	parentID, ok := fresh.Extension()
	assert.False(t, ok)
	assert.Empty(t, parentID)

	ext := domain.ExtensionOf("deal-123")
	parentID, ok = ext.Extension()
	assert.True(t, ok)
	assert.Equal(t, "deal-123", parentID)
}
