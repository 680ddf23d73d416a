package domain_test

import (
	"testing"

	"github.com/renteq/rentalcrm/internal/apperrors"
	"github.com/renteq/rentalcrm/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovementType_Effect(t *testing.T) {
	tests := []struct {
		movementType domain.MovementType
		want         domain.MovementEffect
	}{
		{domain.MovementIncoming, domain.MovementEffect{OnHand: 1}},
		{domain.MovementReturnItem, domain.MovementEffect{OnHand: 1}},
		{domain.MovementIssue, domain.MovementEffect{OnHand: -1}},
		{domain.MovementWriteoff, domain.MovementEffect{OnHand: -1}},
		{domain.MovementRepair, domain.MovementEffect{OnHand: -1}},
		{domain.MovementLost, domain.MovementEffect{OnHand: -1}},
		{domain.MovementReserve, domain.MovementEffect{Reserved: 1}},
	}

	for _, tt := range tests {
		t.Run(string(tt.movementType), func(t *testing.T) {
			got, err := tt.movementType.Effect()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMovementType_Effect_Unknown(t *testing.T) {
	_, err := domain.MovementType("teleport").Effect()
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestInventoryItem_Apply(t *testing.T) {
	reserve, err := domain.MovementReserve.Effect()
	require.NoError(t, err)
	issue, err := domain.MovementIssue.Effect()
	require.NoError(t, err)
	incoming, err := domain.MovementIncoming.Effect()
	require.NoError(t, err)

	t.Run("reserve within availability", func(t *testing.T) {
		item := domain.InventoryItem{QtyOnHand: 5, QtyReserved: 0}

		require.NoError(t, item.Apply(reserve, 3))
		assert.Equal(t, int64(5), item.QtyOnHand)
		assert.Equal(t, int64(3), item.QtyReserved)
		assert.Equal(t, int64(2), item.Available())
	})

	t.Run("reserve beyond availability fails and leaves counters unchanged", func(t *testing.T) {
		item := domain.InventoryItem{QtyOnHand: 5, QtyReserved: 3}

		err := item.Apply(reserve, 3)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)
		assert.Equal(t, int64(5), item.QtyOnHand)
		assert.Equal(t, int64(3), item.QtyReserved)
	})

	t.Run("on-hand never goes negative", func(t *testing.T) {
		item := domain.InventoryItem{QtyOnHand: 2}

		err := item.Apply(issue, 3)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)
		assert.Equal(t, int64(2), item.QtyOnHand)
	})

	t.Run("issuing below the reserved level fails", func(t *testing.T) {
		// 4 on hand with 3 reserved: removing 2 would leave reserved > on hand.
		item := domain.InventoryItem{QtyOnHand: 4, QtyReserved: 3}

		err := item.Apply(issue, 2)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)
	})

	t.Run("release reverses a reservation without touching on hand", func(t *testing.T) {
		item := domain.InventoryItem{QtyOnHand: 5, QtyReserved: 3}

		require.NoError(t, item.Apply(domain.ReservationReleaseEffect(), 3))
		assert.Equal(t, int64(5), item.QtyOnHand)
		assert.Equal(t, int64(0), item.QtyReserved)
	})

	t.Run("release below zero reserved fails", func(t *testing.T) {
		item := domain.InventoryItem{QtyOnHand: 5, QtyReserved: 1}

		err := item.Apply(domain.ReservationReleaseEffect(), 2)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)
	})

	t.Run("non-positive quantity is rejected", func(t *testing.T) {
		item := domain.InventoryItem{QtyOnHand: 5}

		err := item.Apply(incoming, 0)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidation)

		err = item.Apply(incoming, -1)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}
