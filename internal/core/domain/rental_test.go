package domain_test

import (
	"testing"
	"time"

	"github.com/renteq/rentalcrm/internal/apperrors"
	"github.com/renteq/rentalcrm/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRentalOutcome_Close(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("open rental closes with timestamp", func(t *testing.T) {
		outcome := domain.OpenRental()
		assert.True(t, outcome.IsOpen())

		closed, err := outcome.Close(domain.OutcomeClosedReturn, now)
		require.NoError(t, err)
		assert.False(t, closed.IsOpen())
		assert.Equal(t, domain.OutcomeClosedReturn, closed.Kind)
		require.NotNil(t, closed.ClosedAt)
		assert.Equal(t, now, *closed.ClosedAt)
	})

	t.Run("closing twice fails and keeps the first outcome", func(t *testing.T) {
		outcome := domain.OpenRental()
		closed, err := outcome.Close(domain.OutcomeClosedPurchase, now)
		require.NoError(t, err)

		again, err := closed.Close(domain.OutcomeClosedReturn, now.Add(time.Hour))
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
		assert.Equal(t, domain.OutcomeClosedPurchase, again.Kind)
		assert.Equal(t, now, *again.ClosedAt)
	})

	t.Run("open is not a terminal kind", func(t *testing.T) {
		outcome := domain.OpenRental()
		_, err := outcome.Close(domain.OutcomeOpen, now)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestClosedOutcome(t *testing.T) {
	now := time.Now()

	for _, kind := range []domain.OutcomeKind{domain.OutcomeClosedReturn, domain.OutcomeClosedPurchase, domain.OutcomeCanceled} {
		outcome, err := domain.ClosedOutcome(kind, now)
		require.NoError(t, err, "kind %s", kind)
		assert.Equal(t, kind, outcome.Kind)
		require.NotNil(t, outcome.ClosedAt)
	}

	_, err := domain.ClosedOutcome(domain.OutcomeOpen, now)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestRental_Validate(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	rental := domain.Rental{StartDate: start, EndDate: start.AddDate(0, 1, 0)}
	assert.NoError(t, rental.Validate())

	rental = domain.Rental{StartDate: start, EndDate: start}
	err := rental.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	rental = domain.Rental{StartDate: start, EndDate: start.AddDate(0, 0, -1)}
	assert.ErrorIs(t, rental.Validate(), apperrors.ErrValidation)
}

func TestRental_ActualEndDate(t *testing.T) {
	rental := domain.Rental{Outcome: domain.OpenRental()}
	assert.Nil(t, rental.ActualEndDate())

	closedAt := time.Date(2025, 9, 30, 10, 0, 0, 0, time.UTC)
	closed, err := rental.Outcome.Close(domain.OutcomeCanceled, closedAt)
	require.NoError(t, err)
	rental.Outcome = closed

	require.NotNil(t, rental.ActualEndDate())
	assert.Equal(t, closedAt, *rental.ActualEndDate())
}
