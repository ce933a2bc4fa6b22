package orders

import (
	"testing"
	"time"

	"sparkle/apperr"
	"sparkle/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyTransitionLifecycle(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	order := &models.Order{Status: models.OrderPending, PaymentMethod: models.MethodCOD, PaymentStatus: models.PaymentPending}

	require.NoError(t, ApplyTransition(order, models.OrderConfirmed, nil, now))
	assert.Equal(t, models.OrderConfirmed, order.Status)
	assert.Nil(t, order.EstimatedDelivery)

	tracking := "TRK123"
	require.NoError(t, ApplyTransition(order, models.OrderShipped, &tracking, now))
	assert.Equal(t, "TRK123", order.TrackingNumber)
	require.NotNil(t, order.EstimatedDelivery)
	assert.Equal(t, now.AddDate(0, 0, 5), *order.EstimatedDelivery)

	// repeated shipped keeps the original delivery estimate
	later := now.Add(48 * time.Hour)
	require.NoError(t, ApplyTransition(order, models.OrderShipped, nil, later))
	assert.Equal(t, now.AddDate(0, 0, 5), *order.EstimatedDelivery)
	assert.Equal(t, "TRK123", order.TrackingNumber)

	require.NoError(t, ApplyTransition(order, models.OrderDelivered, nil, later))
	assert.Equal(t, models.PaymentPaid, order.PaymentStatus)
}

func TestApplyTransitionDeliveredOnlineKeepsPaymentStatus(t *testing.T) {
	order := &models.Order{Status: models.OrderShipped, PaymentMethod: models.MethodOnline, PaymentStatus: models.PaymentPaid}
	require.NoError(t, ApplyTransition(order, models.OrderDelivered, nil, time.Now()))
	assert.Equal(t, models.PaymentPaid, order.PaymentStatus)
}

func TestApplyTransitionTerminalStates(t *testing.T) {
	for _, terminal := range []string{models.OrderDelivered, models.OrderCancelled} {
		for _, next := range []string{models.OrderPending, models.OrderConfirmed, models.OrderShipped, models.OrderCancelled} {
			order := &models.Order{Status: terminal}
			err := ApplyTransition(order, next, nil, time.Now())
			require.Error(t, err, "%s -> %s should be rejected", terminal, next)
			assert.Equal(t, apperr.Validation, apperr.KindOf(err))
		}
	}
}

func TestApplyTransitionNoBackwardMoves(t *testing.T) {
	order := &models.Order{Status: models.OrderShipped}
	assert.Error(t, ApplyTransition(order, models.OrderPending, nil, time.Now()))
	assert.Error(t, ApplyTransition(order, models.OrderConfirmed, nil, time.Now()))
	assert.Error(t, ApplyTransition(order, models.OrderProcessing, nil, time.Now()))
}

func TestApplyTransitionUnknownStatus(t *testing.T) {
	order := &models.Order{Status: models.OrderPending}
	err := ApplyTransition(order, "teleported", nil, time.Now())
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
	assert.Equal(t, models.OrderPending, order.Status)
}
