package orders

import (
	"time"

	"sparkle/apperr"
	"sparkle/models"
)

// allowedTransitions is the one-way order lifecycle. Cancellation is valid
// from every non-terminal state and does not restore stock.
var allowedTransitions = map[string][]string{
	models.OrderPending:    {models.OrderConfirmed, models.OrderProcessing, models.OrderShipped, models.OrderDelivered, models.OrderCancelled},
	models.OrderConfirmed:  {models.OrderProcessing, models.OrderShipped, models.OrderDelivered, models.OrderCancelled},
	models.OrderProcessing: {models.OrderShipped, models.OrderDelivered, models.OrderCancelled},
	models.OrderShipped:    {models.OrderShipped, models.OrderDelivered, models.OrderCancelled},
	models.OrderDelivered:  {},
	models.OrderCancelled:  {},
}

func ValidStatus(s string) bool {
	_, ok := allowedTransitions[s]
	return ok
}

func canTransition(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ApplyTransition mutates order in place for an admin status change.
//   - shipped sets estimatedDelivery to now+5d only when unset, so a
//     repeated shipped transition never moves the date
//   - delivered on a COD order is the single place COD becomes paid
//   - trackingNumber, when non-nil, is written as given
func ApplyTransition(order *models.Order, status string, trackingNumber *string, now time.Time) error {
	if !ValidStatus(status) {
		return apperr.New(apperr.Validation, "Invalid status provided")
	}
	if !canTransition(order.Status, status) {
		return apperr.Newf(apperr.Validation, "Cannot change status from %s to %s", order.Status, status)
	}

	order.Status = status
	if trackingNumber != nil {
		order.TrackingNumber = *trackingNumber
	}

	if status == models.OrderShipped && order.EstimatedDelivery == nil {
		eta := now.AddDate(0, 0, 5)
		order.EstimatedDelivery = &eta
	}
	if status == models.OrderDelivered && order.PaymentMethod == models.MethodCOD {
		order.PaymentStatus = models.PaymentPaid
	}

	order.UpdatedAt = now
	return nil
}
