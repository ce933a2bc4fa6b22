package orders

import (
	"context"
	"math"

	"sparkle/apperr"
	"sparkle/config"
	"sparkle/models"
)

// PricedItem is one quoted line: current catalog state plus the snapshot
// fields an order would carry.
type PricedItem struct {
	ProductID    string
	Quantity     int
	PriceAtOrder float64
	NameAtOrder  string
	ImageAtOrder string
	Stock        int
}

// Quote is the server-side price for a list of items. Building a quote has
// no side effects and is safe to repeat; the catalog may change between two
// quotes for the same items.
type Quote struct {
	Items       []PricedItem
	Subtotal    float64
	ShippingFee float64
	Total       float64
}

// AmountInPaise converts the total to the smallest currency unit.
func (q *Quote) AmountInPaise() int64 {
	return int64(math.Round(q.Total * 100))
}

// ShippingFee is zero above the free-shipping threshold, else the flat fee.
func ShippingFee(subtotal float64) float64 {
	if subtotal > config.App.FreeShippingThreshold {
		return 0
	}
	return config.App.ShippingFee
}

func validateItems(items []models.OrderItemInput) error {
	if len(items) == 0 {
		return apperr.New(apperr.Validation, "Order items are required")
	}
	for _, item := range items {
		if item.ProductID == "" || len(item.ProductID) > 64 {
			return apperr.Newf(apperr.Validation, "Invalid product id: %q", item.ProductID)
		}
		if item.Quantity <= 0 {
			return apperr.Newf(apperr.Validation, "Invalid quantity for product %s", item.ProductID)
		}
	}
	return nil
}

// buildQuote prices every item against current catalog state via fetch.
// Fails on unknown products, non-positive quantities, and quantities above
// current stock. This is an advisory check when used for intent creation;
// the authoritative check happens again at finalize time.
func buildQuote(ctx context.Context, items []models.OrderItemInput, fetch func(context.Context, string) (*models.Product, error)) (*Quote, error) {
	if err := validateItems(items); err != nil {
		return nil, err
	}

	q := &Quote{Items: make([]PricedItem, 0, len(items))}
	for _, item := range items {
		product, err := fetch(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product.Stock < item.Quantity {
			return nil, apperr.Newf(apperr.Conflict,
				"Insufficient stock for %s. Only %d available.", product.Name, product.Stock)
		}
		q.Items = append(q.Items, PricedItem{
			ProductID:    product.ProductID,
			Quantity:     item.Quantity,
			PriceAtOrder: product.Price,
			NameAtOrder:  product.Name,
			ImageAtOrder: product.FirstImage(),
			Stock:        product.Stock,
		})
		q.Subtotal += product.Price * float64(item.Quantity)
	}

	q.ShippingFee = ShippingFee(q.Subtotal)
	q.Total = q.Subtotal + q.ShippingFee
	return q, nil
}
