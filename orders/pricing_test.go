package orders

import (
	"context"
	"testing"

	"sparkle/apperr"
	"sparkle/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fetchFrom(catalog map[string]*models.Product) func(context.Context, string) (*models.Product, error) {
	return func(_ context.Context, id string) (*models.Product, error) {
		p, ok := catalog[id]
		if !ok {
			return nil, apperr.Newf(apperr.NotFound, "Product not found: %s", id)
		}
		cp := *p
		return &cp, nil
	}
}

func TestShippingFee(t *testing.T) {
	assert.Equal(t, 99.0, ShippingFee(0))
	assert.Equal(t, 99.0, ShippingFee(1999.99))
	assert.Equal(t, 99.0, ShippingFee(2000)) // boundary: not strictly above
	assert.Equal(t, 0.0, ShippingFee(2000.01))
	assert.Equal(t, 0.0, ShippingFee(5000))
}

func TestBuildQuoteBelowThreshold(t *testing.T) {
	catalog := map[string]*models.Product{
		"p1": {ProductID: "p1", Name: "Sparkler Pack", Price: 100, Stock: 5, Images: []string{"/img/sparkler.jpg"}},
	}

	q, err := buildQuote(context.Background(), []models.OrderItemInput{{ProductID: "p1", Quantity: 3}}, fetchFrom(catalog))
	require.NoError(t, err)

	assert.Equal(t, 300.0, q.Subtotal)
	assert.Equal(t, 99.0, q.ShippingFee)
	assert.Equal(t, 399.0, q.Total)
	assert.Equal(t, int64(39900), q.AmountInPaise())

	require.Len(t, q.Items, 1)
	assert.Equal(t, "Sparkler Pack", q.Items[0].NameAtOrder)
	assert.Equal(t, 100.0, q.Items[0].PriceAtOrder)
	assert.Equal(t, "/img/sparkler.jpg", q.Items[0].ImageAtOrder)
}

func TestBuildQuoteFreeShipping(t *testing.T) {
	catalog := map[string]*models.Product{
		"p1": {ProductID: "p1", Name: "Aerial Shell Box", Price: 1200, Stock: 10},
	}

	q, err := buildQuote(context.Background(), []models.OrderItemInput{{ProductID: "p1", Quantity: 2}}, fetchFrom(catalog))
	require.NoError(t, err)

	assert.Equal(t, 2400.0, q.Subtotal)
	assert.Equal(t, 0.0, q.ShippingFee)
	assert.Equal(t, 2400.0, q.Total)
}

func TestBuildQuoteMissingImageFallsBack(t *testing.T) {
	catalog := map[string]*models.Product{
		"p1": {ProductID: "p1", Name: "Ground Chakra", Price: 50, Stock: 2},
	}

	q, err := buildQuote(context.Background(), []models.OrderItemInput{{ProductID: "p1", Quantity: 1}}, fetchFrom(catalog))
	require.NoError(t, err)
	assert.Equal(t, "/placeholder.png", q.Items[0].ImageAtOrder)
}

func TestBuildQuoteInsufficientStock(t *testing.T) {
	catalog := map[string]*models.Product{
		"p1": {ProductID: "p1", Name: "Rocket Combo", Price: 250, Stock: 1},
	}

	_, err := buildQuote(context.Background(), []models.OrderItemInput{{ProductID: "p1", Quantity: 2}}, fetchFrom(catalog))
	require.Error(t, err)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "Rocket Combo")
	assert.Contains(t, err.Error(), "Only 1 available")
}

func TestBuildQuoteUnknownProduct(t *testing.T) {
	_, err := buildQuote(context.Background(), []models.OrderItemInput{{ProductID: "ghost", Quantity: 1}}, fetchFrom(nil))
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestValidateItems(t *testing.T) {
	assert.Error(t, validateItems(nil))
	assert.Error(t, validateItems([]models.OrderItemInput{{ProductID: "", Quantity: 1}}))
	assert.Error(t, validateItems([]models.OrderItemInput{{ProductID: "p1", Quantity: 0}}))
	assert.Error(t, validateItems([]models.OrderItemInput{{ProductID: "p1", Quantity: -3}}))
	assert.NoError(t, validateItems([]models.OrderItemInput{{ProductID: "p1", Quantity: 1}}))
}
