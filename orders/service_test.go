package orders

import (
	"context"
	"errors"
	"testing"

	"sparkle/apperr"
	"sparkle/models"
	"sparkle/payments"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	verifyOK    bool
	createdAmt  int64
	verifyCalls int
}

func (f *fakeGateway) CreateIntent(_ context.Context, amount int64, currency, receipt string) (*payments.Intent, error) {
	f.createdAmt = amount
	return &payments.Intent{ID: "order_fake123", Amount: amount, Currency: currency, Receipt: receipt}, nil
}

func (f *fakeGateway) VerifySignature(orderID, paymentID, signature string) bool {
	f.verifyCalls++
	return f.verifyOK
}

// fakeStore backs a Service with in-memory products and orders.
type fakeStore struct {
	catalog    map[string]*models.Product
	orders     []*models.Order
	insertErr  error
	reserveLog []string
	releaseLog []string
}

func newTestService(gw PaymentGateway, store *fakeStore) *Service {
	return &Service{
		Gateway: gw,
		fetchProduct: func(_ context.Context, id string) (*models.Product, error) {
			p, ok := store.catalog[id]
			if !ok {
				return nil, apperr.Newf(apperr.NotFound, "Product not found: %s", id)
			}
			cp := *p
			return &cp, nil
		},
		insertOrder: func(_ context.Context, order *models.Order) error {
			if store.insertErr != nil {
				return store.insertErr
			}
			store.orders = append(store.orders, order)
			return nil
		},
		reserveStock: func(_ context.Context, id string, qty int) error {
			p, ok := store.catalog[id]
			if !ok {
				return apperr.Newf(apperr.NotFound, "Product not found: %s", id)
			}
			if p.Stock < qty {
				return apperr.Newf(apperr.Conflict, "Insufficient stock for %s. Only %d available.", p.Name, p.Stock)
			}
			p.Stock -= qty
			store.reserveLog = append(store.reserveLog, id)
			return nil
		},
		releaseStock: func(_ context.Context, id string, qty int) error {
			if p, ok := store.catalog[id]; ok {
				p.Stock += qty
			}
			store.releaseLog = append(store.releaseLog, id)
			return nil
		},
	}
}

func testAddress() models.ShippingAddress {
	return models.ShippingAddress{
		FirstName: "Asha",
		LastName:  "Rao",
		Email:     "asha@example.com",
		Street:    "14 Market Road",
		City:      "Sivakasi",
		State:     "Tamil Nadu",
		Pincode:   "626123",
		Phone:     "+919876543210",
	}
}

func TestCreateDraftPricesAndDelegates(t *testing.T) {
	gw := &fakeGateway{}
	store := &fakeStore{catalog: map[string]*models.Product{
		"p1": {ProductID: "p1", Name: "Flower Pots", Price: 100, Stock: 5},
	}}
	svc := newTestService(gw, store)

	intent, err := svc.CreateDraft(context.Background(), "u_12345678", []models.OrderItemInput{{ProductID: "p1", Quantity: 3}})
	require.NoError(t, err)

	assert.Equal(t, int64(39900), intent.Amount) // 3*100 + 99 shipping, in paise
	assert.Equal(t, int64(39900), gw.createdAmt)
	assert.Empty(t, store.orders, "draft must not persist anything")
	assert.Equal(t, 5, store.catalog["p1"].Stock, "draft must not touch stock")
}

func TestFinalizeCODSnapshotsAndDecrements(t *testing.T) {
	store := &fakeStore{catalog: map[string]*models.Product{
		"p1": {ProductID: "p1", Name: "Flower Pots", Price: 100, Stock: 5, Images: []string{"/img/fp.jpg"}},
	}}
	svc := newTestService(&fakeGateway{}, store)

	order, err := svc.Finalize(context.Background(), "u1", FinalizeInput{
		Items:           []models.OrderItemInput{{ProductID: "p1", Quantity: 3}},
		ShippingAddress: testAddress(),
		PaymentMethod:   models.MethodCOD,
	})
	require.NoError(t, err)

	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, models.PaymentPending, order.PaymentStatus)
	assert.Equal(t, 399.0, order.Total)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 100.0, order.Items[0].PriceAtOrder)
	assert.Equal(t, "Flower Pots", order.Items[0].NameAtOrder)
	assert.Equal(t, "/img/fp.jpg", order.Items[0].ImageAtOrder)
	assert.Nil(t, order.PaymentResult)

	assert.Equal(t, 2, store.catalog["p1"].Stock)
	require.Len(t, store.orders, 1)
}

func TestFinalizeOnlineWithoutProofRejected(t *testing.T) {
	gw := &fakeGateway{verifyOK: true}
	store := &fakeStore{catalog: map[string]*models.Product{
		"p1": {ProductID: "p1", Name: "Flower Pots", Price: 100, Stock: 5},
	}}
	svc := newTestService(gw, store)

	_, err := svc.Finalize(context.Background(), "u1", FinalizeInput{
		Items:           []models.OrderItemInput{{ProductID: "p1", Quantity: 1}},
		ShippingAddress: testAddress(),
		PaymentMethod:   models.MethodOnline,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.PaymentVerification, apperr.KindOf(err))
	assert.Zero(t, gw.verifyCalls)
	assert.Empty(t, store.orders)
	assert.Equal(t, 5, store.catalog["p1"].Stock)
}

func TestFinalizeInvalidSignatureWritesNothing(t *testing.T) {
	store := &fakeStore{catalog: map[string]*models.Product{
		"p1": {ProductID: "p1", Name: "Flower Pots", Price: 100, Stock: 5},
	}}
	svc := newTestService(&fakeGateway{verifyOK: false}, store)

	_, err := svc.Finalize(context.Background(), "u1", FinalizeInput{
		Items:           []models.OrderItemInput{{ProductID: "p1", Quantity: 1}},
		ShippingAddress: testAddress(),
		PaymentMethod:   models.MethodOnline,
		Proof:           &PaymentProof{GatewayOrderID: "o1", GatewayPaymentID: "pay1", Signature: "bad"},
	})
	require.Error(t, err)
	assert.Equal(t, apperr.PaymentVerification, apperr.KindOf(err))
	assert.Empty(t, store.orders)
	assert.Equal(t, 5, store.catalog["p1"].Stock)
}

func TestFinalizeValidSignaturePlacesPaidOrder(t *testing.T) {
	store := &fakeStore{catalog: map[string]*models.Product{
		"p1": {ProductID: "p1", Name: "Flower Pots", Price: 100, Stock: 5},
	}}
	svc := newTestService(&fakeGateway{verifyOK: true}, store)

	order, err := svc.Finalize(context.Background(), "u1", FinalizeInput{
		Items:           []models.OrderItemInput{{ProductID: "p1", Quantity: 2}},
		ShippingAddress: testAddress(),
		PaymentMethod:   models.MethodUPI,
		Proof:           &PaymentProof{GatewayOrderID: "o1", GatewayPaymentID: "pay1", Signature: "sig"},
	})
	require.NoError(t, err)

	assert.Equal(t, models.PaymentPaid, order.PaymentStatus)
	require.NotNil(t, order.PaymentResult)
	assert.Equal(t, "o1", order.PaymentResult.GatewayOrderID)
	assert.Equal(t, "pay1", order.PaymentResult.GatewayPaymentID)
	assert.Equal(t, 3, store.catalog["p1"].Stock)
}

func TestFinalizeRollsBackPartialReservation(t *testing.T) {
	store := &fakeStore{catalog: map[string]*models.Product{
		"p1": {ProductID: "p1", Name: "Flower Pots", Price: 100, Stock: 5},
		"p2": {ProductID: "p2", Name: "Rocket Combo", Price: 250, Stock: 0},
	}}
	svc := newTestService(&fakeGateway{}, store)

	// quote-level pre-check would already catch p2, so bypass it by making
	// the quote see stock that reservation then refuses
	svc.fetchProduct = func(_ context.Context, id string) (*models.Product, error) {
		p := *store.catalog[id]
		if p.ProductID == "p2" {
			p.Stock = 10
		}
		return &p, nil
	}

	_, err := svc.Finalize(context.Background(), "u1", FinalizeInput{
		Items:           []models.OrderItemInput{{ProductID: "p1", Quantity: 2}, {ProductID: "p2", Quantity: 1}},
		ShippingAddress: testAddress(),
		PaymentMethod:   models.MethodCOD,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))

	assert.Equal(t, []string{"p1"}, store.reserveLog)
	assert.Equal(t, []string{"p1"}, store.releaseLog)
	assert.Equal(t, 5, store.catalog["p1"].Stock, "reservation must be undone")
	assert.Empty(t, store.orders)
}

func TestFinalizePaidInsertFailureIsPostPaymentFailure(t *testing.T) {
	store := &fakeStore{
		catalog: map[string]*models.Product{
			"p1": {ProductID: "p1", Name: "Flower Pots", Price: 100, Stock: 5},
		},
		insertErr: errors.New("write concern timeout"),
	}
	svc := newTestService(&fakeGateway{verifyOK: true}, store)

	_, err := svc.Finalize(context.Background(), "u1", FinalizeInput{
		Items:           []models.OrderItemInput{{ProductID: "p1", Quantity: 1}},
		ShippingAddress: testAddress(),
		PaymentMethod:   models.MethodCard,
		Proof:           &PaymentProof{GatewayOrderID: "o1", GatewayPaymentID: "pay_ref99", Signature: "sig"},
	})
	require.Error(t, err)
	assert.Equal(t, apperr.PostPaymentFailure, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "pay_ref99")
	assert.Contains(t, err.Error(), "contact support")
	assert.Equal(t, 5, store.catalog["p1"].Stock, "stock released after failed insert")
}

func TestFinalizeCODInsertFailureStaysGeneric(t *testing.T) {
	store := &fakeStore{
		catalog: map[string]*models.Product{
			"p1": {ProductID: "p1", Name: "Flower Pots", Price: 100, Stock: 5},
		},
		insertErr: apperr.New(apperr.Internal, "Order creation failed"),
	}
	svc := newTestService(&fakeGateway{}, store)

	_, err := svc.Finalize(context.Background(), "u1", FinalizeInput{
		Items:           []models.OrderItemInput{{ProductID: "p1", Quantity: 1}},
		ShippingAddress: testAddress(),
		PaymentMethod:   models.MethodCOD,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.Internal, apperr.KindOf(err))
}

func TestFinalizeRejectsBadInput(t *testing.T) {
	svc := newTestService(&fakeGateway{}, &fakeStore{catalog: map[string]*models.Product{}})

	_, err := svc.Finalize(context.Background(), "u1", FinalizeInput{
		Items:           []models.OrderItemInput{{ProductID: "p1", Quantity: 1}},
		ShippingAddress: testAddress(),
		PaymentMethod:   "barter",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	incomplete := testAddress()
	incomplete.Pincode = ""
	_, err = svc.Finalize(context.Background(), "u1", FinalizeInput{
		Items:           []models.OrderItemInput{{ProductID: "p1", Quantity: 1}},
		ShippingAddress: incomplete,
		PaymentMethod:   models.MethodCOD,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}
