package orders

import (
	"context"
	"fmt"
	"log"
	"time"

	"sparkle/apperr"
	"sparkle/config"
	"sparkle/db"
	"sparkle/models"
	"sparkle/payments"
	"sparkle/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// PaymentGateway is the slice of the gateway the orchestrator needs.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount int64, currency, receipt string) (*payments.Intent, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

// Service coordinates quoting, payment verification, order persistence and
// stock movement. Storage access goes through the function fields so tests
// can run against an in-memory catalog.
type Service struct {
	Gateway PaymentGateway

	fetchProduct func(ctx context.Context, id string) (*models.Product, error)
	insertOrder  func(ctx context.Context, order *models.Order) error
	reserveStock func(ctx context.Context, id string, qty int) error
	releaseStock func(ctx context.Context, id string, qty int) error
}

func NewService(gateway PaymentGateway) *Service {
	return &Service{
		Gateway:      gateway,
		fetchProduct: fetchProduct,
		insertOrder:  insertOrder,
		reserveStock: reserveStock,
		releaseStock: releaseStock,
	}
}

func fetchProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := db.ProductCollection.FindOne(ctx, bson.M{"productid": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.Newf(apperr.NotFound, "Product not found: %s", id)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Server error fetching product", err)
	}
	return &product, nil
}

func insertOrder(ctx context.Context, order *models.Order) error {
	if _, err := db.OrderCollection.InsertOne(ctx, order); err != nil {
		return apperr.Wrap(apperr.Internal, "Order creation failed", err)
	}
	return nil
}

// reserveStock is the authoritative stock check: a conditional decrement
// that only matches while stock >= qty, so two concurrent orders can never
// both take the last units.
func reserveStock(ctx context.Context, id string, qty int) error {
	res, err := db.ProductCollection.UpdateOne(ctx,
		bson.M{"productid": id, "stock": bson.M{"$gte": qty}},
		bson.M{"$inc": bson.M{"stock": -qty}, "$set": bson.M{"updatedat": time.Now()}},
	)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to update stock", err)
	}
	if res.MatchedCount == 0 {
		product, ferr := fetchProduct(ctx, id)
		if ferr != nil {
			return ferr
		}
		return apperr.Newf(apperr.Conflict,
			"Insufficient stock for %s. Only %d available.", product.Name, product.Stock)
	}
	return nil
}

func releaseStock(ctx context.Context, id string, qty int) error {
	_, err := db.ProductCollection.UpdateOne(ctx,
		bson.M{"productid": id},
		bson.M{"$inc": bson.M{"stock": qty}, "$set": bson.M{"updatedat": time.Now()}},
	)
	return err
}

// CreateDraft validates and prices the items, then registers a payment
// intent with the gateway. Nothing is persisted and stock is untouched;
// the catalog may change before the order is finalized.
func (s *Service) CreateDraft(ctx context.Context, userID string, items []models.OrderItemInput) (*payments.Intent, error) {
	quote, err := buildQuote(ctx, items, s.fetchProduct)
	if err != nil {
		return nil, err
	}
	if quote.Total <= 0 {
		return nil, apperr.New(apperr.Validation, "Calculated order amount must be positive")
	}

	suffix := userID
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}
	receipt := fmt.Sprintf("rcpt_order_%d_%s", time.Now().UnixMilli(), suffix)

	return s.Gateway.CreateIntent(ctx, quote.AmountInPaise(), config.App.Currency, receipt)
}

// PaymentProof is the gateway receipt the client presents after completing
// an online payment.
type PaymentProof struct {
	GatewayOrderID   string `json:"externalOrderId"`
	GatewayPaymentID string `json:"externalPaymentId"`
	Signature        string `json:"signature"`
}

// FinalizeInput is everything Finalize needs beyond the caller identity.
type FinalizeInput struct {
	Items           []models.OrderItemInput
	ShippingAddress models.ShippingAddress
	PaymentMethod   string
	Proof           *PaymentProof // nil for cash on delivery
}

// Finalize turns a validated request into a persisted order:
//
//  1. verify the payment signature unless paying cash on delivery
//  2. re-price against current catalog state (snapshot price/name/image)
//  3. reserve stock per product with conditional decrements, rolling back
//     earlier reservations if any product comes up short
//  4. persist the order with a server-computed total
//
// Once the signature has been verified money has moved, so any later
// failure is surfaced as a post-payment failure that directs the customer
// to support with their payment reference.
func (s *Service) Finalize(ctx context.Context, userID string, in FinalizeInput) (*models.Order, error) {
	if !models.ValidPaymentMethod(in.PaymentMethod) {
		return nil, apperr.Newf(apperr.Validation, "Valid payment method required. Received: %s", in.PaymentMethod)
	}
	if !in.ShippingAddress.Complete() {
		return nil, apperr.New(apperr.Validation, "Missing required shipping address field")
	}
	if err := validateItems(in.Items); err != nil {
		return nil, err
	}

	paid := false
	if in.PaymentMethod != models.MethodCOD {
		if in.Proof == nil || in.Proof.GatewayOrderID == "" || in.Proof.GatewayPaymentID == "" || in.Proof.Signature == "" {
			return nil, apperr.New(apperr.PaymentVerification, "Missing payment verification details")
		}
		if !s.Gateway.VerifySignature(in.Proof.GatewayOrderID, in.Proof.GatewayPaymentID, in.Proof.Signature) {
			log.Printf("payment signature verification failed for gateway order %s", in.Proof.GatewayOrderID)
			return nil, apperr.New(apperr.PaymentVerification, "Invalid payment signature")
		}
		paid = true
	}

	quote, err := buildQuote(ctx, in.Items, s.fetchProduct)
	if err != nil {
		return nil, s.afterPayment(paid, in.Proof, err)
	}

	// Authoritative stock check: conditional decrement per product, undo on
	// partial failure.
	reserved := make([]PricedItem, 0, len(quote.Items))
	for _, item := range quote.Items {
		if err := s.reserveStock(ctx, item.ProductID, item.Quantity); err != nil {
			for _, r := range reserved {
				if rerr := s.releaseStock(ctx, r.ProductID, r.Quantity); rerr != nil {
					log.Printf("CRITICAL: failed to release %d units of %s after aborted order: %v", r.Quantity, r.ProductID, rerr)
				}
			}
			return nil, s.afterPayment(paid, in.Proof, err)
		}
		reserved = append(reserved, item)
	}

	now := time.Now()
	order := &models.Order{
		OrderID:         "ORD" + utils.GenerateRandomDigitString(10),
		UserID:          userID,
		Items:           make([]models.OrderItem, 0, len(quote.Items)),
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		PaymentStatus:   models.PaymentPending,
		Status:          models.OrderPending,
		Subtotal:        quote.Subtotal,
		ShippingFee:     quote.ShippingFee,
		Total:           quote.Total,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, item := range quote.Items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			PriceAtOrder: item.PriceAtOrder,
			NameAtOrder:  item.NameAtOrder,
			ImageAtOrder: item.ImageAtOrder,
		})
	}
	if paid {
		order.PaymentStatus = models.PaymentPaid
		order.PaymentResult = &models.PaymentResult{
			GatewayOrderID:   in.Proof.GatewayOrderID,
			GatewayPaymentID: in.Proof.GatewayPaymentID,
			Signature:        in.Proof.Signature,
			Status:           models.PaymentPaid,
			UpdateTime:       now,
		}
	}

	if err := s.insertOrder(ctx, order); err != nil {
		for _, r := range reserved {
			if rerr := s.releaseStock(ctx, r.ProductID, r.Quantity); rerr != nil {
				log.Printf("CRITICAL: failed to release %d units of %s after failed insert: %v", r.Quantity, r.ProductID, rerr)
			}
		}
		return nil, s.afterPayment(paid, in.Proof, err)
	}

	return order, nil
}

// afterPayment upgrades an error to a post-payment failure when the
// signature already verified: the customer has been charged and must not
// see a silent or generic failure.
func (s *Service) afterPayment(paid bool, proof *PaymentProof, err error) error {
	if !paid {
		return err
	}
	ref := ""
	if proof != nil {
		ref = proof.GatewayPaymentID
	}
	return &apperr.Error{
		Kind: apperr.PostPaymentFailure,
		Message: fmt.Sprintf(
			"Order placement failed after payment. Please contact support with your payment reference %s.", ref),
		Err: err,
	}
}
