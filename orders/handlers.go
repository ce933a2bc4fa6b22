package orders

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"sparkle/apperr"
	"sparkle/config"
	"sparkle/db"
	"sparkle/metrics"
	"sparkle/models"
	"sparkle/rdx"
	"sparkle/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const checkoutLockTTL = 10 * time.Second

// acquireCheckoutLock serializes checkout per user so a double-submitted
// form cannot place two orders from the same cart.
func acquireCheckoutLock(userID string) (func(), bool) {
	key := "checkout_lock:" + userID
	ok, err := rdx.RdxSetNX(key, "locked", checkoutLockTTL)
	if err != nil {
		log.Printf("checkout lock unavailable, proceeding without: %v", err)
		return func() {}, true
	}
	if !ok {
		return nil, false
	}
	return func() {
		if err := rdx.RdxDel(key); err != nil {
			log.Printf("failed to release checkout lock for %s: %v", userID, err)
		}
	}, true
}

type createIntentRequest struct {
	Items []models.OrderItemInput `json:"items"`
}

// CreateIntent prices the requested items and registers a payment intent
// with the gateway. POST /api/payments/create-intent
func (s *Service) CreateIntent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req createIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	intent, err := s.CreateDraft(ctx, utils.GetUserIDFromRequest(r), req.Items)
	if err != nil {
		metrics.RecordOrderOperation("create_intent", false)
		apperr.Respond(w, err)
		return
	}

	metrics.RecordOrderOperation("create_intent", true)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"intentId": intent.ID,
		"amount":   intent.Amount,
		"currency": intent.Currency,
		"receipt":  intent.Receipt,
		"keyId":    config.App.RazorpayKeyID,
	})
}

type verifyAndOrderRequest struct {
	ExternalOrderID   string `json:"externalOrderId"`
	ExternalPaymentID string `json:"externalPaymentId"`
	Signature         string `json:"signature"`
	OrderDetails      struct {
		Items           []models.OrderItemInput `json:"items"`
		ShippingAddress models.ShippingAddress  `json:"shippingAddress"`
		PaymentMethod   string                  `json:"paymentMethod"`
	} `json:"orderDetails"`
}

// VerifyAndOrder checks the gateway signature and, only if it is genuine,
// places the order. POST /api/payments/verify-and-order
func (s *Service) VerifyAndOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	var req verifyAndOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.OrderDetails.PaymentMethod == "" {
		req.OrderDetails.PaymentMethod = models.MethodOnline
	}

	userID := utils.GetUserIDFromRequest(r)
	release, ok := acquireCheckoutLock(userID)
	if !ok {
		utils.RespondWithError(w, http.StatusTooManyRequests, "Another checkout is in progress. Please retry in a moment.")
		return
	}
	defer release()

	order, err := s.Finalize(ctx, userID, FinalizeInput{
		Items:           req.OrderDetails.Items,
		ShippingAddress: req.OrderDetails.ShippingAddress,
		PaymentMethod:   req.OrderDetails.PaymentMethod,
		Proof: &PaymentProof{
			GatewayOrderID:   req.ExternalOrderID,
			GatewayPaymentID: req.ExternalPaymentID,
			Signature:        req.Signature,
		},
	})
	if err != nil {
		metrics.RecordOrderOperation("verify_and_order", false)
		apperr.Respond(w, err)
		return
	}

	metrics.RecordOrderOperation("verify_and_order", true)
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"message": "Payment verified and order placed",
		"order":   order,
	})
}

type createOrderRequest struct {
	Items           []models.OrderItemInput `json:"items"`
	ShippingAddress models.ShippingAddress  `json:"shippingAddress"`
	PaymentMethod   string                  `json:"paymentMethod"`
}

// CreateOrder places a cash-on-delivery order. Online methods must go
// through VerifyAndOrder; without a signature they are rejected.
// POST /api/orders
func (s *Service) CreateOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = models.MethodCOD
	}
	if req.PaymentMethod != models.MethodCOD {
		utils.RespondWithError(w, http.StatusBadRequest, "Online payments must go through the payment flow")
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	release, ok := acquireCheckoutLock(userID)
	if !ok {
		utils.RespondWithError(w, http.StatusTooManyRequests, "Another checkout is in progress. Please retry in a moment.")
		return
	}
	defer release()

	order, err := s.Finalize(ctx, userID, FinalizeInput{
		Items:           req.Items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		metrics.RecordOrderOperation("create_order", false)
		apperr.Respond(w, err)
		return
	}

	metrics.RecordOrderOperation("create_order", true)
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// GetMyOrders lists the caller's orders, newest first.
// GET /api/user/orders
func GetMyOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	opts := options.Find().SetSort(bson.M{"createdat": -1})
	cursor, err := db.OrderCollection.Find(ctx, bson.M{"userid": userID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode orders")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, orders)
}

// GetOrder returns a single order, visible to its owner or an admin.
// GET /api/orders/:orderid
func GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := loadOrderAuthorized(ctx, r, ps.ByName("orderid"))
	if err != nil {
		apperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, order)
}

func loadOrderAuthorized(ctx context.Context, r *http.Request, orderID string) (*models.Order, error) {
	var order models.Order
	err := db.OrderCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.New(apperr.NotFound, "Order not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to fetch order", err)
	}
	if order.UserID != utils.GetUserIDFromRequest(r) && !utils.IsAdminRequest(r) {
		return nil, apperr.New(apperr.Forbidden, "Not authorized to view this order")
	}
	return &order, nil
}

// GetAllOrders returns a paginated admin view across all customers, with
// optional ?status= filtering. GET /api/orders
func GetAllOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		if !ValidStatus(status) {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid order status: "+status)
			return
		}
		filter["status"] = status
	}

	page, limit, skip := utils.ParsePagination(r, 20)

	total, err := db.OrderCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count orders")
		return
	}

	opts := options.Find().
		SetSort(bson.M{"createdat": -1}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))
	cursor, err := db.OrderCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode orders")
		return
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"orders":      orders,
		"currentPage": page,
		"totalPages":  totalPages,
		"totalOrders": total,
	})
}

type updateStatusRequest struct {
	Status         string  `json:"status"`
	TrackingNumber *string `json:"trackingNumber"`
}

// UpdateOrderStatus moves an order through the fulfillment lifecycle.
// Admin only. PUT /api/orders/:orderid/status
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var order models.Order
	err := db.OrderCollection.FindOne(ctx, bson.M{"orderid": ps.ByName("orderid")}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch order")
		return
	}

	if err := ApplyTransition(&order, req.Status, req.TrackingNumber, time.Now()); err != nil {
		metrics.RecordOrderOperation("update_status", false)
		apperr.Respond(w, err)
		return
	}

	update := bson.M{
		"status":            order.Status,
		"paymentstatus":     order.PaymentStatus,
		"trackingnumber":    order.TrackingNumber,
		"estimateddelivery": order.EstimatedDelivery,
		"updatedat":         order.UpdatedAt,
	}
	if _, err := db.OrderCollection.UpdateOne(ctx, bson.M{"orderid": order.OrderID}, bson.M{"$set": update}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update order")
		return
	}

	metrics.RecordOrderOperation("update_status", true)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Order status updated",
		"order":   order,
	})
}
