package models

import "time"

// Order statuses. Transitions are one-way and admin-only; cancelled is
// reachable from any non-terminal state.
const (
	OrderPending    = "pending"
	OrderConfirmed  = "confirmed"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

// Payment statuses.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
)

// Payment methods.
const (
	MethodCOD    = "cod"
	MethodCard   = "card"
	MethodUPI    = "upi"
	MethodOnline = "online"
)

func ValidPaymentMethod(m string) bool {
	switch m {
	case MethodCOD, MethodCard, MethodUPI, MethodOnline:
		return true
	}
	return false
}

// OrderItemInput is the client-supplied (product, quantity) pair used for
// quoting and order creation. Prices are never taken from the client.
type OrderItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// OrderItem is a line item with product fields captured at order time,
// immutable after creation and independent of later product edits.
type OrderItem struct {
	ProductID    string  `json:"productId" bson:"productid"`
	Quantity     int     `json:"quantity" bson:"quantity"`
	PriceAtOrder float64 `json:"priceAtOrder" bson:"priceatorder"`
	NameAtOrder  string  `json:"nameAtOrder" bson:"nameatorder"`
	ImageAtOrder string  `json:"imageAtOrder" bson:"imageatorder"`
}

// ShippingAddress is snapshotted into the order, not referenced.
type ShippingAddress struct {
	FirstName string `json:"firstName" bson:"firstname"`
	LastName  string `json:"lastName" bson:"lastname"`
	Email     string `json:"email" bson:"email"`
	Phone     string `json:"phone" bson:"phone"`
	Street    string `json:"street" bson:"street"`
	City      string `json:"city" bson:"city"`
	State     string `json:"state" bson:"state"`
	Pincode   string `json:"pincode" bson:"pincode"`
}

// Complete reports whether every required address field is present.
func (a *ShippingAddress) Complete() bool {
	return a.FirstName != "" && a.LastName != "" && a.Email != "" &&
		a.Phone != "" && a.Street != "" && a.City != "" &&
		a.State != "" && a.Pincode != ""
}

// PaymentResult holds the gateway receipt for online payments.
type PaymentResult struct {
	GatewayOrderID   string    `json:"gatewayOrderId" bson:"gatewayorderid"`
	GatewayPaymentID string    `json:"gatewayPaymentId" bson:"gatewaypaymentid"`
	Signature        string    `json:"signature,omitempty" bson:"signature,omitempty"`
	Status           string    `json:"status" bson:"status"`
	UpdateTime       time.Time `json:"updateTime" bson:"updatetime"`
}

type Order struct {
	OrderID         string          `json:"orderId" bson:"orderid"`
	UserID          string          `json:"userId" bson:"userid"`
	Items           []OrderItem     `json:"items" bson:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress" bson:"shippingaddress"`
	PaymentMethod   string          `json:"paymentMethod" bson:"paymentmethod"`
	PaymentStatus   string          `json:"paymentStatus" bson:"paymentstatus"`
	Status          string          `json:"status" bson:"status"`
	Subtotal        float64         `json:"subtotal" bson:"subtotal"`
	ShippingFee     float64         `json:"shippingFee" bson:"shippingfee"`
	Total           float64         `json:"total" bson:"total"`

	TrackingNumber    string         `json:"trackingNumber,omitempty" bson:"trackingnumber,omitempty"`
	EstimatedDelivery *time.Time     `json:"estimatedDelivery,omitempty" bson:"estimateddelivery,omitempty"`
	PaymentResult     *PaymentResult `json:"paymentResult,omitempty" bson:"paymentresult,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdat"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedat"`
}
