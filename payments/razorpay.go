// Package payments wraps the external payment gateway: intent creation over
// the wire, signature verification locally.
package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"sparkle/apperr"

	razorpay "github.com/razorpay/razorpay-go"
)

// Intent is a gateway-side record of an amount to be collected, created
// before the customer completes payment.
type Intent struct {
	ID       string `json:"intentId"`
	Amount   int64  `json:"amount"` // in the smallest currency unit
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type RazorpayGateway struct {
	client    *razorpay.Client
	keySecret string
}

func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{
		client:    razorpay.NewClient(keyID, keySecret),
		keySecret: keySecret,
	}
}

// CreateIntent registers an order with the gateway for the given amount.
// The SDK has no context support, so the call runs under an explicit
// timeout derived from ctx.
func (g *RazorpayGateway) CreateIntent(ctx context.Context, amount int64, currency, receipt string) (*Intent, error) {
	if amount <= 0 {
		return nil, apperr.New(apperr.Validation, "Calculated order amount must be positive")
	}

	type result struct {
		body map[string]interface{}
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		data := map[string]interface{}{
			"amount":   amount,
			"currency": currency,
			"receipt":  receipt,
		}
		body, err := g.client.Order.Create(data, nil)
		ch <- result{body, err}
	}()

	select {
	case <-ctx.Done():
		return nil, apperr.Wrap(apperr.Upstream, "Payment gateway timed out", ctx.Err())
	case res := <-ch:
		if res.err != nil {
			return nil, apperr.Wrap(apperr.Upstream, "Payment gateway rejected the order", res.err)
		}
		id, _ := res.body["id"].(string)
		if id == "" {
			return nil, apperr.Wrap(apperr.Upstream, "Payment gateway returned an invalid order", fmt.Errorf("missing id in response"))
		}
		return &Intent{ID: id, Amount: amount, Currency: currency, Receipt: receipt}, nil
	}
}

// VerifySignature checks the gateway's payment proof: HMAC-SHA256 over
// "<orderID>|<paymentID>" keyed with the gateway secret, compared in
// constant time.
func (g *RazorpayGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return VerifySignature(orderID, paymentID, signature, g.keySecret)
}

func VerifySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
