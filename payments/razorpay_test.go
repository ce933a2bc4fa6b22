package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignatureKnownVector(t *testing.T) {
	// fixed vector so a change in the signing scheme is caught, not
	// re-derived
	secret := "test_secret"
	got := sign("order_abc", "pay_xyz", secret)
	assert.Equal(t, "a734976b4a9aa4403181acd25d87b09ad8cb31f7d73be91e2bb9eb5c517ca319", got)
	require.Len(t, got, 64)

	assert.True(t, VerifySignature("order_abc", "pay_xyz", got, secret))
}

func TestVerifySignatureRejectsMutation(t *testing.T) {
	secret := "test_secret"
	good := sign("order_abc", "pay_xyz", secret)

	for i := 0; i < len(good); i += 7 {
		bad := []byte(good)
		if bad[i] == 'a' {
			bad[i] = 'b'
		} else {
			bad[i] = 'a'
		}
		assert.False(t, VerifySignature("order_abc", "pay_xyz", string(bad), secret), "mutated at index %d", i)
	}
}

func TestVerifySignatureRejectsWrongInputs(t *testing.T) {
	secret := "test_secret"
	good := sign("order_abc", "pay_xyz", secret)

	assert.False(t, VerifySignature("order_abd", "pay_xyz", good, secret))
	assert.False(t, VerifySignature("order_abc", "pay_xyy", good, secret))
	assert.False(t, VerifySignature("order_abc", "pay_xyz", good, "other_secret"))
	assert.False(t, VerifySignature("order_abc", "pay_xyz", "", secret))
}

func TestVerifySignatureFieldOrderMatters(t *testing.T) {
	secret := "test_secret"
	swapped := sign("pay_xyz", "order_abc", secret)
	assert.False(t, VerifySignature("order_abc", "pay_xyz", swapped, secret))
}
