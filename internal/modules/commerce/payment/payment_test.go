package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subkart/core/internal/config"
)

func signCapture(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	const secret = "rzp_test_secret"
	sig := signCapture(secret, "order_abc", "pay_xyz")

	assert.True(t, VerifySignature(secret, "order_abc", "pay_xyz", sig))

	assert.False(t, VerifySignature(secret, "order_abc", "pay_xyz", sig[:len(sig)-1]+"0"))
	assert.False(t, VerifySignature(secret, "order_other", "pay_xyz", sig))
	assert.False(t, VerifySignature(secret, "order_abc", "pay_other", sig))
	assert.False(t, VerifySignature("wrong_secret", "order_abc", "pay_xyz", sig))
	assert.False(t, VerifySignature(secret, "order_abc", "pay_xyz", ""))
}

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "key_id", user)
		assert.Equal(t, "key_secret", pass)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(49900), body["amount"], "amount travels in paise")
		assert.Equal(t, "INR", body["currency"])
		receipt, _ := body["receipt"].(string)
		assert.True(t, strings.HasPrefix(receipt, "receipt_"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       "order_abc",
			"amount":   body["amount"],
			"currency": body["currency"],
			"receipt":  receipt,
			"status":   "created",
		})
	}))
	defer srv.Close()

	client := newRazorpayClient(config.RazorpayConfig{KeyID: "key_id", KeySecret: "key_secret"})
	client.baseURL = srv.URL
	client.httpClient = srv.Client()

	order, err := client.CreateOrder(context.Background(), 499, "")
	require.NoError(t, err)
	assert.Equal(t, "order_abc", order.ID)
	assert.Equal(t, int64(49900), order.Amount)
	assert.Equal(t, "created", order.Status)
}

func TestCreateOrderGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"description":"bad key"}}`))
	}))
	defer srv.Close()

	client := newRazorpayClient(config.RazorpayConfig{KeyID: "bad", KeySecret: "bad"})
	client.baseURL = srv.URL
	client.httpClient = srv.Client()

	_, err := client.CreateOrder(context.Background(), 10, "INR")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "razorpay responded 401")
}

func TestCreateOrderTimeoutContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	client := newRazorpayClient(config.RazorpayConfig{})
	client.baseURL = srv.URL
	client.httpClient = srv.Client()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.CreateOrder(ctx, 10, "INR")
	require.Error(t, err)
}
