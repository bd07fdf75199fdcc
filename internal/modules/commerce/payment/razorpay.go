package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/subkart/core/internal/config"
)

const razorpayBaseURL = "https://api.razorpay.com/v1"

// razorpayClient talks to the Razorpay orders REST API directly. Only order
// creation is needed; capture happens on the client and is proven to us by
// the signature.
type razorpayClient struct {
	cfg        config.RazorpayConfig
	httpClient *http.Client
	baseURL    string
}

func newRazorpayClient(cfg config.RazorpayConfig) *razorpayClient {
	return &razorpayClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    razorpayBaseURL,
	}
}

// CreateOrder registers an order with the gateway. Amount is rupees and is
// converted to paise on the wire.
func (r *razorpayClient) CreateOrder(ctx context.Context, amount float64, currency string) (*gatewayOrder, error) {
	if currency == "" {
		currency = "INR"
	}
	payload, err := json.Marshal(map[string]interface{}{
		"amount":   int64(amount * 100),
		"currency": currency,
		"receipt":  "receipt_" + uuid.NewString(),
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(r.cfg.KeyID, r.cfg.KeySecret)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("razorpay request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("razorpay responded %d: %s", resp.StatusCode, body)
	}

	var order gatewayOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("decode razorpay order: %w", err)
	}
	return &order, nil
}
