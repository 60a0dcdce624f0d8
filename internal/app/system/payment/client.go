// internal/app/system/payment/client.go

// Package payment holds the payment-gateway order client and the local
// signature verification used by the enrollment workflow.
package payment

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Order is the gateway's answer to an order-creation request. Amount is in
// minor units (price × 100).
type Order struct {
	OrderID  string `json:"id"`
	Currency string `json:"currency"`
	Amount   int    `json:"amount"`
	Receipt  string `json:"receipt,omitempty"`
}

// Client talks to the payment gateway's REST API with basic auth.
type Client struct {
	keyID      string
	secret     string
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a gateway client. baseURL is configurable so tests can
// point it at a local stub.
func NewClient(keyID, secret, baseURL string) *Client {
	return &Client{
		keyID:      keyID,
		secret:     secret,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type createOrderRequest struct {
	Amount   int    `json:"amount"` // minor units
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// CreateOrder asks the gateway for a new order over the given amount in
// minor units. No local state changes; the caller holds the returned order
// id until the client-side payment flow completes.
func (c *Client) CreateOrder(ctx context.Context, amountMinor int, currency, receipt string) (Order, error) {
	body := createOrderRequest{Amount: amountMinor, Currency: currency, Receipt: receipt}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return Order{}, fmt.Errorf("encode order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", &buf)
	if err != nil {
		return Order{}, fmt.Errorf("build order request: %w", err)
	}
	auth := base64.StdEncoding.EncodeToString([]byte(c.keyID + ":" + c.secret))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Order{}, fmt.Errorf("order request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return Order{}, fmt.Errorf("gateway returned unexpected status: %s", resp.Status)
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return Order{}, fmt.Errorf("decode order response: %w", err)
	}
	return order, nil
}
