package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCreateOrder(t *testing.T) {
	var gotAuth string
	var gotBody createOrderRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Order{
			OrderID:  "order_abc",
			Currency: gotBody.Currency,
			Amount:   gotBody.Amount,
		})
	}))
	defer srv.Close()

	c := NewClient("key_id", "key_secret", srv.URL)
	order, err := c.CreateOrder(context.Background(), 50000, "INR", "receipt_1")
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	if order.OrderID != "order_abc" {
		t.Errorf("OrderID = %q", order.OrderID)
	}
	if order.Amount != 50000 || order.Currency != "INR" {
		t.Errorf("order = %+v", order)
	}
	if gotBody.Amount != 50000 || gotBody.Receipt != "receipt_1" {
		t.Errorf("request body = %+v", gotBody)
	}
	if !strings.HasPrefix(gotAuth, "Basic ") {
		t.Errorf("Authorization = %q, want basic auth", gotAuth)
	}
}

func TestCreateOrder_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient("bad", "creds", srv.URL)
	if _, err := c.CreateOrder(context.Background(), 100, "INR", "r"); err == nil {
		t.Fatal("expected error for non-2xx gateway response")
	}
}
