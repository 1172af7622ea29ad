package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atstay/utils"
)

func newTestCashfreeClient(t *testing.T, handler http.HandlerFunc) *CashfreeClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewCashfreeClient("app-id", "secret-key", "sandbox", srv.Client())
	client.baseURL = srv.URL
	return client
}

func sampleOrderRequest() OrderRequest {
	return OrderRequest{
		OrderID:       "ORDER_bk-42_1756200000000",
		OrderAmount:   7500,
		OrderCurrency: "INR",
		CustomerDetails: CustomerDetails{
			CustomerID:    "user-1",
			CustomerName:  "Asha Rao",
			CustomerPhone: "9812345678",
		},
	}
}

func TestCashfreeCreateOrder(t *testing.T) {
	var gotReq OrderRequest
	var gotHeaders http.Header

	client := newTestCashfreeClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(OrderResponse{
			OrderID:          gotReq.OrderID,
			CfOrderID:        "cf-9001",
			OrderStatus:      "ACTIVE",
			PaymentSessionID: "session_abc123xyz",
		})
	})

	resp, err := client.CreateOrder(context.Background(), sampleOrderRequest())
	require.NoError(t, err)

	assert.Equal(t, "app-id", gotHeaders.Get("x-client-id"))
	assert.Equal(t, "secret-key", gotHeaders.Get("x-client-secret"))
	assert.Equal(t, "2023-08-01", gotHeaders.Get("x-api-version"))
	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))

	assert.Equal(t, "ORDER_bk-42_1756200000000", gotReq.OrderID)
	assert.Equal(t, 7500.0, gotReq.OrderAmount)

	// The session token comes back exactly as the gateway issued it.
	assert.Equal(t, "session_abc123xyz", resp.PaymentSessionID)
	assert.Equal(t, "cf-9001", resp.CfOrderID)
}

func TestCashfreeCreateOrderGatewayError(t *testing.T) {
	client := newTestCashfreeClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"order_id : invalid value","code":"order_id_invalid","type":"invalid_request_error"}`))
	})

	_, err := client.CreateOrder(context.Background(), sampleOrderRequest())
	require.Error(t, err)
	assert.Equal(t, utils.ErrCodeUpstream, utils.ErrorCode(err))
	assert.Contains(t, err.Error(), "order_id : invalid value")
	assert.Contains(t, err.Error(), "order_id_invalid")
}

func TestCashfreeCreateOrderNonJSONError(t *testing.T) {
	client := newTestCashfreeClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>upstream timeout</html>"))
	})

	_, err := client.CreateOrder(context.Background(), sampleOrderRequest())
	require.Error(t, err)
	assert.Equal(t, utils.ErrCodeUpstream, utils.ErrorCode(err))
	assert.Contains(t, err.Error(), "502")
}

func TestCashfreeCreateOrderMissingSessionID(t *testing.T) {
	client := newTestCashfreeClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(OrderResponse{OrderID: "ORDER_bk-42_1", OrderStatus: "ACTIVE"})
	})

	_, err := client.CreateOrder(context.Background(), sampleOrderRequest())
	require.Error(t, err)
	assert.Equal(t, utils.ErrCodeUpstream, utils.ErrorCode(err))
}

func TestCashfreeCreateOrderMalformedSessionID(t *testing.T) {
	client := newTestCashfreeClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(OrderResponse{
			OrderID:          "ORDER_bk-42_1",
			PaymentSessionID: "sess-not-a-real-token",
		})
	})

	_, err := client.CreateOrder(context.Background(), sampleOrderRequest())
	require.Error(t, err)
	assert.Equal(t, utils.ErrCodeUpstream, utils.ErrorCode(err))
}

func TestCashfreeGetOrder(t *testing.T) {
	client := newTestCashfreeClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/orders/ORDER_bk-42_1756200000000", r.URL.Path)
		assert.Equal(t, "2023-08-01", r.Header.Get("x-api-version"))

		json.NewEncoder(w).Encode(OrderStatusResponse{
			OrderID:     "ORDER_bk-42_1756200000000",
			OrderStatus: "PAID",
			Payments: []PaymentInfo{
				{CfPaymentID: "p-1", PaymentStatus: GatewayStatusFailed, PaymentAmount: 7500},
				{CfPaymentID: "p-2", PaymentStatus: GatewayStatusSuccess, PaymentAmount: 7500},
			},
		})
	})

	resp, err := client.GetOrder(context.Background(), "ORDER_bk-42_1756200000000")
	require.NoError(t, err)
	assert.Equal(t, "PAID", resp.OrderStatus)
	require.Len(t, resp.Payments, 2)
	assert.Equal(t, GatewayStatusSuccess, resp.Payments[1].PaymentStatus)
}

func TestCashfreeGetOrderUnrecognizedShape(t *testing.T) {
	client := newTestCashfreeClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"something":"else"}`))
	})

	_, err := client.GetOrder(context.Background(), "ORDER_bk-42_1")
	require.Error(t, err)
	assert.Equal(t, utils.ErrCodeUpstream, utils.ErrorCode(err))
}

func TestCashfreeEnvironmentSelection(t *testing.T) {
	sandbox := NewCashfreeClient("a", "s", "sandbox", nil)
	assert.Equal(t, "https://sandbox.cashfree.com/pg", sandbox.baseURL)

	live := NewCashfreeClient("a", "s", "production", nil)
	assert.Equal(t, "https://api.cashfree.com/pg", live.baseURL)
}
