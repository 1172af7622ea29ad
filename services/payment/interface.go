package payment

import (
	"context"

	"atstay/models"
)

// Gateway-reported payment statuses.
const (
	GatewayStatusSuccess = "SUCCESS"
	GatewayStatusFailed  = "FAILED"
	GatewayStatusPending = "PENDING"
)

// OrderRequest is the gateway order creation payload. The amount is numeric;
// a string-typed amount is a protocol violation.
type OrderRequest struct {
	OrderID         string          `json:"order_id"`
	OrderAmount     float64         `json:"order_amount"`
	OrderCurrency   string          `json:"order_currency"`
	OrderNote       string          `json:"order_note,omitempty"`
	CustomerDetails CustomerDetails `json:"customer_details"`
	OrderMeta       OrderMeta       `json:"order_meta"`
}

type CustomerDetails struct {
	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
}

type OrderMeta struct {
	ReturnURL      string `json:"return_url"`
	NotifyURL      string `json:"notify_url"`
	PaymentMethods string `json:"payment_methods,omitempty"`
}

// OrderResponse is the parsed gateway response to order creation.
type OrderResponse struct {
	OrderID          string `json:"order_id"`
	CfOrderID        string `json:"cf_order_id"`
	OrderStatus      string `json:"order_status"`
	PaymentSessionID string `json:"payment_session_id"`
	PaymentLink      string `json:"payment_link,omitempty"`
}

// OrderStatusResponse is the parsed gateway response to an order status query.
type OrderStatusResponse struct {
	OrderID     string        `json:"order_id"`
	OrderStatus string        `json:"order_status"`
	Payments    []PaymentInfo `json:"payments"`
}

type PaymentInfo struct {
	CfPaymentID   string  `json:"cf_payment_id"`
	PaymentStatus string  `json:"payment_status"`
	PaymentAmount float64 `json:"payment_amount"`
}

// Gateway abstracts the external payment provider.
type Gateway interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*OrderResponse, error)
	GetOrder(ctx context.Context, orderID string) (*OrderStatusResponse, error)
}

// PaymentService orchestrates gateway orders for bookings and reconciles the
// gateway's asynchronous outcome back onto the booking record.
type PaymentService interface {
	// CreateOrder creates a gateway order for an unpaid booking owned by userID.
	CreateOrder(ctx context.Context, bookingID, userID string) (*models.PaymentOrder, error)

	// Verify pulls the order's status from the gateway and applies the state
	// transition. userID may be empty for webhook-triggered verification.
	Verify(ctx context.Context, orderID, userID string) (*models.PaymentVerification, error)

	// HandleWebhook applies a pushed gateway event. Errors are reported to the
	// caller for logging only; the HTTP handler always acknowledges with 200.
	HandleWebhook(ctx context.Context, body []byte) error
}
