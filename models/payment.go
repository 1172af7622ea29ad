package models

// PaymentOrder is the result of creating a gateway order for a booking. The
// session token is gateway-defined opaque data and is passed through verbatim.
type PaymentOrder struct {
	OrderID          string  `json:"orderId"`
	PaymentSessionID string  `json:"paymentSessionId"`
	CfOrderID        string  `json:"cfOrderId,omitempty"`
	OrderAmount      float64 `json:"orderAmount"`
	Currency         string  `json:"currency"`
	PaymentLink      string  `json:"paymentLink,omitempty"`
}

// PaymentVerification is the outcome of reconciling a booking against the
// gateway's reported payment status.
type PaymentVerification struct {
	PaymentStatus string   `json:"paymentStatus"`
	IsPaid        bool     `json:"isPaid"`
	Booking       *Booking `json:"booking,omitempty"`
}
