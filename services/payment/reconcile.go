package payment

import (
	"context"
	"encoding/json"
	"strings"

	"atstay/models"
	"atstay/utils"

	"go.uber.org/zap"
)

// Webhook event types delivered by the gateway.
const (
	eventPaymentSuccess     = "PAYMENT_SUCCESS"
	eventPaymentFailed      = "PAYMENT_FAILED"
	eventPaymentUserDropped = "PAYMENT_USER_DROPPED"
)

// webhookEvent is the strict boundary shape of gateway webhook payloads.
type webhookEvent struct {
	Event string `json:"event"`
	Data  struct {
		Order struct {
			OrderID string `json:"order_id"`
		} `json:"order"`
		Payment struct {
			PaymentStatus string `json:"payment_status"`
		} `json:"payment"`
	} `json:"data"`
}

// applyGatewayStatus is the single state transition rule shared by both
// reconciliation entry points. SUCCESS confirms the booking and is a one-way
// latch; FAILED leaves the booking payable; anything else is a no-op.
// Applying the same terminal status twice converges on identical state.
func (s *DefaultPaymentService) applyGatewayStatus(ctx context.Context, booking *models.Booking, gatewayStatus string) error {
	switch gatewayStatus {
	case GatewayStatusSuccess:
		if err := s.Bookings.ApplyPaymentSuccess(ctx, booking.ID); err != nil {
			return utils.InternalError("Failed to record payment success", err)
		}
		booking.IsPaid = true
		booking.PaymentStatus = models.PaymentStatusSuccess
		booking.Status = models.BookingStatusConfirmed
	case GatewayStatusFailed:
		if booking.PaymentStatus == models.PaymentStatusSuccess {
			// A landed success is never overwritten by a stale FAILED read.
			return nil
		}
		if err := s.Bookings.ApplyPaymentFailure(ctx, booking.ID); err != nil {
			return utils.InternalError("Failed to record payment failure", err)
		}
		booking.PaymentStatus = models.PaymentStatusFailed
	default:
		// pending / unknown: no mutation
	}
	return nil
}

func (s *DefaultPaymentService) Verify(ctx context.Context, orderID, userID string) (*models.PaymentVerification, error) {
	if orderID == "" {
		return nil, utils.ValidationError("Order ID is required")
	}

	booking, err := s.Bookings.GetByPaymentID(ctx, orderID)
	if err != nil {
		return nil, utils.InternalError("Failed to load booking", err)
	}
	if booking == nil {
		return nil, utils.NotFoundError("Booking not found for this order")
	}
	// Webhook-triggered verification carries no user context.
	if userID != "" && booking.UserID != userID {
		return nil, utils.ForbiddenError("This booking doesn't belong to you")
	}

	status, err := s.Gateway.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if len(status.Payments) == 0 {
		// No payment attempt yet; report the locally stored state.
		return &models.PaymentVerification{
			PaymentStatus: booking.PaymentStatus,
			IsPaid:        booking.IsPaid,
			Booking:       booking,
		}, nil
	}

	latest := status.Payments[len(status.Payments)-1]
	if err := s.applyGatewayStatus(ctx, booking, latest.PaymentStatus); err != nil {
		return nil, err
	}

	paymentStatus := strings.ToLower(latest.PaymentStatus)
	if paymentStatus == "" {
		paymentStatus = models.PaymentStatusPending
	}
	if booking.PaymentStatus == models.PaymentStatusSuccess {
		// The latch wins over whatever the stale gateway read said.
		paymentStatus = models.PaymentStatusSuccess
	}

	return &models.PaymentVerification{
		PaymentStatus: paymentStatus,
		IsPaid:        booking.IsPaid,
		Booking:       booking,
	}, nil
}

// HandleWebhook parses a pushed gateway event and applies the shared state
// transition. The HTTP handler acknowledges with 200 regardless of the
// returned error, which exists for logging only.
func (s *DefaultPaymentService) HandleWebhook(ctx context.Context, body []byte) error {
	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return utils.UpstreamError("unrecognized webhook payload", err)
	}

	switch event.Event {
	case eventPaymentSuccess, eventPaymentFailed, eventPaymentUserDropped:
	default:
		utils.GetLogger().Debug("ignoring webhook event", zap.String("event", event.Event))
		return nil
	}

	orderID := event.Data.Order.OrderID
	if orderID == "" {
		return utils.UpstreamError("webhook payload missing order id", nil)
	}

	booking, err := s.Bookings.GetByPaymentID(ctx, orderID)
	if err != nil {
		return utils.InternalError("Failed to load booking", err)
	}
	if booking == nil {
		// Possibly a retried order id superseded by a newer attempt.
		utils.GetLogger().Warn("webhook for unknown order", zap.String("orderID", orderID))
		return nil
	}

	return s.applyGatewayStatus(ctx, booking, event.Data.Payment.PaymentStatus)
}
