package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"atstay/services/payment"
	"atstay/utils"
)

// PaymentHandler exposes payment order creation, verification and the
// gateway webhook.
type PaymentHandler struct {
	Service payment.PaymentService
	Logger  *zap.Logger
}

func NewPaymentHandler(svc payment.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{Service: svc, Logger: logger}
}

// CreateOrder handles POST /api/payments/create-order.
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var input struct {
		BookingID string `json:"bookingId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
		return
	}

	order, err := h.Service.CreateOrder(c.Request.Context(), input.BookingID, userID)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}

	h.Logger.Info("payment order created",
		zap.String("orderID", order.OrderID),
		zap.Float64("amount", order.OrderAmount))

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"message":          "Payment order created successfully",
		"orderId":          order.OrderID,
		"cfOrderId":        order.CfOrderID,
		"paymentSessionId": order.PaymentSessionID,
		"orderAmount":      order.OrderAmount,
		"paymentLink":      order.PaymentLink,
	})
}

// VerifyPayment handles GET /api/payments/verify/:orderId. The principal is
// optional; when present it must own the booking.
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	orderID := c.Param("orderId")

	result, err := h.Service.Verify(c.Request.Context(), orderID, currentUserID(c))
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"paymentStatus": result.PaymentStatus,
		"isPaid":        result.IsPaid,
		"booking":       result.Booking,
	})
}

// Webhook handles POST /api/payments/webhook. It always acknowledges with
// 200 so the gateway never retry-storms; failures are only logged.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.Logger.Error("failed to read webhook body", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Webhook processing failed"})
		return
	}

	if err := h.Service.HandleWebhook(c.Request.Context(), body); err != nil {
		h.Logger.Error("webhook processing failed", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Webhook processing failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Webhook received"})
}
