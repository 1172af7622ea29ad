package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"atstay/services/booking"
	"atstay/utils"
)

// BookingHandler exposes availability checks and the booking lifecycle.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// CheckAvailability handles POST /api/bookings/check-availability.
func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	var input struct {
		Room         string `json:"room"`
		CheckInDate  string `json:"checkInDate"`
		CheckOutDate string `json:"checkOutDate"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if input.Room == "" || input.CheckInDate == "" || input.CheckOutDate == "" {
		utils.JSONError(c, http.StatusBadRequest, "Room, checkInDate, and checkOutDate are required", "")
		return
	}

	checkIn, checkOut, err := booking.ParseStayDates(input.CheckInDate, input.CheckOutDate)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}

	available, err := h.Service.IsAvailable(c.Request.Context(), input.Room, checkIn, checkOut)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "isAvailable": available})
}

// CreateBooking handles POST /api/bookings/book.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req booking.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
		return
	}

	b, err := h.Service.CreateBooking(c.Request.Context(), userID, req)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}

	h.Logger.Info("booking created",
		zap.String("bookingID", b.ID),
		zap.String("roomID", b.RoomID),
		zap.Float64("totalPrice", b.TotalPrice))

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"message":   "Booking created successfully.",
		"bookingId": b.ID,
	})
}

// GetUserBookings handles GET /api/bookings/user.
func (h *BookingHandler) GetUserBookings(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
		return
	}

	bookings, err := h.Service.ListUserBookings(c.Request.Context(), userID)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "bookings": bookings})
}

// GetHotelBookings handles GET /api/bookings/hotel (owner dashboard).
func (h *BookingHandler) GetHotelBookings(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
		return
	}

	data, err := h.Service.HotelDashboard(c.Request.Context(), userID)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "dashboardData": data})
}
