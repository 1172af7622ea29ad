package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"atstay/services/hotel"
	"atstay/utils"
)

// HotelHandler exposes hotel registration.
type HotelHandler struct {
	Service hotel.HotelService
	Logger  *zap.Logger
}

func NewHotelHandler(svc hotel.HotelService, logger *zap.Logger) *HotelHandler {
	return &HotelHandler{Service: svc, Logger: logger}
}

// RegisterHotel handles POST /api/hotels.
func (h *HotelHandler) RegisterHotel(c *gin.Context) {
	var req hotel.RegisterHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
		return
	}

	created, err := h.Service.RegisterHotel(c.Request.Context(), userID, req)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}

	h.Logger.Info("hotel registered", zap.String("hotelID", created.ID), zap.String("ownerID", userID))
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Hotel registered successfully", "hotel": created})
}
