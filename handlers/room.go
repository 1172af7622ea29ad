package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"atstay/services/hotel"
	"atstay/utils"
)

// RoomHandler exposes room catalog management.
type RoomHandler struct {
	Service hotel.HotelService
	Logger  *zap.Logger
}

func NewRoomHandler(svc hotel.HotelService, logger *zap.Logger) *RoomHandler {
	return &RoomHandler{Service: svc, Logger: logger}
}

// CreateRoom handles POST /api/rooms (multipart form with images).
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
		return
	}

	price, err := strconv.ParseFloat(c.PostForm("pricePerNight"), 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "pricePerNight must be a number", "")
		return
	}

	var amenities []string
	if raw := c.PostForm("amenities"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &amenities); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "amenities must be a JSON array of strings", "")
			return
		}
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid multipart form", err.Error())
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "Please upload at least one image", "")
		return
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		dst := filepath.Join(os.TempDir(), uuid.New().String()+filepath.Ext(f.Filename))
		if err := c.SaveUploadedFile(f, dst); err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "Failed to save uploaded file", err.Error())
			return
		}
		defer os.Remove(dst)
		paths = append(paths, dst)
	}

	room, err := h.Service.CreateRoom(c.Request.Context(), userID, hotel.CreateRoomRequest{
		RoomType:      c.PostForm("roomType"),
		PricePerNight: price,
		Amenities:     amenities,
		ImagePaths:    paths,
	})
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}

	h.Logger.Info("room created", zap.String("roomID", room.ID), zap.String("hotelID", room.HotelID))
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Room created successfully", "room": room})
}

// GetRooms handles GET /api/rooms.
func (h *RoomHandler) GetRooms(c *gin.Context) {
	rooms, err := h.Service.ListAvailableRooms(c.Request.Context())
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "rooms": rooms})
}

// GetOwnerRooms handles GET /api/rooms/owner/list.
func (h *RoomHandler) GetOwnerRooms(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
		return
	}

	rooms, err := h.Service.ListOwnerRooms(c.Request.Context(), userID)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "rooms": rooms})
}

// GetRoomByID handles GET /api/rooms/:id.
func (h *RoomHandler) GetRoomByID(c *gin.Context) {
	room, err := h.Service.GetRoom(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "room": room})
}

// ToggleRoomAvailability handles POST /api/rooms/toggle-availability.
func (h *RoomHandler) ToggleRoomAvailability(c *gin.Context) {
	var input struct {
		RoomID string `json:"roomId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.RoomID == "" {
		utils.JSONError(c, http.StatusBadRequest, "roomId is required", "")
		return
	}

	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
		return
	}

	if err := h.Service.ToggleRoomAvailability(c.Request.Context(), userID, input.RoomID); err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Room availability updated"})
}
