package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"atstay/services/user"
	"atstay/utils"
)

// UserHandler exposes account registration and authentication.
type UserHandler struct {
	Service user.UserService
	Logger  *zap.Logger
}

func NewUserHandler(svc user.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{Service: svc, Logger: logger}
}

// Register handles POST /api/users/register.
func (h *UserHandler) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		Phone    string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	resp, err := h.Service.Register(c.Request.Context(), req.Username, req.Email, req.Password, req.Phone)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}

	h.Logger.Info("user registered", zap.String("userID", resp.User.ID))
	c.JSON(http.StatusCreated, gin.H{"success": true, "token": resp.Token, "user": resp.User})
}

// Login handles POST /api/users/login.
func (h *UserHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	resp, err := h.Service.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "token": resp.Token, "user": resp.User})
}

// Me handles GET /api/users/me.
func (h *UserHandler) Me(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
		return
	}

	usr, err := h.Service.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": usr})
}

// UpdateFCMToken handles PUT /api/users/fcm-token.
func (h *UserHandler) UpdateFCMToken(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
		return
	}

	if err := h.Service.UpdateFCMToken(c.Request.Context(), userID, req.Token); err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "FCM token updated"})
}
