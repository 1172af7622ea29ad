package handlers

import (
	"github.com/gin-gonic/gin"

	"atstay/middleware"
)

// currentUserID returns the authenticated principal's id, or "" when the
// request carries no principal.
func currentUserID(c *gin.Context) string {
	v, ok := c.Get(middleware.ContextUserIDKey)
	if !ok {
		return ""
	}
	id, _ := v.(string)
	return id
}
