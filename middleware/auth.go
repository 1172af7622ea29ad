package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	userRepo "atstay/database/repository/user"
	"atstay/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ContextUserIDKey is the gin context key carrying the authenticated user id.
const ContextUserIDKey = "userID"

// JWTAuthMiddleware validates the bearer token, checking its hash against the
// Redis auth cache first and falling back to signature validation plus a DB
// existence check on cache miss. When required is false, requests without a
// valid token proceed with no principal set.
func JWTAuthMiddleware(users userRepo.UserRepository, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := utils.GetLogger()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			if required {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
				return
			}
			c.Next()
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := utils.ExtractUserIDFromToken(tokenString)
		if err != nil || userID == "" {
			if required {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
				return
			}
			c.Next()
			return
		}

		computedHash := utils.HashToken(tokenString)
		cacheKey := utils.AuthCachePrefix + userID
		ctx := context.Background()

		authCache := utils.GetAuthCacheClient()
		if authCache != nil {
			cachedHash, err := authCache.Get(ctx, cacheKey).Result()
			if err == nil {
				if cachedHash == computedHash {
					_ = authCache.Expire(ctx, cacheKey, time.Hour).Err()
					c.Set(ContextUserIDKey, userID)
					c.Next()
					return
				}
				// A different valid token for the same user (new login);
				// fall through to the DB check.
			} else if err != redis.Nil {
				logger.Warn("auth cache lookup failed, falling back to DB", zap.Error(err))
			}
		}

		// Cache miss: confirm the account still exists, then re-cache.
		usr, err := users.GetByID(ctx, userID)
		if err != nil || usr == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication error"})
			return
		}
		if authCache != nil {
			_ = authCache.Set(ctx, cacheKey, computedHash, time.Hour).Err()
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}
