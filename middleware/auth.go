package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"freightbook/utils"
)

// JWTAuthMiddleware authenticates the caller from a Bearer token and places
// the user ID in the context. Revoked tokens are tracked in the auth cache by
// their hash.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil {
			zap.L().Warn("Token validation failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		revoked, err := utils.GetAuthCacheClient().Exists(ctx, "revoked:"+utils.HashToken(tokenString)).Result()
		if err == nil && revoked > 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token has been revoked"})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
