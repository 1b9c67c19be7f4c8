package middleware

import (
	"net/http"
	"strings"

	"authorsheaven/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware rejects requests without a valid bearer token and stores
// the caller's identity on the context.
func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := bearerToken(ctx)
		if token == "" {
			ctx.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Authentication credentials were not provided"})
			ctx.Abort()
			return
		}
		userID, username, err := utils.ParseJWT(token)
		if err != nil {
			ctx.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Invalid or expired token"})
			ctx.Abort()
			return
		}
		ctx.Set("userID", userID)
		ctx.Set("username", username)
		ctx.Next()
	}
}

// OptionalAuthMiddleware parses a token when one is supplied but lets
// anonymous readers through. Read endpoints use it so the rating view can
// include the caller's own value only when authenticated.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if token := bearerToken(ctx); token != "" {
			if userID, username, err := utils.ParseJWT(token); err == nil {
				ctx.Set("userID", userID)
				ctx.Set("username", username)
			}
		}
		ctx.Next()
	}
}

func bearerToken(ctx *gin.Context) string {
	header := ctx.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
