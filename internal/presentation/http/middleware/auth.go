package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lnprasad/invoice-api/internal/presentation/http/dto/response"
	"github.com/lnprasad/invoice-api/pkg/utils"
)

// SessionAuth creates a middleware that requires a valid session token
func SessionAuth(sessions *utils.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := sessions.Validate(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired session")
			c.Abort()
			return
		}

		c.Set("session_subject", claims.Subject)
		c.Next()
	}
}
