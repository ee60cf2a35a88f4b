package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/igor-kostenevich/woorkroom-BE/domain"
)

// AuthMiddleware validates the access token and confirms the subject still
// exists. The token is taken from the Authorization header first, then from
// the accessToken cookie.
func AuthMiddleware(tokenSvc domain.TokenService, authSvc domain.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
			c.Abort()
			return
		}

		claims, err := tokenSvc.VerifyToken(token)
		if err != nil || claims.UserID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		// A phone verification token is validly signed but must never
		// authenticate a request.
		if claims.Purpose != "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		if err := authSvc.Validate(c.Request.Context(), claims.UserID); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Next()
	}
}

// RequireRole gates a route on the user's role
func RequireRole(authSvc domain.AuthService, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := authSvc.GetProfile(c.Request.Context(), c.GetString("user_id"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Set("user_role", user.Role)
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient role permissions"})
		c.Abort()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	if token, err := c.Cookie("accessToken"); err == nil {
		return token
	}
	return ""
}
