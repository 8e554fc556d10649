package middleware

import (
	"net/http"
	"strings"

	"voltpath/utils"

	"github.com/gin-gonic/gin"
)

// OnboardingSessionMiddleware resolves the signed session token from the
// Authorization header and puts the session ID on the request context. Every
// onboarding endpoint after /start runs behind it.
func OnboardingSessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Missing onboarding session token",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		sessionID, err := utils.ExtractSessionIDFromToken(tokenString)
		if err != nil || sessionID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired onboarding session token",
			})
			return
		}

		c.Set("sessionID", sessionID)
		c.Next()
	}
}
