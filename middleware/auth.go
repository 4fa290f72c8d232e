package middleware

import (
	"net/http"
	"strings"

	"github.com/CHgh0sts/LotoSocket/utils/jwtauth"

	"github.com/gin-gonic/gin"
)

const CtxUserID = "auth_user_id"

// Authentication validates the Bearer token and stores the user id in the
// gin context.
func Authentication(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authorization := c.GetHeader("Authorization")
		if authorization == "" {
			if token := c.Query("token"); token != "" {
				authorization = "Bearer " + token
			}
		}
		if authorization == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token d'authentification requis"})
			return
		}

		parts := strings.Split(authorization, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token invalide"})
			return
		}

		data, err := jwtauth.IdentifyToken(secret, parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token invalide"})
			return
		}

		c.Set(CtxUserID, data.UserID)
		c.Next()
	}
}

// UserID returns the authenticated user id stored by Authentication.
func UserID(c *gin.Context) string {
	if v, ok := c.Get(CtxUserID); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
