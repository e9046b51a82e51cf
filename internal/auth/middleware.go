package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	HeaderAuthToken = "x-auth-token"

	MsgMissingToken = "No hay token, permiso no válido"
	MsgInvalidToken = "Token no válido"
)

// Gate rejects requests without a valid token and records the caller's id
// for downstream handlers.
func Gate(v Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": MsgMissingToken})
			return
		}

		userID, err := v.Verify(c.Request.Context(), token)
		if err != nil || strings.TrimSpace(userID) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": MsgInvalidToken})
			return
		}

		SetUserID(c, userID)
		c.Next()
	}
}

// extractToken reads x-auth-token first, then a Bearer Authorization header.
func extractToken(c *gin.Context) string {
	if t := strings.TrimSpace(c.GetHeader(HeaderAuthToken)); t != "" {
		return t
	}
	bearer := c.GetHeader("Authorization")
	if len(bearer) > 7 && strings.EqualFold(bearer[:7], "Bearer ") {
		return strings.TrimSpace(bearer[7:])
	}
	return ""
}
