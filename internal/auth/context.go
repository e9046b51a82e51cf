package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxUserID = "user_id"
)

// UserID extracts the authenticated user id from the Gin context.
// This is set by Gate.
func UserID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserID))
}

func SetUserID(c *gin.Context, id string) {
	c.Set(CtxUserID, id)
}
