package http

import "github.com/gin-gonic/gin"

// RegisterUsers attaches account creation to /api/usuarios.
func (h *Handler) RegisterUsers(rg *gin.RouterGroup) {
	rg.POST("", h.register)
}

// RegisterAuth attaches login and the current-user lookup to /api/auth.
// Only the lookup sits behind gate.
func (h *Handler) RegisterAuth(rg *gin.RouterGroup, gate gin.HandlerFunc) {
	rg.POST("", h.login)
	rg.GET("", gate, h.me)
}
