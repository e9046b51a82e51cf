package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httpapi "github.com/uptask/uptask-backend/internal/api/http"
	"github.com/uptask/uptask-backend/internal/auth"
	"github.com/uptask/uptask-backend/internal/users/domain"
)

var userMessages = httpapi.Messages{
	"name":         domain.MsgNameRequired,
	"email":        domain.MsgEmailInvalid,
	"password":     domain.MsgPasswordLength,
	"password.min": domain.MsgPasswordLength,
	"password.max": domain.MsgPasswordTooLong,
}

type registerReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerReq
	if err := httpapi.BindJSON(c, &req, userMessages); err != nil {
		httpapi.WriteError(c, h.log, err)
		return
	}

	token, err := h.svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		httpapi.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginReq
	if err := httpapi.BindJSON(c, &req, httpapi.Messages{"email": domain.MsgEmailInvalid}); err != nil {
		httpapi.WriteError(c, h.log, err)
		return
	}

	token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httpapi.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *Handler) me(c *gin.Context) {
	u, err := h.svc.Get(c.Request.Context(), auth.UserID(c))
	if err != nil {
		httpapi.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"usuario": u})
}
