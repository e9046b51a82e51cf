package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httpapi "github.com/uptask/uptask-backend/internal/api/http"
	"github.com/uptask/uptask-backend/internal/auth"
	"github.com/uptask/uptask-backend/internal/projects/domain"
)

var projectMessages = httpapi.Messages{
	"name": domain.MsgNameRequired,
}

type createReq struct {
	Name string `json:"name" binding:"required"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := httpapi.BindJSON(c, &req, projectMessages); err != nil {
		httpapi.WriteError(c, h.log, err)
		return
	}

	p, err := h.svc.Create(c.Request.Context(), auth.UserID(c), req.Name)
	if err != nil {
		httpapi.WriteError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), auth.UserID(c))
	if err != nil {
		httpapi.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"proyectos": items})
}

type updateReq struct {
	Name *string `json:"name"`
}

func (h *Handler) update(c *gin.Context) {
	var req updateReq
	if err := httpapi.BindJSON(c, &req, projectMessages); err != nil {
		httpapi.WriteError(c, h.log, err)
		return
	}

	p, err := h.svc.Update(c.Request.Context(), c.Param("id"), auth.UserID(c), domain.ProjectPatch{Name: req.Name})
	if err != nil {
		httpapi.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"proyecto": p})
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), auth.UserID(c)); err != nil {
		httpapi.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": domain.MsgDeleted})
}
