package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httpapi "github.com/uptask/uptask-backend/internal/api/http"
	"github.com/uptask/uptask-backend/internal/auth"
	"github.com/uptask/uptask-backend/internal/tasks/domain"
)

var taskMessages = httpapi.Messages{
	"name":     domain.MsgNameRequired,
	"proyecto": domain.MsgProjectRequired,
}

type createReq struct {
	Project string `json:"proyecto" binding:"required"`
	Name    string `json:"name" binding:"required"`
	State   *bool  `json:"state"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := httpapi.BindJSON(c, &req, taskMessages); err != nil {
		httpapi.WriteError(c, h.log, err)
		return
	}

	t, err := h.svc.Create(c.Request.Context(), auth.UserID(c), req.Project, req.Name, req.State)
	if err != nil {
		httpapi.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tarea": t})
}

type projectQuery struct {
	Project string `form:"proyecto" binding:"required"`
}

func (h *Handler) list(c *gin.Context) {
	var q projectQuery
	if err := httpapi.BindQuery(c, &q, taskMessages); err != nil {
		httpapi.WriteError(c, h.log, err)
		return
	}

	items, err := h.svc.List(c.Request.Context(), auth.UserID(c), q.Project)
	if err != nil {
		httpapi.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tareas": items})
}

type updateReq struct {
	Project string  `json:"proyecto"`
	Name    *string `json:"name"`
	State   *bool   `json:"state"`
}

func (h *Handler) update(c *gin.Context) {
	var req updateReq
	if err := httpapi.BindJSON(c, &req, taskMessages); err != nil {
		httpapi.WriteError(c, h.log, err)
		return
	}

	patch := domain.TaskPatch{Name: req.Name, State: req.State}
	t, err := h.svc.Update(c.Request.Context(), auth.UserID(c), c.Param("id"), req.Project, patch)
	if err != nil {
		httpapi.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"existeTarea": t})
}

func (h *Handler) delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), auth.UserID(c), c.Param("id"), c.Query("proyecto"))
	if err != nil {
		httpapi.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": domain.MsgDeleted})
}
