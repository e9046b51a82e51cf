package http

import (
	"go.uber.org/zap"

	"github.com/uptask/uptask-backend/internal/tasks/service"
)

// Handler bundles the dependencies for tasks HTTP endpoints.
type Handler struct {
	svc *service.TaskService
	log *zap.Logger
}

func New(svc *service.TaskService, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}
