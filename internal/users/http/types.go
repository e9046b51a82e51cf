package http

import (
	"go.uber.org/zap"

	"github.com/uptask/uptask-backend/internal/users/service"
)

// Handler bundles the dependencies for account HTTP endpoints.
type Handler struct {
	svc *service.UserService
	log *zap.Logger
}

func New(svc *service.UserService, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}
