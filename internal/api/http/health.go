package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// PingFunc reports whether the backing store is reachable.
type PingFunc func(ctx context.Context) error

type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Service     string    `json:"service"`
	Version     string    `json:"version"`
	Store       string    `json:"store,omitempty"`
	StoreStatus string    `json:"store_status,omitempty"`
}

type HealthHandler struct {
	serviceName string
	version     string
	store       string
	ping        PingFunc
}

func NewHealthHandler(serviceName, version, store string, ping PingFunc) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		store:       store,
		ping:        ping,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	status := "healthy"
	storeStatus := "disabled"
	if h.ping != nil {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		if err := h.ping(pingCtx); err != nil {
			storeStatus = "down"
			status = "degraded"
		} else {
			storeStatus = "up"
		}
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:      status,
		Timestamp:   time.Now().UTC(),
		Service:     h.serviceName,
		Version:     h.version,
		Store:       h.store,
		StoreStatus: storeStatus,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
