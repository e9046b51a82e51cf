package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpapi "github.com/uptask/uptask-backend/internal/api/http"
)

func serveHealth(t *testing.T, h *httpapi.HealthHandler, method, path string) (*httptest.ResponseRecorder, httpapi.HealthResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	h.RegisterRoutes(router)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(method, path, nil))

	var resp httpapi.HealthResponse
	if rr.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	}
	return rr, resp
}

func TestHealthCheck(t *testing.T) {
	h := httpapi.NewHealthHandler("uptask-api", "1.0.0", "redis", func(context.Context) error { return nil })

	for _, path := range []string{"/health", "/healthz"} {
		rr, resp := serveHealth(t, h, http.MethodGet, path)
		assert.Equal(t, http.StatusOK, rr.Code, path)
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, "uptask-api", resp.Service)
		assert.Equal(t, "1.0.0", resp.Version)
		assert.Equal(t, "redis", resp.Store)
		assert.Equal(t, "up", resp.StoreStatus)
	}
}

func TestHealthCheck_StoreDown(t *testing.T) {
	h := httpapi.NewHealthHandler("uptask-api", "1.0.0", "postgres", func(context.Context) error {
		return errors.New("connection refused")
	})

	rr, resp := serveHealth(t, h, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "down", resp.StoreStatus)
}

func TestHealthCheck_NoStore(t *testing.T) {
	h := httpapi.NewHealthHandler("uptask-api", "1.0.0", "", nil)

	_, resp := serveHealth(t, h, http.MethodGet, "/health")
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "disabled", resp.StoreStatus)
}

func TestHealthCheckMethodNotAllowed(t *testing.T) {
	h := httpapi.NewHealthHandler("uptask-api", "1.0.0", "", nil)

	rr, _ := serveHealth(t, h, http.MethodPost, "/health")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
