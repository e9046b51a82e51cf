package http_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	httpapi "github.com/uptask/uptask-backend/internal/api/http"
	"github.com/uptask/uptask-backend/internal/apperror"
)

func renderError(t *testing.T, log *zap.Logger, err error) (int, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rr := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rr)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/proyectos", nil)
	httpapi.WriteError(c, log, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return rr.Code, body
}

func TestWriteError_Kinds(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"not found", apperror.NotFound("Proyecto no encontrado"), http.StatusNotFound, "Proyecto no encontrado"},
		{"unauthorized", fmt.Errorf("wrapped: %w", apperror.Unauthorized("No autorizado")), http.StatusUnauthorized, "No autorizado"},
		{"conflict", apperror.Conflict("El usuario ya existe"), http.StatusBadRequest, "El usuario ya existe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := renderError(t, zap.NewNop(), tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.msg, body["msg"])
		})
	}
}

func TestWriteError_Validation(t *testing.T) {
	status, body := renderError(t, zap.NewNop(), apperror.Field("name", "El nombre del proyecto es obligatorio"))
	assert.Equal(t, http.StatusBadRequest, status)

	errs, ok := body["errores"].([]any)
	require.True(t, ok)
	require.Len(t, errs, 1)
	first := errs[0].(map[string]any)
	assert.Equal(t, "name", first["field"])
	assert.Equal(t, "El nombre del proyecto es obligatorio", first["msg"])
}

func TestWriteError_InternalIsLoggedNotLeaked(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)

	status, body := renderError(t, zap.New(core), errors.New("dial tcp 10.0.0.5:5432: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, apperror.MsgInternal, body["msg"])

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "request failed", entry.Message)
	assert.Equal(t, "/api/proyectos", entry.ContextMap()["path"])
	assert.Contains(t, entry.ContextMap()["error"], "connection refused")
}
