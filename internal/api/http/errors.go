package http

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/uptask/uptask-backend/internal/api/http/middleware"
	"github.com/uptask/uptask-backend/internal/apperror"
)

// WriteError renders err as the JSON error body for its kind. Internal
// failures are logged and answered with a generic message.
func WriteError(c *gin.Context, log *zap.Logger, err error) {
	var ae *apperror.Error
	if !errors.As(err, &ae) {
		ae = apperror.Internal(err)
	}
	status := apperror.HTTPStatus(ae.Kind)

	switch ae.Kind {
	case apperror.KindValidation:
		fields := ae.Fields
		if len(fields) == 0 {
			fields = []apperror.FieldError{{Message: ae.Message}}
		}
		c.JSON(status, gin.H{"errores": fields})
	case apperror.KindInternal:
		log.Error("request failed",
			zap.String("request_id", middleware.GetRequestID(c.Request.Context())),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.JSON(status, gin.H{"msg": apperror.MsgInternal})
	default:
		c.JSON(status, gin.H{"msg": ae.Message})
	}
}
