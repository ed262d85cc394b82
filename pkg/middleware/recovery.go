package middleware

import (
	"net/http"

	"github.com/LeonR92/kafka/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryHandler is a panic recovery middleware
func RecoveryHandler(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, apierrors.NewInternalError("internal server error"))
	})
}
