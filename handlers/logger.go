package handlers

import (
	"voltpath/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger returns a request-scoped logger when middleware installed one,
// otherwise the global logger.
func getLogger(c *gin.Context) *zap.Logger {
	if l, ok := c.Get("logger"); ok {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}
