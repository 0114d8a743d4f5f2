package middleware

import (
	"log/slog"
	"net/http"

	"stamp-rally/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last public error a handler attached when nothing was written yet.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		for i := len(c.Errors) - 1; i >= 0; i-- {
			if resp, ok := c.Errors[i].Meta.(httperr.Response); ok && c.Errors[i].IsType(gin.ErrorTypePublic) {
				c.JSON(resp.Status, resp)
				return
			}
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		var cause error
		if last := c.Errors.Last(); last != nil {
			cause = last.Err
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, cause, "Internal server error", nil)
	}
}

func CustomRecovery(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.ErrorContext(c.Request.Context(), "Recovered from panic",
			slog.Any("panic", recovered),
			slog.String("path", c.Request.URL.Path),
			slog.String("request_id", GetRequestID(c)))

		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
	})
}
