package api

import (
	"log/slog"
	"net/http"

	"stamp-rally/internal/handler/httperr"
	"stamp-rally/internal/pkg/config"
	"stamp-rally/internal/pkg/cookie"
	"stamp-rally/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const maxLoggedStackLines = 8

// abortWithUsecaseError maps err to a response. A credential the authority no longer accepts
// is dropped from the browser so the next request runs as a guest.
func abortWithUsecaseError(c *gin.Context, cookieCfg config.CookieConfig, err error, fallbackMsg string) {
	if errs.Is(err, errs.ErrAuthExpired) {
		cookie.ClearAccessToken(c, cookieCfg)
	}
	if httperr.StatusOf(err) >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), fallbackMsg,
			slog.String("path", c.Request.URL.Path),
			slog.String("error", err.Error()),
			slog.Any("stack", errs.ExtractStackLines(err, maxLoggedStackLines)))
	}
	httperr.AbortWithMappedError(c, err, fallbackMsg)
}
