package httperr

import (
	"errors"
	"net/http"

	"stamp-rally/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		err = errors.New(msg)
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// StatusOf maps usecase sentinels to HTTP statuses.
func StatusOf(err error) int {
	switch {
	case errs.Is(err, errs.ErrInvalidInput):
		return http.StatusBadRequest
	case errs.Is(err, errs.ErrAuthExpired), errs.Is(err, errs.ErrAuthRequired):
		return http.StatusUnauthorized
	case errs.Is(err, errs.ErrRewardNotFound), errs.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errs.Is(err, errs.ErrClaimRejected):
		return http.StatusConflict
	case errs.Is(err, errs.ErrRemoteUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// AbortWithMappedError derives the status from err and prefers the authority's own message
// over fallbackMsg when one is attached. 5xx responses never echo upstream text.
func AbortWithMappedError(c *gin.Context, err error, fallbackMsg string) {
	status := StatusOf(err)
	msg := fallbackMsg
	if userMsg := errs.UserMessage(err); userMsg != "" && status < http.StatusInternalServerError {
		msg = userMsg
	}
	AbortWithError(c, status, err, msg, nil)
}
