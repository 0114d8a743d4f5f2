//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"

	"stamp-rally/internal/handler/dto/request"
	"stamp-rally/internal/pkg/cookie"
	"stamp-rally/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// LoginUser logs in through the router and returns the cookies a browser would keep.
func LoginUser(t *testing.T, router *gin.Engine, username, password string) []*http.Cookie {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/login",
		request.LoginRequest{Username: username, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	accessCookie := httptest.ExtractCookie(w, cookie.AccessTokenCookieName)
	require.NotNil(t, accessCookie, "Access token not found in cookies")
	require.NotEmpty(t, accessCookie.Value, "Access token cookie is empty")

	return w.Result().Cookies()
}

// GuestCookies performs one request and returns the guest session cookie it was issued.
func GuestCookies(t *testing.T, router *gin.Engine) []*http.Cookie {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodGet, "/api/rewards/catalog", nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	guest := httptest.ExtractCookie(w, cookie.GuestSessionCookieName)
	require.NotNil(t, guest, "Guest session cookie was not issued")
	return []*http.Cookie{guest}
}

func LogoutUser(t *testing.T, router *gin.Engine, cookies []*http.Cookie) {
	t.Helper()

	w := httptest.PerformRequestWithCookies(t, router, http.MethodPost, "/api/auth/logout", nil, cookies, "")
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
}
