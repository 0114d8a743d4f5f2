//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"stamp-rally/internal/domain/session"
	"stamp-rally/internal/handler/middleware"
	"stamp-rally/internal/pkg/config"
	"stamp-rally/internal/pkg/cookie"
	"stamp-rally/internal/pkg/jwt"
	"stamp-rally/tests/common/authtest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func newRouter(captured *session.Session) *gin.Engine {
	return newRouterWith(jwt.NewInspector(secret), captured)
}

func newRouterWith(inspector *jwt.Inspector, captured *session.Session) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := middleware.NewSessionMiddleware(inspector, config.NewTestConfig())

	r := gin.New()
	r.Use(m.Attach())
	r.GET("/open", func(c *gin.Context) {
		*captured = middleware.GetSession(c)
		c.Status(http.StatusOK)
	})
	r.GET("/private", m.RequireAuth(), func(c *gin.Context) {
		*captured = middleware.GetSession(c)
		c.Status(http.StatusOK)
	})
	return r
}

func TestSessionMiddlewareAttach(t *testing.T) {
	t.Run("issues a guest id when the cookie is missing", func(t *testing.T) {
		var got session.Session
		w := httptest.NewRecorder()
		newRouter(&got).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/open", nil))

		require.Equal(t, http.StatusOK, w.Code)
		_, err := uuid.Parse(got.GuestID)
		require.NoError(t, err)
		assert.False(t, got.Authenticated())

		var issued *http.Cookie
		for _, c := range w.Result().Cookies() {
			if c.Name == cookie.GuestSessionCookieName {
				issued = c
			}
		}
		require.NotNil(t, issued)
		assert.Equal(t, got.GuestID, issued.Value)
		assert.True(t, issued.HttpOnly)
	})

	t.Run("keeps a valid guest id and replaces a malformed one", func(t *testing.T) {
		existing := uuid.NewString()
		var got session.Session

		req := httptest.NewRequest(http.MethodGet, "/open", nil)
		req.AddCookie(&http.Cookie{Name: cookie.GuestSessionCookieName, Value: existing})
		w := httptest.NewRecorder()
		newRouter(&got).ServeHTTP(w, req)
		assert.Equal(t, existing, got.GuestID)
		assert.Empty(t, w.Result().Cookies())

		req = httptest.NewRequest(http.MethodGet, "/open", nil)
		req.AddCookie(&http.Cookie{Name: cookie.GuestSessionCookieName, Value: "../../user:1"})
		w = httptest.NewRecorder()
		newRouter(&got).ServeHTTP(w, req)
		assert.NotEqual(t, "../../user:1", got.GuestID)
		_, err := uuid.Parse(got.GuestID)
		assert.NoError(t, err)
	})

	t.Run("reads the token from the cookie or a bearer header", func(t *testing.T) {
		token := authtest.SignToken(t, secret, 42, time.Hour)
		var got session.Session

		req := httptest.NewRequest(http.MethodGet, "/open", nil)
		req.AddCookie(&http.Cookie{Name: cookie.AccessTokenCookieName, Value: token})
		newRouter(&got).ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, token, got.Token)
		assert.Equal(t, "42", got.UserID)

		req = httptest.NewRequest(http.MethodGet, "/open", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		newRouter(&got).ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, token, got.Token)
		assert.Equal(t, "42", got.UserID)
	})

	t.Run("an uninspectable token is still forwarded without identity", func(t *testing.T) {
		expired := authtest.ExpiredToken(t, secret, 42)
		var got session.Session

		req := httptest.NewRequest(http.MethodGet, "/open", nil)
		req.Header.Set("Authorization", "Bearer "+expired)
		newRouter(&got).ServeHTTP(httptest.NewRecorder(), req)

		assert.True(t, got.Authenticated())
		assert.Empty(t, got.UserID)
	})
}

func TestSessionMiddlewareUnverifiedIdentity(t *testing.T) {
	forged := authtest.SignToken(t, "not-the-authority", 42, time.Hour)
	var got session.Session

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	newRouterWith(jwt.NewInspector(""), &got).ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, got.Authenticated(), "token is still forwarded to the authority")
	assert.Empty(t, got.UserID)
	assert.True(t, strings.HasPrefix(got.ChatSessionKey(), "guest:"+got.GuestID+":"))
	assert.Equal(t, []string{"guest:" + got.GuestID + ":"}, got.ScopedPrefixes())
}

func TestSessionMiddlewareRequireAuth(t *testing.T) {
	var got session.Session
	r := newRouter(&got)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+authtest.SignToken(t, secret, 7, time.Hour))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "7", got.UserID)
}
