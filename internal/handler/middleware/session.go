package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"stamp-rally/internal/domain/session"
	"stamp-rally/internal/handler/httperr"
	"stamp-rally/internal/pkg/config"
	"stamp-rally/internal/pkg/cookie"
	"stamp-rally/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const (
	ctxSessionKey = "session"
	ctxClaimsKey  = "jwt_claims"
)

type SessionMiddleware struct {
	inspector *jwt.Inspector
	cookieCfg config.CookieConfig
}

func NewSessionMiddleware(inspector *jwt.Inspector, cfg config.Config) *SessionMiddleware {
	return &SessionMiddleware{inspector: inspector, cookieCfg: cfg.Cookie}
}

// Attach resolves the request's session: the guest id from its cookie (issuing one when absent
// or malformed) and the access token from the cookie or a Bearer header. A token that fails
// inspection is kept as is; the authority has the final word on it.
// UserID scopes stored data, so it is only taken from signature-verified tokens. Without a
// secret the session stays in its guest scope even when a token is present.
func (m *SessionMiddleware) Attach() gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID, err := session.ParseGuestID(cookie.GetGuestSession(c))
		if err != nil {
			guestID = session.NewGuestID()
			cookie.SetGuestSession(c, m.cookieCfg, guestID)
		}

		sess := session.Session{GuestID: guestID, Token: extractToken(c)}
		if sess.Token != "" && m.inspector.Verifies() {
			claims, err := m.inspector.Inspect(sess.Token)
			if err != nil {
				slog.Debug("Access token could not be inspected", "error", err.Error())
			} else {
				sess.UserID = claims.Identity()
			}
		}

		c.Set(ctxSessionKey, sess)
		if sess.UserID != "" {
			c.Set(ctxClaimsKey, map[string]any{"user_id": sess.UserID})
		}
		c.Next()
	}
}

func (m *SessionMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetSession(c).Authenticated() {
			httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Access token required", nil)
			return
		}
		c.Next()
	}
}

// GetSession returns the session attached by Attach, or a zero session when none is.
func GetSession(c *gin.Context) session.Session {
	if v, ok := c.Get(ctxSessionKey); ok {
		if sess, ok := v.(session.Session); ok {
			return sess
		}
	}
	return session.Session{}
}

// SetSession replaces the request's session, e.g. after login or logout within the request.
func SetSession(c *gin.Context, sess session.Session) {
	c.Set(ctxSessionKey, sess)
}

func extractToken(c *gin.Context) string {
	if token := cookie.GetAccessToken(c); token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}
