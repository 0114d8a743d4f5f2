package cookie

import (
	"net/http"
	"time"

	"stamp-rally/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

const (
	AccessTokenCookieName  = "access_token"
	GuestSessionCookieName = "guest_session"
)

func SetAccessToken(c *gin.Context, cfg config.CookieConfig, accessToken string) {
	set(c, cfg, AccessTokenCookieName, accessToken, cfg.AccessTokenTTL)
}

func SetGuestSession(c *gin.Context, cfg config.CookieConfig, guestID string) {
	set(c, cfg, GuestSessionCookieName, guestID, cfg.GuestSessionTTL)
}

// ClearAccessToken invalidates the local credential; the guest session survives.
func ClearAccessToken(c *gin.Context, cfg config.CookieConfig) {
	expire(c, cfg, AccessTokenCookieName)
}

func ClearAll(c *gin.Context, cfg config.CookieConfig) {
	expire(c, cfg, AccessTokenCookieName)
	expire(c, cfg, GuestSessionCookieName)
}

func GetAccessToken(c *gin.Context) string {
	token, _ := c.Cookie(AccessTokenCookieName)
	return token
}

func GetGuestSession(c *gin.Context) string {
	id, _ := c.Cookie(GuestSessionCookieName)
	return id
}

func set(c *gin.Context, cfg config.CookieConfig, name, value string, ttl time.Duration) {
	c.SetSameSite(getSameSite(cfg.SameSite))
	c.SetCookie(
		name,
		value,
		int(ttl.Seconds()),
		"/",
		cfg.Domain,
		cfg.Secure,
		true, // HttpOnly
	)
}

func expire(c *gin.Context, cfg config.CookieConfig, name string) {
	c.SetSameSite(getSameSite(cfg.SameSite))
	c.SetCookie(name, "", -1, "/", cfg.Domain, cfg.Secure, true)
}

func getSameSite(sameSite string) http.SameSite {
	switch sameSite {
	case "Strict":
		return http.SameSiteStrictMode
	case "Lax":
		return http.SameSiteLaxMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
