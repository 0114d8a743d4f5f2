//go:build unit

package middleware_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"stamp-rally/internal/domain/chat"
	"stamp-rally/internal/handler/middleware"
	"stamp-rally/internal/infra/kvstore"
	"stamp-rally/internal/pkg/clock"
	"stamp-rally/internal/pkg/config"
	"stamp-rally/internal/pkg/cookie"
	"stamp-rally/internal/pkg/jwt"
	"stamp-rally/internal/usecase/commands"
	"stamp-rally/tests/common/authtest"
	sharedmock "stamp-rally/tests/mock/shared"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestForgedIdentityCannotReadAnotherTranscript(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store, err := kvstore.NewMemoryStore(64)
	require.NoError(t, err)
	bot := sharedmock.NewMockChatGateway(gomock.NewController(t))
	bot.EXPECT().SendText(gomock.Any(), "my secret hotel address", gomock.Any()).Return("noted", nil)
	cmds := commands.NewChatCommands(store, bot, clock.NewMockClock(time.Date(2025, 5, 5, 9, 0, 0, 0, time.UTC)), slog.Default())

	// no AUTH_JWT_SECRET: tokens are forwarded but never trusted for identity
	m := middleware.NewSessionMiddleware(jwt.NewInspector(""), config.NewTestConfig())
	r := gin.New()
	r.Use(m.Attach())
	r.GET("/chat/history", func(c *gin.Context) {
		conv, err := cmds.Open(c.Request.Context(), middleware.GetSession(c))
		require.NoError(t, err)
		c.JSON(http.StatusOK, conv)
	})
	r.POST("/chat/text", func(c *gin.Context) {
		ex, err := cmds.SendText(c.Request.Context(), middleware.GetSession(c), c.Query("m"))
		require.NoError(t, err)
		c.JSON(http.StatusOK, ex)
	})

	victimToken := authtest.SignToken(t, "authority-secret", 42, time.Hour)
	victimGuest := &http.Cookie{Name: cookie.GuestSessionCookieName, Value: "7b1c3f1e-8c1d-4d7a-9a55-0b0f5f3a2c11"}

	req := httptest.NewRequest(http.MethodPost, "/chat/text?m="+url.QueryEscape("my secret hotel address"), nil)
	req.AddCookie(victimGuest)
	req.Header.Set("Authorization", "Bearer "+victimToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	forged := authtest.SignToken(t, "attacker", 42, time.Hour)
	req = httptest.NewRequest(http.MethodGet, "/chat/history", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var conv commands.Conversation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &conv))
	require.Len(t, conv.Messages, 1)
	assert.Equal(t, chat.GreetingText, conv.Messages[0].Content)
	assert.NotContains(t, w.Body.String(), "hotel address")
}
