//go:build e2e

package e2e

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"stamp-rally/tests/common/authtest"
	"stamp-rally/tests/common/builder"

	"github.com/gin-gonic/gin"
)

const (
	FakeUsername = "walker"
	FakePassword = "password123"
	fakeSecret   = "upstream-secret"
)

// FakeUpstream plays the auth, rewards and chatbot services for one test process.
type FakeUpstream struct {
	Server *httptest.Server

	mu          sync.Mutex
	token       string
	expired     bool
	chatDown    bool
	stamps      int
	thresholds  map[int]int
	claims      []gin.H
	nextClaimID int
	cleared     []string
}

func NewFakeUpstream(t *testing.T, thresholds map[int]int) *FakeUpstream {
	f := &FakeUpstream{
		token:      authtest.SignToken(t, fakeSecret, builder.NewUserBuilder().ID, time.Hour),
		thresholds: thresholds,
	}
	f.Reset()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/auth/login/", f.login)
	r.GET("/api/auth/me/", f.authorized(f.me))
	r.GET("/api/chat/rewards/stamps/", f.authorized(f.stampsHandler))
	r.GET("/api/chat/rewards/available/", f.authorized(f.available))
	r.GET("/api/chat/rewards/claimed/", f.authorized(f.claimed))
	r.POST("/api/chat/rewards/claim/", f.authorized(f.claim))
	r.GET("/api/chat/images/", f.authorized(f.images))
	r.POST("/api/chat/text", f.chatText)
	r.DELETE("/api/chat/session/:id", f.clearSession)
	r.POST("/api/events/search", f.searchEvents)

	f.Server = httptest.NewServer(r)
	t.Cleanup(f.Server.Close)
	return f
}

func (f *FakeUpstream) URL() string {
	return f.Server.URL
}

func (f *FakeUpstream) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.expired = false
	f.chatDown = false
	f.stamps = 0
	f.claims = nil
	f.nextClaimID = 100
	f.cleared = nil
}

func (f *FakeUpstream) SetStamps(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stamps = n
}

// ExpireToken makes every authenticated endpoint answer 401 from now on.
func (f *FakeUpstream) ExpireToken() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.expired = true
}

func (f *FakeUpstream) SetChatDown(down bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chatDown = down
}

func (f *FakeUpstream) ClaimCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.claims)
}

func (f *FakeUpstream) ClearedSessions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.cleared...)
}

func (f *FakeUpstream) authorized(next gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		f.mu.Lock()
		ok := !f.expired && c.GetHeader("Authorization") == "Bearer "+f.token
		f.mu.Unlock()
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
			return
		}
		next(c)
	}
}

func (f *FakeUpstream) login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Username != FakeUsername || req.Password != FakePassword {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Incorrect username or password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token": f.token,
		"token_type":   "bearer",
		"user":         builder.NewUserBuilder().BuildUpstream(),
	})
}

func (f *FakeUpstream) me(c *gin.Context) {
	c.JSON(http.StatusOK, builder.NewUserBuilder().BuildUpstream())
}

func (f *FakeUpstream) stampsHandler(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"total_stamps": f.stamps, "stamps": []gin.H{}})
}

func (f *FakeUpstream) available(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rewards := make([]gin.H, 0, len(f.thresholds))
	for id, required := range f.thresholds {
		rewards = append(rewards, gin.H{
			"id":              id,
			"required_stamps": required,
			"can_claim":       f.stamps >= required && !f.hasClaim(id),
		})
	}
	c.JSON(http.StatusOK, gin.H{"available_rewards": rewards, "total_stamps": f.stamps})
}

func (f *FakeUpstream) claimed(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"claimed_rewards": append([]gin.H{}, f.claims...), "count": len(f.claims)})
}

func (f *FakeUpstream) claim(c *gin.Context) {
	var req struct {
		RewardID int `json:"reward_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": []gin.H{{"msg": "reward_id is required"}}})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	required, ok := f.thresholds[req.RewardID]
	switch {
	case !ok:
		c.JSON(http.StatusNotFound, gin.H{"detail": "Reward not found"})
		return
	case f.hasClaim(req.RewardID):
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Reward already claimed"})
		return
	case f.stamps < required:
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Not enough stamps"})
		return
	}

	now := time.Now()
	f.nextClaimID++
	record := gin.H{
		"id":           f.nextClaimID,
		"reward_id":    req.RewardID,
		"reward_name":  "reward",
		"reward_type":  "coupon",
		"claimed_date": now.Format(time.RFC3339),
		"expiry_date":  now.AddDate(0, 0, 30).Format(time.RFC3339),
		"status":       "available",
		"code":         "PAJU-TEST",
	}
	f.claims = append(f.claims, record)
	c.JSON(http.StatusOK, gin.H{"success": true, "reward": record, "message": "Reward claimed"})
}

func (f *FakeUpstream) hasClaim(rewardID int) bool {
	for _, c := range f.claims {
		if c["reward_id"] == rewardID {
			return true
		}
	}
	return false
}

func (f *FakeUpstream) images(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"images": []gin.H{{
			"id":          7,
			"image_url":   "/media/7.jpg",
			"place_name":  "Mimesis Art Museum",
			"uploaded_at": "2025-05-04T09:30:00",
		}},
		"count": 1,
	})
}

func (f *FakeUpstream) chatText(c *gin.Context) {
	f.mu.Lock()
	down := f.chatDown
	f.mu.Unlock()
	if down {
		c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "model is loading"})
		return
	}

	var req struct {
		Message   string `json:"message"`
		SessionID string `json:"session_id"`
	}
	_ = c.ShouldBindJSON(&req)
	c.JSON(http.StatusOK, gin.H{"response": "echo: " + strings.ToLower(req.Message), "session_id": req.SessionID})
}

func (f *FakeUpstream) clearSession(c *gin.Context) {
	f.mu.Lock()
	f.cleared = append(f.cleared, c.Param("id"))
	f.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"message": "cleared"})
}

func (f *FakeUpstream) searchEvents(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"events": []gin.H{{
			"content":  "Paju Book Festival",
			"metadata": gin.H{"date": "2025-10-03", "location": "Asia Publication Culture Center", "category": "festival"},
		}},
		"response": "One event matches.",
	})
}
