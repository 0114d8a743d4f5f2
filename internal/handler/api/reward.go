package api

import (
	"net/http"

	reqdto "stamp-rally/internal/handler/dto/request"
	resdto "stamp-rally/internal/handler/dto/response"
	"stamp-rally/internal/handler/httperr"
	"stamp-rally/internal/handler/middleware"
	"stamp-rally/internal/pkg/config"
	"stamp-rally/internal/pkg/cookie"
	"stamp-rally/internal/usecase/commands"
	"stamp-rally/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type RewardHandler struct {
	cmds      commands.RewardCommands
	q         queries.ProfileQueries
	cookieCfg config.CookieConfig
}

func NewRewardHandler(cmds commands.RewardCommands, q queries.ProfileQueries, cfg config.Config) *RewardHandler {
	return &RewardHandler{cmds: cmds, q: q, cookieCfg: cfg.Cookie}
}

// @Summary Get profile
// @Description Stamp count, per-reward eligibility, claimed rewards and the next reward to aim for.
// @Description Reads that fail are listed in degraded and replaced by empty values.
// @Tags rewards
// @Produce json
// @Success 200 {object} resdto.ProfileResponse
// @Failure 500 {object} httperr.Response
// @Router /profile [get]
func (h *RewardHandler) Profile(c *gin.Context) {
	profile, err := h.q.Load(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		abortWithUsecaseError(c, h.cookieCfg, err, "Failed to load profile")
		return
	}
	if profile.AuthExpired {
		cookie.ClearAccessToken(c, h.cookieCfg)
	}
	c.JSON(http.StatusOK, resdto.FromProfile(profile))
}

// @Summary List reward catalog
// @Tags rewards
// @Produce json
// @Success 200 {array} resdto.RewardResponse
// @Router /rewards/catalog [get]
func (h *RewardHandler) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.FromCatalog(h.q.Catalog()))
}

// @Summary List claimed rewards
// @Description Claimed rewards with expiry and status resolved for today
// @Tags rewards
// @Produce json
// @Success 200 {array} resdto.ClaimedRewardResponse
// @Failure 500 {object} httperr.Response
// @Router /rewards/claimed [get]
func (h *RewardHandler) Claimed(c *gin.Context) {
	profile, err := h.q.Load(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		abortWithUsecaseError(c, h.cookieCfg, err, "Failed to load claimed rewards")
		return
	}
	if profile.AuthExpired {
		cookie.ClearAccessToken(c, h.cookieCfg)
	}
	c.JSON(http.StatusOK, resdto.FromClaimedViews(profile.Claimed))
}

// @Summary Claim a reward
// @Description Claim through the authority when logged in, otherwise against the local ledger.
// @Description The response carries the fully reloaded profile.
// @Tags rewards
// @Accept json
// @Produce json
// @Param request body reqdto.ClaimRewardRequest true "Claim request"
// @Success 200 {object} resdto.ClaimResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /rewards/claim [post]
func (h *RewardHandler) Claim(c *gin.Context) {
	var req reqdto.ClaimRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.cmds.Claim(c.Request.Context(), middleware.GetSession(c), req.RewardID)
	if err != nil {
		abortWithUsecaseError(c, h.cookieCfg, err, "Failed to claim reward")
		return
	}
	if result.Profile.AuthExpired {
		cookie.ClearAccessToken(c, h.cookieCfg)
	}
	c.JSON(http.StatusOK, resdto.FromClaimResult(result))
}
