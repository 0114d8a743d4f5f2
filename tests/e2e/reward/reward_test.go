//go:build e2e

package reward_test

import (
	"encoding/json"
	"net/http"
	nethttptest "net/http/httptest"
	"testing"

	"stamp-rally/internal/domain/reward"
	resdto "stamp-rally/internal/handler/dto/response"
	"stamp-rally/internal/pkg/cookie"
	"stamp-rally/tests/common/authtest"
	"stamp-rally/tests/common/dbtest"
	"stamp-rally/tests/common/httptest"
	"stamp-rally/tests/e2e"

	"github.com/stretchr/testify/suite"
)

const (
	profileURL = "/api/profile"
	claimURL   = "/api/rewards/claim"
	claimedURL = "/api/rewards/claimed"
)

type rewardSuite struct {
	e2e.SharedSuite
}

func TestRewardSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(rewardSuite))
}

func (s *rewardSuite) claim(cookies []*http.Cookie, rewardID int) *nethttptest.ResponseRecorder {
	return httptest.PerformRequestWithCookies(s.T(), s.Router, http.MethodPost, claimURL,
		map[string]any{"reward_id": rewardID}, cookies, "")
}

func (s *rewardSuite) TestGuestClaims() {
	s.Run("guest profile comes from the local ledger", func() {
		cookies := authtest.GuestCookies(s.T(), s.Router)

		rec := httptest.PerformRequestWithCookies(s.T(), s.Router, http.MethodGet, profileURL, nil, cookies, "")
		var res resdto.ProfileResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)

		s.Equal(reward.SourceLocal, res.Source)
		s.Zero(res.StampCount)
		s.Require().Len(res.Rewards, 3)
		s.True(res.Rewards[0].CanClaim)
		s.False(res.Rewards[1].CanClaim)
		s.Empty(res.ClaimedRewards)
		s.Require().NotNil(res.NextReward)
		s.Equal(2, res.NextReward.RewardID)
	})

	s.Run("zero-stamp reward is claimed and persisted for the guest", func() {
		cookies := authtest.GuestCookies(s.T(), s.Router)
		guestID := cookies[0].Value

		rec := s.claim(cookies, 1)
		var res resdto.ClaimResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.False(res.AlreadyClaimed)
		s.Require().NotNil(res.Reward)
		s.Equal(reward.StatusAvailable, res.Reward.Status)
		s.True(res.Profile.Rewards[0].IsClaimed)
		s.Equal(2, res.Profile.NextReward.RewardID)

		raw := dbtest.ReadKey(s.T(), s.DB, "guest:"+guestID+":claimed_rewards")
		s.Require().NotNil(raw)
		var stored []map[string]any
		s.Require().NoError(json.Unmarshal(raw, &stored))
		s.Require().Len(stored, 1)
		s.EqualValues(1, stored[0]["id"])
		s.NotEmpty(stored[0]["claimedDate"])

		again := s.claim(cookies, 1)
		var second resdto.ClaimResponse
		httptest.AssertSuccessResponse(s.T(), again, http.StatusOK, &second)
		s.True(second.AlreadyClaimed)
		s.Len(second.Profile.ClaimedRewards, 1)
	})

	s.Run("guest cannot claim past the local rule", func() {
		cookies := authtest.GuestCookies(s.T(), s.Router)

		rec := s.claim(cookies, 2)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Not enough stamps")
		s.Zero(dbtest.CountKeys(s.T(), s.DB, "guest:"+cookies[0].Value+":"))
	})

	s.Run("unknown reward is a 404", func() {
		cookies := authtest.GuestCookies(s.T(), s.Router)
		httptest.AssertErrorResponse(s.T(), s.claim(cookies, 99), http.StatusNotFound, "")
	})

	s.Run("corrupt ledger reads as empty", func() {
		cookies := authtest.GuestCookies(s.T(), s.Router)
		dbtest.SeedKey(s.T(), s.DB, "guest:"+cookies[0].Value+":claimed_rewards", []byte("{not json"))

		rec := httptest.PerformRequestWithCookies(s.T(), s.Router, http.MethodGet, claimedURL, nil, cookies, "")
		var res []resdto.ClaimedRewardResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Empty(res)
	})
}

func (s *rewardSuite) TestAuthenticatedClaims() {
	s.Run("profile and claims come from the authority", func() {
		s.Upstream.SetStamps(6)
		cookies := authtest.LoginUser(s.T(), s.Router, e2e.FakeUsername, e2e.FakePassword)

		rec := httptest.PerformRequestWithCookies(s.T(), s.Router, http.MethodGet, profileURL, nil, cookies, "")
		var profile resdto.ProfileResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &profile)
		s.Equal(reward.SourceRemote, profile.Source)
		s.Equal(6, profile.StampCount)
		s.True(profile.Rewards[1].CanClaim)
		s.False(profile.Rewards[2].CanClaim)
		s.Len(profile.Images, 1)
		s.Empty(profile.Degraded)

		claimRec := s.claim(cookies, 2)
		var claimed resdto.ClaimResponse
		httptest.AssertSuccessResponse(s.T(), claimRec, http.StatusOK, &claimed)
		s.Require().NotNil(claimed.Reward)
		s.Require().NotNil(claimed.Reward.Code)
		s.Equal("PAJU-TEST", *claimed.Reward.Code)
		s.True(claimed.Profile.Rewards[1].IsClaimed)
		s.Equal(1, s.Upstream.ClaimCount())
	})

	s.Run("authority rejection reason is passed through", func() {
		s.Upstream.SetStamps(1)
		cookies := authtest.LoginUser(s.T(), s.Router, e2e.FakeUsername, e2e.FakePassword)

		rec := s.claim(cookies, 3)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Not enough stamps")
		s.Zero(s.Upstream.ClaimCount())
	})

	s.Run("expired token degrades the profile and clears the cookie", func() {
		cookies := authtest.LoginUser(s.T(), s.Router, e2e.FakeUsername, e2e.FakePassword)
		s.Upstream.ExpireToken()

		rec := httptest.PerformRequestWithCookies(s.T(), s.Router, http.MethodGet, profileURL, nil, cookies, "")
		var profile resdto.ProfileResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &profile)
		s.True(profile.AuthExpired)
		s.NotEmpty(profile.Degraded)
		s.Zero(profile.StampCount)

		httptest.AssertCookieCleared(s.T(), rec, cookie.AccessTokenCookieName)
	})
}
