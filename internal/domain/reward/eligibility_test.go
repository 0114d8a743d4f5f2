//go:build unit

package reward_test

import (
	"testing"
	"time"

	"stamp-rally/internal/domain/reward"
	"stamp-rally/internal/pkg/ptr"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seoul = time.FixedZone("KST", 9*60*60)

func threeTierCatalog(t *testing.T) *reward.Catalog {
	t.Helper()
	c, err := reward.NewCatalog([]reward.Definition{
		{ID: 1, Name: "tier one", Type: reward.TypeCoupon, RequiredStamps: 10, ExpiryDays: 30},
		{ID: 2, Name: "tier two", Type: reward.TypeTicket, RequiredStamps: 20, ExpiryDays: 30},
		{ID: 3, Name: "tier three", Type: reward.TypeRaffle, RequiredStamps: 30, ExpiryDays: 30},
	})
	require.NoError(t, err)
	return c
}

type flagState struct {
	ID        int
	IsClaimed bool
	CanClaim  bool
	Remaining int
}

func states(views []reward.EligibilityView) []flagState {
	out := make([]flagState, len(views))
	for i, v := range views {
		out[i] = flagState{ID: v.ID, IsClaimed: v.IsClaimed, CanClaim: v.CanClaim, Remaining: v.Remaining}
	}
	return out
}

func TestDeriveView(t *testing.T) {
	catalog := threeTierCatalog(t)

	t.Run("local rule with twelve stamps and no claims", func(t *testing.T) {
		got := states(reward.DeriveView(catalog, 12, nil, nil))
		want := []flagState{
			{ID: 1, CanClaim: true, Remaining: 0},
			{ID: 2, CanClaim: false, Remaining: 8},
			{ID: 3, CanClaim: false, Remaining: 18},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("view mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("claimed reward is never claimable", func(t *testing.T) {
		claims := []reward.ClaimRecord{{RewardID: 1}}
		got := states(reward.DeriveView(catalog, 50, claims, nil))
		want := []flagState{
			{ID: 1, IsClaimed: true, CanClaim: false, Remaining: 0},
			{ID: 2, CanClaim: true, Remaining: 0},
			{ID: 3, CanClaim: true, Remaining: 0},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("view mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("authority flag overrides local rule", func(t *testing.T) {
		flags := []reward.AuthorityFlag{
			{RewardID: 1, CanClaim: false}, // e.g. rate limited
			{RewardID: 3, CanClaim: true},
		}
		got := states(reward.DeriveView(catalog, 12, nil, flags))
		want := []flagState{
			{ID: 1, CanClaim: false, Remaining: 0},
			{ID: 2, CanClaim: false, Remaining: 8},
			{ID: 3, CanClaim: true, Remaining: 18},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("view mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("authority flag cannot make a claimed reward claimable", func(t *testing.T) {
		flags := []reward.AuthorityFlag{{RewardID: 2, CanClaim: true}}
		claims := []reward.ClaimRecord{{RewardID: 2}}
		views := reward.DeriveView(catalog, 25, claims, flags)

		assert.True(t, views[1].IsClaimed)
		assert.False(t, views[1].CanClaim)
	})

	t.Run("zero threshold is claimable without stamps", func(t *testing.T) {
		free := reward.MustCatalog([]reward.Definition{{ID: 9, Name: "welcome", RequiredStamps: 0}})
		views := reward.DeriveView(free, 0, nil, nil)

		require.Len(t, views, 1)
		assert.True(t, views[0].CanClaim)
		assert.Zero(t, views[0].Remaining)
	})

	t.Run("pure: identical inputs give identical output", func(t *testing.T) {
		claims := []reward.ClaimRecord{{RewardID: 3}}
		first := reward.DeriveView(catalog, 21, claims, nil)
		_ = reward.DeriveView(catalog, 0, nil, nil)
		second := reward.DeriveView(catalog, 21, claims, nil)

		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("DeriveView not deterministic (-first +second):\n%s", diff)
		}
	})
}

func TestLocalRuleProperties(t *testing.T) {
	for s := 0; s <= 40; s++ {
		for _, threshold := range []int{0, 1, 10, 20, 30} {
			assert.Equal(t, s >= threshold, reward.CanClaimLocally(s, threshold, false), "s=%d t=%d", s, threshold)
			assert.False(t, reward.CanClaimLocally(s, threshold, true))
			assert.Equal(t, max(0, threshold-s), reward.Remaining(s, threshold))
		}
	}
}

func TestNextReward(t *testing.T) {
	catalog := threeTierCatalog(t)

	t.Run("claimable but unclaimed reward is skipped", func(t *testing.T) {
		hint := reward.NextReward(catalog, nil, 12)
		require.NotNil(t, hint)
		assert.Equal(t, 2, hint.RewardID)
		assert.Equal(t, 8, hint.Remaining)
		assert.Equal(t, 60, hint.ProgressPercent)
	})

	t.Run("no stamps points at the first tier", func(t *testing.T) {
		hint := reward.NextReward(catalog, nil, 0)
		require.NotNil(t, hint)
		assert.Equal(t, 1, hint.RewardID)
		assert.Equal(t, 10, hint.Remaining)
		assert.Zero(t, hint.ProgressPercent)
	})

	t.Run("nil when the count is above every threshold", func(t *testing.T) {
		assert.Nil(t, reward.NextReward(catalog, nil, 40))
		assert.Nil(t, reward.NextReward(catalog, []reward.ClaimRecord{{RewardID: 1}}, 30))
	})

	t.Run("zero threshold is never next", func(t *testing.T) {
		free := reward.MustCatalog([]reward.Definition{
			{ID: 9, Name: "welcome", RequiredStamps: 0},
			{ID: 10, Name: "first walk", RequiredStamps: 3},
		})
		hint := reward.NextReward(free, nil, 0)
		require.NotNil(t, hint)
		assert.Equal(t, 10, hint.RewardID)
	})

	t.Run("after claiming tier one the hint moves to tier two", func(t *testing.T) {
		hint := reward.NextReward(catalog, []reward.ClaimRecord{{RewardID: 1}}, 12)
		require.NotNil(t, hint)
		assert.Equal(t, 2, hint.RewardID)
		assert.Equal(t, "tier two", hint.Name)
		assert.Equal(t, 8, hint.Remaining)
		assert.Equal(t, 60, hint.ProgressPercent)
	})

	t.Run("ties broken by catalog order", func(t *testing.T) {
		tied := reward.MustCatalog([]reward.Definition{
			{ID: 7, Name: "later id first", RequiredStamps: 5},
			{ID: 3, Name: "earlier id second", RequiredStamps: 5},
		})
		hint := reward.NextReward(tied, nil, 0)
		require.NotNil(t, hint)
		assert.Equal(t, 7, hint.RewardID)
	})

	t.Run("nil when everything is claimed", func(t *testing.T) {
		claims := []reward.ClaimRecord{{RewardID: 1}, {RewardID: 2}, {RewardID: 3}}
		assert.Nil(t, reward.NextReward(catalog, claims, 100))
	})
}

func TestClaimedViews(t *testing.T) {
	catalog := reward.MustCatalog([]reward.Definition{
		{ID: 1, Name: "one day pass", Type: reward.TypeTicket, RequiredStamps: 0, ExpiryDays: 1},
		{ID: 2, Name: "monthly coupon", Type: reward.TypeCoupon, RequiredStamps: 0, ExpiryDays: 30},
	})
	day := func(s string) reward.Date {
		d, err := reward.ParseDate(s)
		require.NoError(t, err)
		return d
	}

	t.Run("late-night claim with one day expiry", func(t *testing.T) {
		claimedAt := time.Date(2025, 3, 10, 23, 59, 0, 0, seoul)
		claims := []reward.ClaimRecord{{RewardID: 1, ClaimedAt: claimedAt}}

		sameDay := reward.ClaimedViews(catalog, claims, day("2025-03-10"), seoul)
		require.Len(t, sameDay, 1)
		assert.Equal(t, reward.StatusAvailable, sameDay[0].Status)
		assert.Equal(t, "2025-03-11", sameDay[0].ExpiryDate.String())

		nextDay := reward.ClaimedViews(catalog, claims, day("2025-03-11"), seoul)
		assert.Equal(t, reward.StatusExpired, nextDay[0].Status)
	})

	t.Run("expiry boundary over N days", func(t *testing.T) {
		claims := []reward.ClaimRecord{{RewardID: 2, ClaimedAt: time.Date(2025, 1, 31, 9, 0, 0, 0, seoul)}}

		for offset, want := range map[int]reward.Status{
			0:  reward.StatusAvailable,
			29: reward.StatusAvailable,
			30: reward.StatusExpired,
			45: reward.StatusExpired,
		} {
			today := day("2025-01-31").AddDays(offset)
			views := reward.ClaimedViews(catalog, claims, today, seoul)
			require.Len(t, views, 1)
			assert.Equal(t, want, views[0].Status, "offset %d", offset)
		}
	})

	t.Run("claim date is taken in the configured zone", func(t *testing.T) {
		// 2025-03-10 16:00 UTC is already 2025-03-11 in Seoul
		claims := []reward.ClaimRecord{{RewardID: 1, ClaimedAt: time.Date(2025, 3, 10, 16, 0, 0, 0, time.UTC)}}
		views := reward.ClaimedViews(catalog, claims, day("2025-03-11"), seoul)

		require.Len(t, views, 1)
		assert.Equal(t, "2025-03-11", views[0].ClaimedDate.String())
		assert.Equal(t, reward.StatusAvailable, views[0].Status)
	})

	t.Run("authoritative fields win", func(t *testing.T) {
		used := reward.StatusUsed
		expiry := time.Date(2025, 6, 1, 0, 0, 0, 0, seoul)
		claims := []reward.ClaimRecord{{
			RewardID:   2,
			ClaimedAt:  time.Date(2025, 5, 1, 12, 0, 0, 0, seoul),
			RecordID:   ptr.Of(77),
			ExpiryDate: &expiry,
			Status:     &used,
			Code:       ptr.Of("PAJU-7Q2X"),
		}}

		views := reward.ClaimedViews(catalog, claims, day("2025-05-15"), seoul)
		require.Len(t, views, 1)
		assert.Equal(t, reward.StatusUsed, views[0].Status)
		assert.Equal(t, "2025-06-01", views[0].ExpiryDate.String())
		assert.Equal(t, "PAJU-7Q2X", *views[0].Code)
		assert.Equal(t, "monthly coupon", views[0].Name)

		expired := reward.ClaimedViews(catalog, claims, day("2025-06-01"), seoul)
		assert.Equal(t, reward.StatusExpired, expired[0].Status)
	})

	t.Run("unknown reward keeps authority name or is dropped", func(t *testing.T) {
		expiry := time.Date(2030, 1, 1, 0, 0, 0, 0, seoul)
		claims := []reward.ClaimRecord{
			{RewardID: 99, ClaimedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, seoul), RewardName: ptr.Of("retired tier"), RewardType: ptr.Of("entry"), ExpiryDate: &expiry},
			{RewardID: 100, ClaimedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, seoul)},
		}

		views := reward.ClaimedViews(catalog, claims, day("2025-02-01"), seoul)
		require.Len(t, views, 1)
		assert.Equal(t, "retired tier", views[0].Name)
		assert.Equal(t, "entry", views[0].Type)
	})
}
