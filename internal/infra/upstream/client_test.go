//go:build unit

package upstream_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stamp-rally/internal/infra/upstream"
	"stamp-rally/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, h http.Handler) *upstream.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := upstream.NewClient(srv.URL, time.Second, nil, nil)
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestNewClientRejectsRelativeURL(t *testing.T) {
	_, err := upstream.NewClient("/api", time.Second, nil, nil)
	assert.Error(t, err)
}

func TestClaimReward(t *testing.T) {
	ctx := context.Background()

	t.Run("sends bearer token and reward id", func(t *testing.T) {
		c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/chat/rewards/claim/", r.URL.Path)
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

			var body map[string]int
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, 2, body["reward_id"])

			writeJSON(w, http.StatusOK, map[string]any{
				"success": true,
				"message": "ok",
				"reward": map[string]any{
					"id": 11, "reward_id": 2, "reward_name": "ticket", "reward_type": "ticket",
					"claimed_date": "2025-03-10T12:00:00", "expiry_date": "2025-04-09T12:00:00",
					"status": "available", "code": "AB12",
				},
			})
		}))

		resp, err := c.ClaimReward(ctx, "tok", 2)
		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, 11, resp.Reward.ID)
		require.NotNil(t, resp.Reward.Code)
		assert.Equal(t, "AB12", *resp.Reward.Code)
	})

	cases := []struct {
		name       string
		status     int
		body       string
		wantKind   upstream.ErrorKind
		wantDetail string
	}{
		{name: "401 is auth expired", status: 401, body: `{"detail":"Could not validate credentials"}`, wantKind: upstream.KindAuthExpired, wantDetail: "Could not validate credentials"},
		{name: "400 keeps detail verbatim", status: 400, body: `{"detail":"스탬프가 부족합니다"}`, wantKind: upstream.KindBadRequest, wantDetail: "스탬프가 부족합니다"},
		{name: "404", status: 404, body: `{"detail":"Reward not found"}`, wantKind: upstream.KindNotFound, wantDetail: "Reward not found"},
		{name: "422 validation list", status: 422, body: `{"detail":[{"msg":"field required"},{"msg":"bad type"}]}`, wantKind: upstream.KindBadRequest, wantDetail: "field required; bad type"},
		{name: "500 without body", status: 500, body: ``, wantKind: upstream.KindRemoteUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			}))

			_, err := c.ClaimReward(ctx, "tok", 1)
			require.Error(t, err)
			assert.True(t, upstream.IsKind(err, tc.wantKind), "got %v", err)
			assert.Equal(t, tc.wantDetail, upstream.DetailOf(err))
		})
	}
}

func TestUnreachableUpstream(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := upstream.NewClient(url, 500*time.Millisecond, nil, nil)
	require.NoError(t, err)

	_, err = c.Stamps(context.Background(), "tok")
	assert.True(t, upstream.IsKind(err, upstream.KindRemoteUnavailable))
}

func TestMalformedResponseIsUnavailable(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"total_stamps":`)
	}))

	_, err := c.Stamps(context.Background(), "tok")
	assert.True(t, upstream.IsKind(err, upstream.KindRemoteUnavailable))
}

func TestReadEndpoints(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/chat/rewards/stamps/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, 200, map[string]any{"total_stamps": 12, "stamps": []any{}})
	})
	mux.HandleFunc("/api/chat/rewards/available/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, 200, map[string]any{"total_stamps": 12, "available_rewards": []map[string]any{{"id": 1, "can_claim": true}}})
	})
	mux.HandleFunc("/api/chat/rewards/claimed/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, 200, map[string]any{"count": 1, "claimed_rewards": []map[string]any{{"id": 3, "reward_id": 1}}})
	})
	mux.HandleFunc("/api/chat/images/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, 200, map[string]any{"count": 1, "images": []map[string]any{{"id": 5, "place_name": "Mimesis"}}})
	})
	mux.HandleFunc("/api/chat/images/5/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})
	c := newClient(t, mux)
	ctx := context.Background()

	stamps, err := c.Stamps(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, 12, stamps.TotalStamps)

	available, err := c.AvailableRewards(ctx, "tok")
	require.NoError(t, err)
	require.Len(t, available.AvailableRewards, 1)
	assert.True(t, available.AvailableRewards[0].CanClaim)

	claimed, err := c.ClaimedRewards(ctx, "tok")
	require.NoError(t, err)
	require.Len(t, claimed.ClaimedRewards, 1)
	assert.Equal(t, 1, claimed.ClaimedRewards[0].RewardID)

	images, err := c.Images(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "Mimesis", images.Images[0].PlaceName)

	require.NoError(t, c.DeleteImage(ctx, "tok", 5))
}

func TestParseTimestamp(t *testing.T) {
	seoul := time.FixedZone("KST", 9*60*60)

	cases := map[string]time.Time{
		"2025-03-10T23:59:00+09:00":  time.Date(2025, 3, 10, 23, 59, 0, 0, seoul),
		"2025-03-10T23:59:00.123456": time.Date(2025, 3, 10, 23, 59, 0, 123456000, seoul),
		"2025-03-10 08:00:00":        time.Date(2025, 3, 10, 8, 0, 0, 0, seoul),
		"2025-03-10":                 time.Date(2025, 3, 10, 0, 0, 0, 0, seoul),
	}
	for in, want := range cases {
		got, err := upstream.ParseTimestamp(in, seoul)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%s: got %s", in, got)
	}

	_, err := upstream.ParseTimestamp("yesterday", seoul)
	assert.Error(t, err)
}

func TestClassify(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/chat/rewards/stamps/":
			writeJSON(w, 401, map[string]string{"detail": "expired"})
		default:
			writeJSON(w, 400, map[string]string{"detail": "already claimed"})
		}
	}))
	ctx := context.Background()

	_, err := c.Stamps(ctx, "tok")
	classified := upstream.Classify(err, nil)
	assert.True(t, errs.Is(classified, errs.ErrAuthExpired))
	assert.Equal(t, "expired", errs.UserMessage(classified))

	_, err = c.ClaimReward(ctx, "tok", 1)
	classified = upstream.Classify(err, errs.ErrClaimRejected)
	assert.True(t, errs.Is(classified, errs.ErrClaimRejected))
	assert.Equal(t, "already claimed", errs.UserMessage(classified))

	assert.NoError(t, upstream.Classify(nil, nil))
}
