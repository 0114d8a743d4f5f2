package ledger

import (
	"context"
	"log/slog"
	"time"

	"stamp-rally/internal/domain/reward"
	"stamp-rally/internal/infra/upstream"
	"stamp-rally/internal/pkg/clock"
	"stamp-rally/internal/pkg/errs"
	"stamp-rally/internal/pkg/ptr"
)

// Remote reads and writes claims through the authority. Every call carries the session token.
type Remote struct {
	client *upstream.Client
	token  string
	clock  clock.Clock
	loc    *time.Location
	logger *slog.Logger
}

func NewRemote(client *upstream.Client, token string, clk clock.Clock, loc *time.Location, logger *slog.Logger) *Remote {
	return &Remote{client: client, token: token, clock: clk, loc: loc, logger: logger}
}

func (r *Remote) Source() reward.Source {
	return reward.SourceRemote
}

func (r *Remote) StampCount(ctx context.Context) (int, error) {
	resp, err := r.client.Stamps(ctx, r.token)
	if err != nil {
		return 0, errs.Wrap(upstream.Classify(err, nil), "fetch stamp count")
	}
	return max(0, resp.TotalStamps), nil
}

func (r *Remote) AvailableRewards(ctx context.Context) ([]reward.AuthorityFlag, error) {
	resp, err := r.client.AvailableRewards(ctx, r.token)
	if err != nil {
		return nil, errs.Wrap(upstream.Classify(err, nil), "fetch available rewards")
	}

	flags := make([]reward.AuthorityFlag, 0, len(resp.AvailableRewards))
	for _, a := range resp.AvailableRewards {
		flags = append(flags, reward.AuthorityFlag{RewardID: a.ID, CanClaim: a.CanClaim})
	}
	return flags, nil
}

func (r *Remote) ListClaims(ctx context.Context) ([]reward.ClaimRecord, error) {
	resp, err := r.client.ClaimedRewards(ctx, r.token)
	if err != nil {
		return nil, errs.Wrap(upstream.Classify(err, nil), "fetch claimed rewards")
	}

	claims := make([]reward.ClaimRecord, 0, len(resp.ClaimedRewards))
	for _, c := range resp.ClaimedRewards {
		rec, ok := r.toRecord(c)
		if !ok {
			continue
		}
		claims = append(claims, rec)
	}
	return claims, nil
}

func (r *Remote) Claim(ctx context.Context, rewardID int) (*reward.ClaimRecord, error) {
	resp, err := r.client.ClaimReward(ctx, r.token, rewardID)
	if err != nil {
		return nil, errs.Wrapf(upstream.Classify(err, errs.ErrClaimRejected), "claim reward %d", rewardID)
	}
	if !resp.Success {
		rejected := errs.Mark(errs.Newf("authority declined reward %d", rewardID), errs.ErrClaimRejected)
		return nil, errs.WithUserMessage(rejected, resp.Message)
	}

	rec, ok := r.toRecord(resp.Reward)
	if !ok {
		// accepted but the echo is unreadable; the reload that follows shows the real state
		rec = reward.ClaimRecord{RewardID: rewardID, ClaimedAt: r.clock.Now().In(r.loc)}
	}
	return &rec, nil
}

func (r *Remote) toRecord(c upstream.ClaimedReward) (reward.ClaimRecord, bool) {
	claimedAt, err := upstream.ParseTimestamp(c.ClaimedDate, r.loc)
	if err != nil {
		r.logger.Warn("Skipping claimed reward with unreadable date",
			slog.Int("record_id", c.ID), slog.String("claimed_date", c.ClaimedDate))
		return reward.ClaimRecord{}, false
	}

	rec := reward.ClaimRecord{
		RewardID:   c.RewardID,
		ClaimedAt:  claimedAt,
		RecordID:   ptr.Of(c.ID),
		RewardName: ptr.NonEmpty(c.RewardName),
		RewardType: ptr.NonEmpty(c.RewardType),
		Code:       c.Code,
	}
	if c.ExpiryDate != "" {
		if expiry, err := upstream.ParseTimestamp(c.ExpiryDate, r.loc); err == nil {
			rec.ExpiryDate = &expiry
		}
	}
	if c.Status != "" {
		status := reward.Status(c.Status)
		rec.Status = &status
	}
	return rec, true
}
