package commands

import (
	"context"
	"log/slog"

	"stamp-rally/internal/domain/reward"
	"stamp-rally/internal/domain/session"
	"stamp-rally/internal/pkg/errs"
	"stamp-rally/internal/pkg/metrics"
	"stamp-rally/internal/usecase/queries"
	"stamp-rally/internal/usecase/shared"
)

const (
	claimOutcomeClaimed  = "claimed"
	claimOutcomeNoop     = "already_claimed"
	claimOutcomeRejected = "rejected"
	claimOutcomeFailed   = "failed"
)

type ClaimResult struct {
	Record reward.ClaimRecord
	// the state after a full reload; never patched from Record
	Profile *queries.Profile
	// the session already held this reward and nothing was submitted
	AlreadyClaimed bool
}

type RewardCommands interface {
	Claim(ctx context.Context, sess session.Session, rewardID int) (*ClaimResult, error)
}

type rewardCommandsImpl struct {
	catalog *reward.Catalog
	ledgers shared.LedgerFactory
	profile queries.ProfileQueries
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewRewardCommands(
	catalog *reward.Catalog,
	ledgers shared.LedgerFactory,
	profile queries.ProfileQueries,
	m *metrics.Metrics,
	logger *slog.Logger,
) RewardCommands {
	return &rewardCommandsImpl{catalog: catalog, ledgers: ledgers, profile: profile, metrics: m, logger: logger}
}

// Claim submits a claim through the session's ledger and then reloads the whole profile.
// Without an authority the local eligibility rule is applied first; with one, the authority
// decides and its rejection reason is passed through.
func (c *rewardCommandsImpl) Claim(ctx context.Context, sess session.Session, rewardID int) (*ClaimResult, error) {
	def, ok := c.catalog.Find(rewardID)
	if !ok {
		return nil, errs.Mark(errs.Newf("reward %d is not in the catalog", rewardID), errs.ErrRewardNotFound)
	}

	ledger := c.ledgers.For(sess)
	source := string(ledger.Source())

	if !sess.Authenticated() {
		noop, err := c.checkLocal(ctx, ledger, def)
		if err != nil {
			c.metrics.Claims.WithLabelValues(source, claimOutcomeRejected).Inc()
			return nil, err
		}
		if noop != nil {
			c.metrics.Claims.WithLabelValues(source, claimOutcomeNoop).Inc()
			return c.reload(ctx, sess, *noop, true)
		}
	}

	rec, err := ledger.Claim(ctx, rewardID)
	if err != nil {
		outcome := claimOutcomeFailed
		if errs.Is(err, errs.ErrClaimRejected) {
			outcome = claimOutcomeRejected
		}
		c.metrics.Claims.WithLabelValues(source, outcome).Inc()
		return nil, err
	}
	c.metrics.Claims.WithLabelValues(source, claimOutcomeClaimed).Inc()

	c.logger.Info("Reward claimed",
		slog.Int("reward_id", rewardID),
		slog.String("source", source),
		slog.String("guest_id", sess.GuestID))

	return c.reload(ctx, sess, *rec, false)
}

// checkLocal returns the existing record when the reward is already claimed, or a rejection
// when the local rule says the stamps are insufficient.
func (c *rewardCommandsImpl) checkLocal(ctx context.Context, ledger shared.Ledger, def reward.Definition) (*reward.ClaimRecord, error) {
	claims, err := ledger.ListClaims(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "read local claims")
	}
	for _, existing := range claims {
		if existing.RewardID == def.ID {
			return &existing, nil
		}
	}

	stamps, err := ledger.StampCount(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "read local stamp count")
	}
	if !reward.CanClaimLocally(stamps, def.RequiredStamps, false) {
		rejected := errs.Mark(errs.Newf("reward %d needs %d stamps, have %d", def.ID, def.RequiredStamps, stamps), errs.ErrClaimRejected)
		return nil, errs.WithUserMessage(rejected, "Not enough stamps to claim this reward yet.")
	}
	return nil, nil
}

func (c *rewardCommandsImpl) reload(ctx context.Context, sess session.Session, rec reward.ClaimRecord, noop bool) (*ClaimResult, error) {
	profile, err := c.profile.Load(ctx, sess)
	if err != nil {
		return nil, errs.Wrap(err, "reload profile after claim")
	}
	return &ClaimResult{Record: rec, Profile: profile, AlreadyClaimed: noop}, nil
}
