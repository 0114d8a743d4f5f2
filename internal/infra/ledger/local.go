package ledger

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"stamp-rally/internal/domain/reward"
	"stamp-rally/internal/infra"
	"stamp-rally/internal/infra/kvstore"
	"stamp-rally/internal/pkg/clock"
	"stamp-rally/internal/pkg/errs"
)

// storedClaim is the persisted shape: the reward id and when it was claimed, nothing else.
// Expiry and status are always derived on read.
type storedClaim struct {
	ID          int       `json:"id"`
	ClaimedDate time.Time `json:"claimedDate"`
}

// Local keeps the claims of an unauthenticated session in the key-value store. It has no
// stamp source and no authority, so it reports zero stamps and no flags.
type Local struct {
	store  kvstore.Store
	key    string
	clock  clock.Clock
	logger *slog.Logger
}

func NewLocal(store kvstore.Store, key string, clk clock.Clock, logger *slog.Logger) *Local {
	return &Local{store: store, key: key, clock: clk, logger: logger}
}

func (l *Local) Source() reward.Source {
	return reward.SourceLocal
}

func (l *Local) StampCount(context.Context) (int, error) {
	return 0, nil
}

func (l *Local) AvailableRewards(context.Context) ([]reward.AuthorityFlag, error) {
	return nil, nil
}

// ListClaims never fails: a missing, unreadable or corrupt ledger reads as empty.
func (l *Local) ListClaims(ctx context.Context) ([]reward.ClaimRecord, error) {
	stored := l.load(ctx)
	claims := make([]reward.ClaimRecord, 0, len(stored))
	for _, s := range stored {
		claims = append(claims, reward.ClaimRecord{RewardID: s.ID, ClaimedAt: s.ClaimedDate})
	}
	return claims, nil
}

// Claim is idempotent: an existing record for rewardID is returned as is. Write failures are
// logged and swallowed, so the new record may not survive the next read.
func (l *Local) Claim(ctx context.Context, rewardID int) (*reward.ClaimRecord, error) {
	stored := l.load(ctx)
	for _, s := range stored {
		if s.ID == rewardID {
			return &reward.ClaimRecord{RewardID: s.ID, ClaimedAt: s.ClaimedDate}, nil
		}
	}

	claim := storedClaim{ID: rewardID, ClaimedDate: l.clock.Now()}
	stored = append(stored, claim)

	payload, err := json.Marshal(stored)
	if err != nil {
		l.logger.Error("Failed to encode local claims", slog.String("key", l.key), slog.String("error", err.Error()))
	} else if err := l.store.Set(ctx, l.key, payload); err != nil {
		l.logger.Error("Failed to persist local claim",
			slog.String("key", l.key), slog.Int("reward_id", rewardID), slog.String("error", err.Error()))
	}

	return &reward.ClaimRecord{RewardID: claim.ID, ClaimedAt: claim.ClaimedDate}, nil
}

func (l *Local) load(ctx context.Context) []storedClaim {
	raw, err := l.store.Get(ctx, l.key)
	if err != nil {
		if !infra.IsKind(err, infra.KindNotFound) {
			l.logger.Error("Failed to read local claims", slog.String("key", l.key), slog.String("error", err.Error()))
		}
		return nil
	}

	var stored []storedClaim
	if err := json.Unmarshal(raw, &stored); err != nil {
		corrupt := errs.Mark(err, errs.ErrStorageCorrupt)
		l.logger.Warn("Discarding corrupt local claims", slog.String("key", l.key), slog.String("error", corrupt.Error()))
		return nil
	}

	valid := stored[:0]
	for _, s := range stored {
		if s.ID > 0 {
			valid = append(valid, s)
		}
	}
	return valid
}
