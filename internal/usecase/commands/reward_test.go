//go:build unit

package commands_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"stamp-rally/internal/domain/reward"
	"stamp-rally/internal/domain/session"
	"stamp-rally/internal/pkg/errs"
	"stamp-rally/internal/pkg/metrics"
	"stamp-rally/internal/usecase/commands"
	"stamp-rally/internal/usecase/queries"
	queriesmock "stamp-rally/tests/mock/queries"
	sharedmock "stamp-rally/tests/mock/shared"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RewardCommandsTestSuite struct {
	suite.Suite
	ctx     context.Context
	ctrl    *gomock.Controller
	ledger  *sharedmock.MockLedger
	factory *sharedmock.MockLedgerFactory
	profile *queriesmock.MockProfileQueries
	metrics *metrics.Metrics
	cmd     commands.RewardCommands
	guest   session.Session
	authed  session.Session
}

func (s *RewardCommandsTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.ledger = sharedmock.NewMockLedger(s.ctrl)
	s.factory = sharedmock.NewMockLedgerFactory(s.ctrl)
	s.profile = queriesmock.NewMockProfileQueries(s.ctrl)
	s.metrics = metrics.NewNop()

	catalog := reward.MustCatalog([]reward.Definition{
		{ID: 1, Name: "welcome", RequiredStamps: 0, ExpiryDays: 7},
		{ID: 2, Name: "coffee", RequiredStamps: 5, ExpiryDays: 30},
	})
	s.cmd = commands.NewRewardCommands(catalog, s.factory, s.profile, s.metrics, slog.Default())
	s.guest = session.Session{GuestID: session.NewGuestID()}
	s.authed = session.Session{GuestID: s.guest.GuestID, Token: "tok"}
}

func (s *RewardCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestRewardCommandsSuite(t *testing.T) {
	suite.Run(t, new(RewardCommandsTestSuite))
}

func (s *RewardCommandsTestSuite) TestUnknownReward() {
	_, err := s.cmd.Claim(s.ctx, s.authed, 99)
	s.True(errs.Is(err, errs.ErrRewardNotFound))
}

func (s *RewardCommandsTestSuite) TestRemoteClaimThenReload() {
	reloaded := &queries.Profile{Source: reward.SourceRemote, StampCount: 6}
	rec := &reward.ClaimRecord{RewardID: 2, ClaimedAt: time.Now()}

	gomock.InOrder(
		s.factory.EXPECT().For(s.authed).Return(s.ledger),
		s.ledger.EXPECT().Source().Return(reward.SourceRemote),
		s.ledger.EXPECT().Claim(gomock.Any(), 2).Return(rec, nil),
		s.profile.EXPECT().Load(gomock.Any(), s.authed).Return(reloaded, nil),
	)

	res, err := s.cmd.Claim(s.ctx, s.authed, 2)
	s.Require().NoError(err)
	s.Equal(2, res.Record.RewardID)
	s.Same(reloaded, res.Profile)
	s.False(res.AlreadyClaimed)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Claims.WithLabelValues("remote", "claimed")))
}

func (s *RewardCommandsTestSuite) TestRemoteRejectionPassesThrough() {
	rejected := errs.WithUserMessage(errs.Mark(errors.New("400"), errs.ErrClaimRejected), "Already claimed")

	s.factory.EXPECT().For(s.authed).Return(s.ledger)
	s.ledger.EXPECT().Source().Return(reward.SourceRemote)
	s.ledger.EXPECT().Claim(gomock.Any(), 2).Return(nil, rejected)

	_, err := s.cmd.Claim(s.ctx, s.authed, 2)
	s.True(errs.Is(err, errs.ErrClaimRejected))
	s.Equal("Already claimed", errs.UserMessage(err))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Claims.WithLabelValues("remote", "rejected")))
}

func (s *RewardCommandsTestSuite) TestRemoteFailureDoesNotReload() {
	s.factory.EXPECT().For(s.authed).Return(s.ledger)
	s.ledger.EXPECT().Source().Return(reward.SourceRemote)
	s.ledger.EXPECT().Claim(gomock.Any(), 1).Return(nil, errs.Mark(errors.New("502"), errs.ErrRemoteUnavailable))

	_, err := s.cmd.Claim(s.ctx, s.authed, 1)
	s.True(errs.Is(err, errs.ErrRemoteUnavailable))
}

func (s *RewardCommandsTestSuite) TestLocalClaimWithinRule() {
	rec := &reward.ClaimRecord{RewardID: 1, ClaimedAt: time.Now()}

	s.factory.EXPECT().For(s.guest).Return(s.ledger)
	s.ledger.EXPECT().Source().Return(reward.SourceLocal)
	s.ledger.EXPECT().ListClaims(gomock.Any()).Return(nil, nil)
	s.ledger.EXPECT().StampCount(gomock.Any()).Return(0, nil)
	s.ledger.EXPECT().Claim(gomock.Any(), 1).Return(rec, nil)
	s.profile.EXPECT().Load(gomock.Any(), s.guest).Return(&queries.Profile{Source: reward.SourceLocal}, nil)

	res, err := s.cmd.Claim(s.ctx, s.guest, 1)
	s.Require().NoError(err)
	s.Equal(1, res.Record.RewardID)
}

func (s *RewardCommandsTestSuite) TestLocalInsufficientStamps() {
	s.factory.EXPECT().For(s.guest).Return(s.ledger)
	s.ledger.EXPECT().Source().Return(reward.SourceLocal)
	s.ledger.EXPECT().ListClaims(gomock.Any()).Return(nil, nil)
	s.ledger.EXPECT().StampCount(gomock.Any()).Return(0, nil)

	_, err := s.cmd.Claim(s.ctx, s.guest, 2)
	s.True(errs.Is(err, errs.ErrClaimRejected))
	s.NotEmpty(errs.UserMessage(err))
}

func (s *RewardCommandsTestSuite) TestLocalAlreadyClaimedIsNoop() {
	existing := reward.ClaimRecord{RewardID: 1, ClaimedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}

	s.factory.EXPECT().For(s.guest).Return(s.ledger)
	s.ledger.EXPECT().Source().Return(reward.SourceLocal)
	s.ledger.EXPECT().ListClaims(gomock.Any()).Return([]reward.ClaimRecord{existing}, nil)
	s.profile.EXPECT().Load(gomock.Any(), s.guest).Return(&queries.Profile{}, nil)
	// no Claim call

	res, err := s.cmd.Claim(s.ctx, s.guest, 1)
	s.Require().NoError(err)
	s.True(res.AlreadyClaimed)
	s.True(existing.ClaimedAt.Equal(res.Record.ClaimedAt))
}
