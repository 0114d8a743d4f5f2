package queries

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"stamp-rally/internal/domain/reward"
	"stamp-rally/internal/domain/session"
	"stamp-rally/internal/pkg/clock"
	"stamp-rally/internal/pkg/errs"
	"stamp-rally/internal/pkg/metrics"
	"stamp-rally/internal/usecase/readmodel"
	"stamp-rally/internal/usecase/shared"

	"golang.org/x/sync/errgroup"
)

// names of the independent profile reads, as reported in Profile.Degraded and metrics
const (
	ReadStamps    = "stamps"
	ReadAvailable = "available_rewards"
	ReadClaimed   = "claimed_rewards"
	ReadImages    = "images"
)

type Profile struct {
	Source     reward.Source
	StampCount int
	Rewards    []reward.EligibilityView
	Claimed    []reward.ClaimedView
	Next       *reward.NextRewardHint
	Images     []readmodel.Image
	// reads that failed and were replaced by their empty value
	Degraded []string
	// the authority rejected the session's credential during this load
	AuthExpired bool
}

type ProfileQueries interface {
	Load(ctx context.Context, sess session.Session) (*Profile, error)
	Catalog() []reward.Definition
}

type profileQueriesImpl struct {
	catalog *reward.Catalog
	ledgers shared.LedgerFactory
	images  shared.ImageGateway
	clock   clock.Clock
	loc     *time.Location
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewProfileQueries(
	catalog *reward.Catalog,
	ledgers shared.LedgerFactory,
	images shared.ImageGateway,
	clk clock.Clock,
	loc *time.Location,
	m *metrics.Metrics,
	logger *slog.Logger,
) ProfileQueries {
	return &profileQueriesImpl{
		catalog: catalog,
		ledgers: ledgers,
		images:  images,
		clock:   clk,
		loc:     loc,
		metrics: m,
		logger:  logger,
	}
}

func (q *profileQueriesImpl) Catalog() []reward.Definition {
	return q.catalog.All()
}

// Load issues the four reads concurrently. A failing read is logged and replaced by its empty
// value; Load itself only fails when ctx is done.
func (q *profileQueriesImpl) Load(ctx context.Context, sess session.Session) (*Profile, error) {
	ledger := q.ledgers.For(sess)

	var (
		stampCount int
		flags      []reward.AuthorityFlag
		claims     []reward.ClaimRecord
		images     []readmodel.Image

		mu          sync.Mutex
		degraded    = []string{}
		authExpired bool
	)

	fail := func(read string, err error) {
		q.logger.Warn("Profile read degraded",
			slog.String("read", read),
			slog.String("source", string(ledger.Source())),
			slog.String("error", err.Error()))
		q.metrics.DegradedReads.WithLabelValues(read).Inc()

		mu.Lock()
		defer mu.Unlock()
		degraded = append(degraded, read)
		if errs.Is(err, errs.ErrAuthExpired) {
			authExpired = true
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := ledger.StampCount(gctx)
		if err != nil {
			fail(ReadStamps, err)
			return nil
		}
		stampCount = n
		return nil
	})
	g.Go(func() error {
		f, err := ledger.AvailableRewards(gctx)
		if err != nil {
			fail(ReadAvailable, err)
			return nil
		}
		flags = f
		return nil
	})
	g.Go(func() error {
		c, err := ledger.ListClaims(gctx)
		if err != nil {
			fail(ReadClaimed, err)
			return nil
		}
		claims = c
		return nil
	})
	if sess.Authenticated() {
		g.Go(func() error {
			imgs, err := q.images.List(gctx, sess.Token)
			if err != nil {
				fail(ReadImages, err)
				return nil
			}
			images = imgs
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "load profile")
	}

	if images == nil {
		images = []readmodel.Image{}
	}
	today := reward.DateOf(q.clock.Now(), q.loc)

	return &Profile{
		Source:      ledger.Source(),
		StampCount:  stampCount,
		Rewards:     reward.DeriveView(q.catalog, stampCount, claims, flags),
		Claimed:     reward.ClaimedViews(q.catalog, claims, today, q.loc),
		Next:        reward.NextReward(q.catalog, claims, stampCount),
		Images:      images,
		Degraded:    degraded,
		AuthExpired: authExpired,
	}, nil
}
