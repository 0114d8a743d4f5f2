//go:build unit || e2e

package builder

import (
	"time"

	"stamp-rally/internal/domain/reward"
	"stamp-rally/internal/usecase/queries"
)

// ProfileBuilder derives a profile with the same domain rules the profile query uses.
type ProfileBuilder struct {
	Catalog    *reward.Catalog
	Source     reward.Source
	StampCount int
	Claims     []reward.ClaimRecord
	Today      reward.Date
	Location   *time.Location
	Degraded   []string
}

func NewProfileBuilder() *ProfileBuilder {
	loc := time.FixedZone("KST", 9*60*60)
	return &ProfileBuilder{
		Catalog:  reward.DefaultCatalog(),
		Source:   reward.SourceLocal,
		Today:    reward.DateOf(time.Date(2025, 5, 5, 12, 0, 0, 0, loc), loc),
		Location: loc,
	}
}

func (p *ProfileBuilder) With(mutate func(*ProfileBuilder)) *ProfileBuilder {
	mutate(p)
	return p
}

func (p *ProfileBuilder) WithStamps(n int) *ProfileBuilder {
	p.StampCount = n
	return p
}

// WithClaim records a claim of rewardID made daysAgo days before Today.
func (p *ProfileBuilder) WithClaim(rewardID, daysAgo int) *ProfileBuilder {
	d := p.Today.AddDays(-daysAgo)
	p.Claims = append(p.Claims, reward.ClaimRecord{
		RewardID:  rewardID,
		ClaimedAt: time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, p.Location),
	})
	return p
}

func (p *ProfileBuilder) Remote() *ProfileBuilder {
	p.Source = reward.SourceRemote
	return p
}

func (p *ProfileBuilder) Build() *queries.Profile {
	return &queries.Profile{
		Source:     p.Source,
		StampCount: p.StampCount,
		Rewards:    reward.DeriveView(p.Catalog, p.StampCount, p.Claims, nil),
		Claimed:    reward.ClaimedViews(p.Catalog, p.Claims, p.Today, p.Location),
		Next:       reward.NextReward(p.Catalog, p.Claims, p.StampCount),
		Degraded:   p.Degraded,
	}
}
