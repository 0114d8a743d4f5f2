package response

import (
	"stamp-rally/internal/domain/reward"
	"stamp-rally/internal/usecase/commands"
	"stamp-rally/internal/usecase/queries"
)

type RewardResponse struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	RequiredStamps int    `json:"required_stamps"`
	ExpiryDays     int    `json:"expiry_days"`
}

type RewardStateResponse struct {
	RewardResponse
	IsClaimed bool `json:"is_claimed"`
	CanClaim  bool `json:"can_claim"`
	Remaining int  `json:"remaining"`
}

type ClaimedRewardResponse struct {
	ID          *int          `json:"id,omitempty"`
	RewardID    int           `json:"reward_id"`
	RewardName  string        `json:"reward_name"`
	RewardType  string        `json:"reward_type"`
	ClaimedDate reward.Date   `json:"claimed_date"`
	ExpiryDate  reward.Date   `json:"expiry_date"`
	Status      reward.Status `json:"status"`
	Code        *string       `json:"code,omitempty"`
}

type NextRewardResponse struct {
	RewardID        int    `json:"reward_id"`
	Name            string `json:"name"`
	RequiredStamps  int    `json:"required_stamps"`
	Remaining       int    `json:"remaining"`
	ProgressPercent int    `json:"progress_percent"`
}

type ProfileResponse struct {
	Source         reward.Source           `json:"source"`
	StampCount     int                     `json:"stamp_count"`
	Rewards        []RewardStateResponse   `json:"rewards"`
	ClaimedRewards []ClaimedRewardResponse `json:"claimed_rewards"`
	NextReward     *NextRewardResponse     `json:"next_reward"`
	Images         []ImageResponse         `json:"images"`
	Degraded       []string                `json:"degraded"`
	AuthExpired    bool                    `json:"auth_expired"`
}

type ClaimResponse struct {
	AlreadyClaimed bool                   `json:"already_claimed"`
	Reward         *ClaimedRewardResponse `json:"reward,omitempty"`
	Profile        ProfileResponse        `json:"profile"`
}

func FromCatalog(defs []reward.Definition) []RewardResponse {
	out := make([]RewardResponse, 0, len(defs))
	for _, d := range defs {
		out = append(out, RewardResponse(d))
	}
	return out
}

func FromProfile(p *queries.Profile) ProfileResponse {
	res := ProfileResponse{
		Source:         p.Source,
		StampCount:     p.StampCount,
		Rewards:        make([]RewardStateResponse, 0, len(p.Rewards)),
		ClaimedRewards: make([]ClaimedRewardResponse, 0, len(p.Claimed)),
		Images:         FromImages(p.Images),
		Degraded:       make([]string, 0, len(p.Degraded)),
		AuthExpired:    p.AuthExpired,
	}

	for _, v := range p.Rewards {
		res.Rewards = append(res.Rewards, RewardStateResponse{
			RewardResponse: RewardResponse(v.Definition),
			IsClaimed:      v.IsClaimed,
			CanClaim:       v.CanClaim,
			Remaining:      v.Remaining,
		})
	}
	res.Degraded = append(res.Degraded, p.Degraded...)
	for _, v := range p.Claimed {
		res.ClaimedRewards = append(res.ClaimedRewards, fromClaimedView(v))
	}
	if p.Next != nil {
		next := NextRewardResponse(*p.Next)
		res.NextReward = &next
	}
	return res
}

// FromClaimResult pairs the claimed reward with the reloaded profile. The reward entry comes
// from the reloaded claims so the response shows what the authority recorded.
func FromClaimResult(r *commands.ClaimResult) ClaimResponse {
	res := ClaimResponse{
		AlreadyClaimed: r.AlreadyClaimed,
		Profile:        FromProfile(r.Profile),
	}
	for _, v := range r.Profile.Claimed {
		if v.RewardID == r.Record.RewardID {
			claimed := fromClaimedView(v)
			res.Reward = &claimed
			break
		}
	}
	return res
}

func FromClaimedViews(views []reward.ClaimedView) []ClaimedRewardResponse {
	out := make([]ClaimedRewardResponse, 0, len(views))
	for _, v := range views {
		out = append(out, fromClaimedView(v))
	}
	return out
}

func fromClaimedView(v reward.ClaimedView) ClaimedRewardResponse {
	return ClaimedRewardResponse{
		ID:          v.RecordID,
		RewardID:    v.RewardID,
		RewardName:  v.Name,
		RewardType:  v.Type,
		ClaimedDate: v.ClaimedDate,
		ExpiryDate:  v.ExpiryDate,
		Status:      v.Status,
		Code:        v.Code,
	}
}
