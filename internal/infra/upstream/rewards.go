package upstream

import (
	"context"
	"net/http"
)

type StampsResponse struct {
	TotalStamps int `json:"total_stamps"`
	Stamps      []struct {
		ID        int    `json:"id"`
		Place     string `json:"place"`
		Timestamp string `json:"timestamp"`
	} `json:"stamps"`
}

type AvailableReward struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	RequiredStamps int    `json:"required_stamps"`
	ExpiryDays     int    `json:"expiry_days"`
	CanClaim       bool   `json:"can_claim"`
}

type AvailableRewardsResponse struct {
	AvailableRewards []AvailableReward `json:"available_rewards"`
	TotalStamps      int               `json:"total_stamps"`
}

type ClaimedReward struct {
	ID          int     `json:"id"`
	RewardID    int     `json:"reward_id"`
	RewardName  string  `json:"reward_name"`
	RewardType  string  `json:"reward_type"`
	ClaimedDate string  `json:"claimed_date"`
	ExpiryDate  string  `json:"expiry_date"`
	Status      string  `json:"status"`
	Code        *string `json:"code"`
}

type ClaimedRewardsResponse struct {
	ClaimedRewards []ClaimedReward `json:"claimed_rewards"`
	Count          int             `json:"count"`
}

type ClaimResponse struct {
	Success bool          `json:"success"`
	Reward  ClaimedReward `json:"reward"`
	Message string        `json:"message"`
}

func (c *Client) Stamps(ctx context.Context, token string) (*StampsResponse, error) {
	var out StampsResponse
	if err := c.getJSON(ctx, "rewards.stamps", "/api/chat/rewards/stamps/", token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AvailableRewards(ctx context.Context, token string) (*AvailableRewardsResponse, error) {
	var out AvailableRewardsResponse
	if err := c.getJSON(ctx, "rewards.available", "/api/chat/rewards/available/", token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ClaimReward(ctx context.Context, token string, rewardID int) (*ClaimResponse, error) {
	var out ClaimResponse
	in := struct {
		RewardID int `json:"reward_id"`
	}{RewardID: rewardID}
	if err := c.sendJSON(ctx, "rewards.claim", http.MethodPost, "/api/chat/rewards/claim/", token, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ClaimedRewards(ctx context.Context, token string) (*ClaimedRewardsResponse, error) {
	var out ClaimedRewardsResponse
	if err := c.getJSON(ctx, "rewards.claimed", "/api/chat/rewards/claimed/", token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
