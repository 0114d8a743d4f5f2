package request

type ClaimRewardRequest struct {
	RewardID int `json:"reward_id" binding:"required,min=1"`
}
