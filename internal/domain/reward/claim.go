package reward

import "time"

type Status string

const (
	StatusAvailable Status = "available"
	StatusExpired   Status = "expired"
	StatusUsed      Status = "used"
)

// Source names the ledger strategy that produced a set of claims.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

// ClaimRecord is one user's claim of one reward. The optional fields are only ever filled by
// the authority; the local ledger leaves them nil and expiry/status are computed on read.
type ClaimRecord struct {
	RewardID  int
	ClaimedAt time.Time

	RecordID   *int
	RewardName *string
	RewardType *string
	ExpiryDate *time.Time
	Status     *Status
	Code       *string
}

// AuthorityFlag is the authority's per-reward claimability verdict.
type AuthorityFlag struct {
	RewardID int
	CanClaim bool
}

// ContainsReward reports whether any record references rewardID.
func ContainsReward(claims []ClaimRecord, rewardID int) bool {
	for _, c := range claims {
		if c.RewardID == rewardID {
			return true
		}
	}
	return false
}

func claimedSet(claims []ClaimRecord) map[int]struct{} {
	set := make(map[int]struct{}, len(claims))
	for _, c := range claims {
		set[c.RewardID] = struct{}{}
	}
	return set
}
