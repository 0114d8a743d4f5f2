package reward

import "time"

// EligibilityView is the per-reward state shown on the profile. Recomputed on every load.
type EligibilityView struct {
	Definition
	IsClaimed bool
	CanClaim  bool
	Remaining int
}

type ClaimedView struct {
	RecordID    *int
	RewardID    int
	Name        string
	Type        string
	ClaimedDate Date
	ExpiryDate  Date
	Status      Status
	Code        *string
}

type NextRewardHint struct {
	RewardID        int
	Name            string
	RequiredStamps  int
	Remaining       int
	ProgressPercent int
}

// Remaining is the number of stamps still missing for a threshold.
func Remaining(stampCount, required int) int {
	return max(0, required-stampCount)
}

// CanClaimLocally is the eligibility rule used when no authority flag is available.
func CanClaimLocally(stampCount, required int, claimed bool) bool {
	return !claimed && stampCount >= required
}

// DeriveView merges catalog, stamp count and ledger into one view per catalog entry, in catalog
// order. When flags carries an entry for a reward, the authority's verdict replaces the local
// rule; a claimed reward is never claimable either way.
func DeriveView(catalog *Catalog, stampCount int, claims []ClaimRecord, flags []AuthorityFlag) []EligibilityView {
	claimed := claimedSet(claims)

	authority := make(map[int]bool, len(flags))
	for _, f := range flags {
		authority[f.RewardID] = f.CanClaim
	}

	defs := catalog.All()
	views := make([]EligibilityView, 0, len(defs))
	for _, d := range defs {
		_, isClaimed := claimed[d.ID]

		canClaim := CanClaimLocally(stampCount, d.RequiredStamps, isClaimed)
		if flag, ok := authority[d.ID]; ok {
			canClaim = flag && !isClaimed
		}

		views = append(views, EligibilityView{
			Definition: d,
			IsClaimed:  isClaimed,
			CanClaim:   canClaim,
			Remaining:  Remaining(stampCount, d.RequiredStamps),
		})
	}
	return views
}

// ClaimedViews joins claims against the catalog and resolves expiry and status as of today.
// Expiry is the authority's date when supplied, otherwise claimed date + ExpiryDays in loc.
// A record is expired from its expiry date onwards. Records that reference neither a catalog
// entry nor carry an authority-supplied name are dropped.
func ClaimedViews(catalog *Catalog, claims []ClaimRecord, today Date, loc *time.Location) []ClaimedView {
	views := make([]ClaimedView, 0, len(claims))
	for _, c := range claims {
		def, known := catalog.Find(c.RewardID)

		name, typ := def.Name, def.Type
		if !known {
			if c.RewardName == nil {
				continue
			}
			name = *c.RewardName
			if c.RewardType != nil {
				typ = *c.RewardType
			}
		}

		claimedDate := DateOf(c.ClaimedAt, loc)

		var expiry Date
		switch {
		case c.ExpiryDate != nil:
			expiry = DateOf(*c.ExpiryDate, loc)
		case known:
			expiry = claimedDate.AddDays(def.ExpiryDays)
		default:
			continue
		}

		status := StatusAvailable
		if c.Status != nil && *c.Status != "" {
			status = *c.Status
		}
		if !today.Before(expiry) {
			status = StatusExpired
		}

		views = append(views, ClaimedView{
			RecordID:    c.RecordID,
			RewardID:    c.RewardID,
			Name:        name,
			Type:        typ,
			ClaimedDate: claimedDate,
			ExpiryDate:  expiry,
			Status:      status,
			Code:        c.Code,
		})
	}
	return views
}

// NextReward picks the unclaimed entry with the lowest threshold that the stamp count has not
// reached yet. Ties go to the earlier catalog entry. Returns nil once every unclaimed entry is
// within reach, or everything is claimed.
func NextReward(catalog *Catalog, claims []ClaimRecord, stampCount int) *NextRewardHint {
	claimed := claimedSet(claims)

	var best *Definition
	for _, d := range catalog.All() {
		if _, ok := claimed[d.ID]; ok || d.RequiredStamps <= stampCount {
			continue
		}
		if best == nil || d.RequiredStamps < best.RequiredStamps {
			d := d
			best = &d
		}
	}
	if best == nil {
		return nil
	}

	return &NextRewardHint{
		RewardID:        best.ID,
		Name:            best.Name,
		RequiredStamps:  best.RequiredStamps,
		Remaining:       Remaining(stampCount, best.RequiredStamps),
		ProgressPercent: max(0, stampCount) * 100 / best.RequiredStamps,
	}
}
