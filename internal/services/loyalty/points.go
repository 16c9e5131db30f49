package loyalty

import (
	"math"

	domainErrors "nushoplah/internal/errors"
)

// Tier is a loyalty level controlling the earn multiplier.
type Tier string

const (
	TierMember   Tier = "Member"
	TierSilver   Tier = "Silver"
	TierGold     Tier = "Gold"
	TierPlatinum Tier = "Platinum"
)

// Tier thresholds on total points.
const (
	SilverThreshold   = 500
	GoldThreshold     = 1500
	PlatinumThreshold = 5000
)

// MultiplierFor returns the earn multiplier for a pre-transaction balance.
func MultiplierFor(balance int) float64 {
	switch {
	case balance < SilverThreshold:
		return 1.0
	case balance < GoldThreshold:
		return 1.25
	case balance < PlatinumThreshold:
		return 1.5
	default:
		return 2.0
	}
}

// AwardPoints computes the updated balance after a purchase of amountPaid.
// The multiplier is keyed by the balance before the transaction and the
// result is rounded half-up to the nearest integer.
func AwardPoints(balance int, amountPaid float64) (int, error) {
	updated := int(math.Floor(float64(balance) + amountPaid*MultiplierFor(balance) + 0.5))
	if updated < 0 {
		// Only reachable with a negative amountPaid, which the scan path
		// never produces. Abort before anything is persisted.
		return 0, domainErrors.ErrNegativePoints
	}
	return updated, nil
}

// TierFor classifies a lifetime point total into a loyalty tier.
func TierFor(totalPoints int) Tier {
	switch {
	case totalPoints < SilverThreshold:
		return TierMember
	case totalPoints < GoldThreshold:
		return TierSilver
	case totalPoints < PlatinumThreshold:
		return TierGold
	default:
		return TierPlatinum
	}
}

// PointsToNextTier returns the gap to the next tier threshold, or 0 once
// the customer is Platinum.
func PointsToNextTier(totalPoints int) int {
	switch {
	case totalPoints < SilverThreshold:
		return SilverThreshold - totalPoints
	case totalPoints < GoldThreshold:
		return GoldThreshold - totalPoints
	case totalPoints < PlatinumThreshold:
		return PlatinumThreshold - totalPoints
	default:
		return 0
	}
}
