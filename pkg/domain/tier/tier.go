package tier

import (
	"time"

	"github.com/coachpulse/server/pkg/types"
)

const (
	HobbyistTierRefreshesPerMonth = 30
)

// Effective tier is used for internal logic
type EffectiveTier string

const (
	TierHobbyist EffectiveTier = "hobbyist"
	TierPro      EffectiveTier = "pro"
)

// GetEffectiveTier determines the user's effective tier based on admin status,
// trial period, and stored tier.
func GetEffectiveTier(user *types.UserRecord) EffectiveTier {
	// Admin override always grants Pro
	if user.IsAdmin {
		return TierPro
	}

	// Active trial grants Pro
	if user.TrialEndsAt != nil && user.TrialEndsAt.After(time.Now()) {
		return TierPro
	}

	if user.Tier == string(TierPro) {
		return TierPro
	}

	return TierHobbyist
}

// CanRefresh checks if the user can trigger another insight refresh within
// their tier limits.
func CanRefresh(user *types.UserRecord) (allowed bool, reason string) {
	if GetEffectiveTier(user) == TierPro {
		return true, ""
	}

	if user.RefreshCountThisMonth >= HobbyistTierRefreshesPerMonth {
		return false, "Hobbyist tier limit reached (30/month). Upgrade to Pro for unlimited refreshes."
	}

	return true, ""
}

// HasAIPhrasing reports whether hero messages should be rewritten by the
// AI phraser. Pro tier only.
func HasAIPhrasing(user *types.UserRecord) bool {
	return GetEffectiveTier(user) == TierPro
}

// ShouldResetRefreshCount checks if the refresh counter should be reset (monthly)
func ShouldResetRefreshCount(user *types.UserRecord) bool {
	if user.RefreshCountResetAt == nil {
		return true
	}

	resetTime := *user.RefreshCountResetAt
	now := time.Now()

	// Reset if the reset date is in a different month
	return resetTime.Year() != now.Year() || resetTime.Month() != now.Month()
}

// GetTrialDaysRemaining returns the number of days left in trial, or -1 if not on trial
func GetTrialDaysRemaining(user *types.UserRecord) int {
	if user.TrialEndsAt == nil {
		return -1
	}

	now := time.Now()
	trialEnd := *user.TrialEndsAt

	if trialEnd.Before(now) || trialEnd.Equal(now) {
		return 0
	}

	return int(trialEnd.Sub(now).Hours()/24) + 1
}
