package users

import (
	"time"

	"entitlements-api/internal/app/gate"
	"entitlements-api/internal/domain/plans"
	"entitlements-api/internal/domain/subscription"
	"entitlements-api/internal/domain/users"
	"entitlements-api/internal/infra/stripe"
)

func BuildPlanDTO(p *plans.Plan) *PlanDTO {
	if p == nil {
		return nil
	}
	return &PlanDTO{
		ID:       p.ID,
		Key:      p.Name,
		Tier:     p.Tier,
		Interval: p.Interval,
		PriceEUR: p.PriceEUR,
	}
}

func BuildSubscriptionDTO(u users.User) *SubscriptionDTO {
	if !u.HasSubscription() {
		return nil
	}
	return &SubscriptionDTO{
		Status:               string(stripe.NormalizeStripeStatus(u.StripeSubscriptionStatus)),
		StartsAt:             u.SubscriptionStart,
		CurrentPeriodEnd:     u.CurrentPeriodEnd,
		StripeSubscriptionID: u.SubscriptionId,
	}
}

func BuildTrialDTO(now time.Time, start, end *time.Time) *TrialDTO {
	if start == nil || end == nil {
		return nil
	}
	return &TrialDTO{
		StartsAt: start,
		EndsAt:   end,
		DaysLeft: subscription.DaysRemaining(now, end),
	}
}

// BuildAlertDTO carries days_remaining only when a banner is shown.
func BuildAlertDTO(in subscription.AlertInput, level subscription.AlertLevel) AlertDTO {
	dto := AlertDTO{Level: string(level), Status: string(in.Status)}
	if level != subscription.AlertNone {
		dto.DaysRemaining = in.DaysRemaining
	}
	return dto
}

func BuildFeatureDTOs(decisions []gate.FeatureDecision) map[string]FeatureDTO {
	out := make(map[string]FeatureDTO, len(decisions))
	for _, d := range decisions {
		out[d.Feature] = FeatureDTO{Allowed: d.Allowed, RequiredTier: string(d.RequiredTier)}
	}
	return out
}
