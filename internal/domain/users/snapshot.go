package users

import (
	"fmt"
	"time"

	"entitlements-api/internal/domain/access"
	"entitlements-api/internal/domain/plans"
	"entitlements-api/internal/domain/subscription"
	"entitlements-api/internal/infra/stripe"
)

// Subject projects u onto the fields gating reads at now.
// A plan row with an unknown tier is returned as an error even when the plan
// no longer grants service. The plan tier is only passed on while PlanActive.
func (u User) Subject(now time.Time) (access.Subject, error) {
	tier, err := plans.PlanTier(u.Plan)
	if err != nil {
		return access.Subject{}, fmt.Errorf("user %d plan: %w", u.ID, err)
	}
	if !u.PlanActive(now) {
		tier = nil
	}
	return access.Subject{Role: access.Role(u.Role), PlanTier: tier}, nil
}

// PlanActive reports whether the stored plan still grants service at now:
// an active or trialing subscription, a canceled one inside its paid-through
// period, or a running trial when no subscription exists.
func (u User) PlanActive(now time.Time) bool {
	if !u.HasSubscription() {
		return u.TrialEndAt != nil && now.Before(*u.TrialEndAt)
	}
	switch status := stripe.NormalizeStripeStatus(u.StripeSubscriptionStatus); {
	case status.ActiveEquivalent():
		return true
	case status == subscription.StatusCanceled:
		return u.CurrentPeriodEnd != nil && now.Before(*u.CurrentPeriodEnd)
	default:
		return false
	}
}

// HasSubscription reports whether a Stripe subscription is linked to u.
func (u User) HasSubscription() bool {
	return u.SubscriptionId != nil && *u.SubscriptionId != ""
}

// AlertInput projects u onto the subscription fields the classifier reads.
func (u User) AlertInput(now time.Time) subscription.AlertInput {
	if u.HasSubscription() {
		return subscription.AlertInput{
			Status:        stripe.NormalizeStripeStatus(u.StripeSubscriptionStatus),
			DaysRemaining: subscription.DaysRemaining(now, u.CurrentPeriodEnd),
		}
	}

	if u.TrialEndAt != nil {
		if now.Before(*u.TrialEndAt) {
			return subscription.AlertInput{
				Status:        subscription.StatusTrialing,
				DaysRemaining: subscription.DaysRemaining(now, u.TrialEndAt),
			}
		}
		return subscription.AlertInput{Status: subscription.StatusExpired}
	}

	return subscription.AlertInput{Status: subscription.StatusNone}
}
