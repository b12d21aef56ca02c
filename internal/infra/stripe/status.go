package stripe

import (
	"strings"

	"entitlements-api/internal/domain/subscription"

	stripego "github.com/stripe/stripe-go/v75"
)

// NormalizeStripeStatus maps a stored Stripe subscription status onto the closed
// subscription.Status set. Empty input means no subscription.
func NormalizeStripeStatus(s *string) subscription.Status {
	if s == nil || strings.TrimSpace(*s) == "" {
		return subscription.StatusNone
	}
	switch stripego.SubscriptionStatus(strings.ToLower(strings.TrimSpace(*s))) {
	case stripego.SubscriptionStatusActive:
		return subscription.StatusActive
	case stripego.SubscriptionStatusTrialing:
		return subscription.StatusTrialing
	case stripego.SubscriptionStatusPastDue,
		stripego.SubscriptionStatusUnpaid,
		stripego.SubscriptionStatusIncomplete,
		"paused":
		return subscription.StatusPastDue
	case stripego.SubscriptionStatusCanceled:
		return subscription.StatusCanceled
	case stripego.SubscriptionStatusIncompleteExpired:
		return subscription.StatusExpired
	default:
		// unrecognized states are treated as lapsed
		return subscription.StatusExpired
	}
}
