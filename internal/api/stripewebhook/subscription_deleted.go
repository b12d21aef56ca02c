package stripewebhooks

import (
	"context"
	"errors"

	"entitlements-api/internal/domain/users"

	"github.com/stripe/stripe-go/v75"
)

func (h *Handler) handleSubscriptionDeleted(ctx context.Context, sub *stripe.Subscription) error {
	if sub.ID == "" {
		return nil
	}

	user, err := h.findUser(ctx, sub)
	if errors.Is(err, users.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	status := string(sub.Status)
	if status == "" {
		status = string(stripe.SubscriptionStatusCanceled)
	}

	return h.users.UpdateSubscription(ctx, user.ID, users.SubscriptionUpdate{
		Status:           status,
		CurrentPeriodEnd: periodEnd(sub.CurrentPeriodEnd),
	})
}
