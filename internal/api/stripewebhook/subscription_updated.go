package stripewebhooks

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"entitlements-api/internal/domain/plans"
	"entitlements-api/internal/domain/users"

	"github.com/stripe/stripe-go/v75"
	"go.uber.org/zap"
)

func (h *Handler) handleSubscriptionUpdated(ctx context.Context, sub *stripe.Subscription) error {
	if sub.ID == "" || sub.Items == nil || len(sub.Items.Data) == 0 || sub.Items.Data[0].Price == nil {
		return fmt.Errorf("subscription missing id/items/price")
	}

	user, err := h.findUser(ctx, sub)
	if errors.Is(err, users.ErrNotFound) {
		// acknowledge to avoid Stripe retries if user deleted
		h.log.Warn("subscription for unknown user", zap.String("subscription_id", sub.ID))
		return nil
	}
	if err != nil {
		return err
	}

	priceID := sub.Items.Data[0].Price.ID
	plan, err := h.plans.FindByStripePriceID(ctx, priceID)
	if errors.Is(err, plans.ErrPlanNotFound) {
		h.log.Warn("subscription for unsynced price", zap.String("price_id", priceID))
		return nil
	}
	if err != nil {
		return err
	}

	return h.users.UpdateSubscription(ctx, user.ID, users.SubscriptionUpdate{
		SubscriptionID:   sub.ID,
		Status:           string(sub.Status),
		CurrentPeriodEnd: periodEnd(sub.CurrentPeriodEnd),
		PlanID:           &plan.ID,
	})
}

// findUser prefers the user_id stamped into subscription metadata at checkout.
func (h *Handler) findUser(ctx context.Context, sub *stripe.Subscription) (*users.User, error) {
	if userID := userIDFromMetadata(sub.Metadata); userID != 0 {
		u, err := h.users.FindByID(ctx, userID)
		if !errors.Is(err, users.ErrNotFound) {
			return u, err
		}
	}
	return h.users.FindBySubscriptionID(ctx, sub.ID)
}

// periodEnd converts a Stripe unix timestamp. Zero means Stripe omitted it.
func periodEnd(unix int64) *time.Time {
	if unix <= 0 {
		return nil
	}
	t := time.Unix(unix, 0).UTC()
	return &t
}

func userIDFromMetadata(md map[string]string) uint {
	if md == nil {
		return 0
	}
	s := md["user_id"]
	if s == "" {
		return 0
	}
	uid, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return uint(uid)
}
