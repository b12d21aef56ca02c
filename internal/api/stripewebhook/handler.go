package stripewebhooks

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"entitlements-api/internal/domain/plans"
	"entitlements-api/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/webhook"
	"go.uber.org/zap"
)

const maxBodyBytes = 65536

type SubscriptionStore interface {
	FindByID(ctx context.Context, id uint) (*users.User, error)
	FindBySubscriptionID(ctx context.Context, subscriptionID string) (*users.User, error)
	UpdateSubscription(ctx context.Context, userID uint, upd users.SubscriptionUpdate) error
}

type PlanLookup interface {
	FindByStripePriceID(ctx context.Context, priceID string) (*plans.Plan, error)
}

type Handler struct {
	users          SubscriptionStore
	plans          PlanLookup
	endpointSecret string
	log            *zap.Logger
}

func NewHandler(store SubscriptionStore, planLookup PlanLookup, endpointSecret string, log *zap.Logger) *Handler {
	return &Handler{
		users:          store,
		plans:          planLookup,
		endpointSecret: endpointSecret,
		log:            log.With(zap.String("component", "stripe_webhook")),
	}
}

// POST /webhook
func (h *Handler) StripeWebhook(c *gin.Context) {
	if h.endpointSecret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "STRIPE_WEBHOOK_SECRET not configured"})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		c.GetHeader("Stripe-Signature"),
		h.endpointSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		h.log.Warn("stripe signature verification failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signature verification failed"})
		return
	}

	h.dispatch(c, event)
}

func (h *Handler) dispatch(c *gin.Context, event stripe.Event) {
	var handle func(context.Context, *stripe.Subscription) error
	switch event.Type {
	case "customer.subscription.created", "customer.subscription.updated":
		handle = h.handleSubscriptionUpdated
	case "customer.subscription.deleted":
		handle = h.handleSubscriptionDeleted
	default:
		// acknowledge unknown events to avoid retries
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse subscription"})
		return
	}
	if err := handle(c.Request.Context(), &sub); err != nil {
		h.log.Error("stripe event failed",
			zap.String("event_id", event.ID),
			zap.String("type", string(event.Type)),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "received"})
}
