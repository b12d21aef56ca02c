package billing

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"entitlements-api/internal/app/http/middleware"
	"entitlements-api/internal/domain/plans"
	"entitlements-api/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	portalsession "github.com/stripe/stripe-go/v75/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	"github.com/stripe/stripe-go/v75/customer"
	"go.uber.org/zap"
)

type UserStore interface {
	FindByID(ctx context.Context, id uint) (*users.User, error)
	Save(ctx context.Context, u *users.User) error
}

type PlanLookup interface {
	FindByStripePriceID(ctx context.Context, priceID string) (*plans.Plan, error)
}

type Handler struct {
	users     UserStore
	plans     PlanLookup
	stripeKey string
	appURL    string
	log       *zap.Logger
}

func NewHandler(store UserStore, planLookup PlanLookup, stripeKey, appURL string, log *zap.Logger) *Handler {
	return &Handler{
		users:     store,
		plans:     planLookup,
		stripeKey: stripeKey,
		appURL:    appURL,
		log:       log.With(zap.String("component", "billing")),
	}
}

func (h *Handler) currentUser(c *gin.Context) (*users.User, bool) {
	userID := c.GetUint(middleware.ContextUserID)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return nil, false
	}
	user, err := h.users.FindByID(c.Request.Context(), userID)
	if err != nil {
		if !errors.Is(err, users.ErrNotFound) {
			h.log.Error("load billing user", zap.Uint("user_id", userID), zap.Error(err))
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return nil, false
	}
	return user, true
}

// POST /create-checkout-session
func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	var body struct {
		PriceID string `json:"price_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.PriceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid price_id"})
		return
	}
	if h.stripeKey == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}

	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	// allow-list price id
	plan, err := h.plans.FindByStripePriceID(c.Request.Context(), body.PriceID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown plan/price_id"})
		return
	}

	stripe.Key = h.stripeKey
	if user.StripeCustomerID == nil || *user.StripeCustomerID == "" {
		cus, err := customer.New(&stripe.CustomerParams{
			Email:    stripe.String(user.Email),
			Metadata: map[string]string{"user_id": fmt.Sprint(user.ID)},
		})
		if err != nil {
			h.log.Error("create stripe customer", zap.Uint("user_id", user.ID), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create Stripe customer"})
			return
		}
		user.StripeCustomerID = stripe.String(cus.ID)
		if err := h.users.Save(c.Request.Context(), user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store Stripe customer"})
			return
		}
	}

	s, err := checkoutsession.New(&stripe.CheckoutSessionParams{
		SuccessURL: stripe.String(h.appURL + "/account"),
		CancelURL:  stripe.String(h.appURL + "/account?canceled=1"),
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		Customer:   user.StripeCustomerID,
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(plan.StripePriceID), Quantity: stripe.Int64(1)},
		},
		ClientReferenceID: stripe.String(fmt.Sprint(user.ID)),
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{
				"user_id": fmt.Sprint(user.ID),
				"plan_id": fmt.Sprint(plan.ID),
				"tier":    plan.Tier,
			},
		},
	})
	if err != nil {
		h.log.Error("create checkout session", zap.Uint("user_id", user.ID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create checkout session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": s.URL})
}

// POST /billing-portal
func (h *Handler) CreateBillingPortal(c *gin.Context) {
	if h.stripeKey == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}

	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	if user.StripeCustomerID == nil || *user.StripeCustomerID == "" {
		c.JSON(http.StatusConflict, gin.H{"error": "No Stripe customer yet (subscribe first)"})
		return
	}

	stripe.Key = h.stripeKey
	portal, err := portalsession.New(&stripe.BillingPortalSessionParams{
		Customer:  user.StripeCustomerID,
		ReturnURL: stripe.String(h.appURL + "/account"),
	})
	if err != nil {
		h.log.Error("create billing portal", zap.Uint("user_id", user.ID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not create billing portal session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": portal.URL})
}
