package plans

import (
	"context"
	"net/http"
	"strings"

	"entitlements-api/internal/domain/plans"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/price"
	"go.uber.org/zap"
)

type PlanStore interface {
	Upsert(ctx context.Context, p *plans.Plan) (bool, error)
	List(ctx context.Context, productID string) ([]plans.Plan, error)
}

type Handler struct {
	plans     PlanStore
	stripeKey string
	productID string
	log       *zap.Logger
}

func NewHandler(store PlanStore, stripeKey, productID string, log *zap.Logger) *Handler {
	return &Handler{
		plans:     store,
		stripeKey: stripeKey,
		productID: productID,
		log:       log.With(zap.String("component", "plans")),
	}
}

type PlanResponse struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Tier     string  `json:"tier"`
	Interval string  `json:"interval"`
	PriceEUR float64 `json:"price_eur"`
}

// GET /plans
func (h *Handler) ListPlans(c *gin.Context) {
	list, err := h.plans.List(c.Request.Context(), h.productID)
	if err != nil {
		h.log.Error("list plans", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load plans"})
		return
	}

	out := make([]PlanResponse, 0, len(list))
	for _, p := range list {
		out = append(out, PlanResponse{
			ID:       p.ID,
			Name:     p.Name,
			Tier:     p.Tier,
			Interval: p.Interval,
			PriceEUR: p.PriceEUR,
		})
	}
	c.JSON(http.StatusOK, out)
}

// POST /admin/sync-plans
func (h *Handler) SyncPlansFromStripe(c *gin.Context) {
	if h.stripeKey == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}
	stripe.Key = h.stripeKey

	params := &stripe.PriceListParams{}
	params.Active = stripe.Bool(true)
	params.Type = stripe.String("recurring")
	params.AddExpand("data.product")

	var prices []*stripe.Price
	it := price.List(params)
	for it.Next() {
		prices = append(prices, it.Price())
	}
	if err := it.Err(); err != nil {
		h.log.Error("fetch stripe prices", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch Stripe prices"})
		return
	}

	res, err := h.syncPrices(c.Request.Context(), prices)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store plan"})
		return
	}
	c.JSON(http.StatusOK, res)
}

type SyncResult struct {
	Synced  int      `json:"synced"`
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Skipped int      `json:"skipped"`
	Invalid []string `json:"invalid_tier_prices"`
}

// syncPrices stores every eligible price as a plan. Prices whose tier metadata
// is missing or unknown are never stored; they are reported back instead.
func (h *Handler) syncPrices(ctx context.Context, prices []*stripe.Price) (SyncResult, error) {
	res := SyncResult{Invalid: []string{}}

	for _, p := range prices {
		if p == nil || !p.Active || p.Recurring == nil || p.Product == nil || !p.Product.Active {
			res.Skipped++
			continue
		}
		if h.productID != "" && p.Product.ID != h.productID {
			res.Skipped++
			continue
		}
		if !strings.EqualFold(string(p.Currency), "eur") {
			res.Skipped++
			continue
		}
		if p.Metadata != nil && p.Metadata["visible"] == "false" {
			res.Skipped++
			continue
		}

		tier, err := plans.TierFromMetadata(p.Metadata)
		if err != nil {
			h.log.Warn("stripe price has no valid tier", zap.String("price_id", p.ID), zap.Error(err))
			res.Invalid = append(res.Invalid, p.ID)
			continue
		}

		displayName := p.Product.Name
		if v := p.Metadata["name"]; v != "" {
			displayName = v
		}

		plan := plans.Plan{
			Name:            displayName,
			PriceEUR:        float64(p.UnitAmount) / 100.0,
			StripePriceID:   p.ID,
			StripeProductID: p.Product.ID,
			Interval:        string(p.Recurring.Interval),
			Tier:            string(tier),
		}
		created, err := h.plans.Upsert(ctx, &plan)
		if err != nil {
			h.log.Error("store plan", zap.String("price_id", p.ID), zap.Error(err))
			return res, err
		}
		if created {
			res.Created++
		} else {
			res.Updated++
		}
		res.Synced++
	}

	return res, nil
}
