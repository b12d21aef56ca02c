package plans

import (
	"strings"
	"time"
)

type Plan struct {
	ID              uint `gorm:"primaryKey"`
	Name            string
	PriceEUR        float64
	StripePriceID   string `gorm:"column:stripe_price_id;not null;uniqueIndex:idx_plans_stripe_price_id"`
	StripeProductID string `gorm:"column:stripe_product_id;index"`
	Interval        string
	Tier            string `gorm:"column:tier;not null"` // "basic" | "intermediate" | "premium"

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PlanTier returns the tier granted by p.
// A nil plan means the user has no plan: (nil, nil). A stored plan whose tier
// column is blank or unknown is a misconfigured row and yields an error.
func PlanTier(p *Plan) (*Tier, error) {
	if p == nil {
		return nil, nil
	}
	t, err := ParseTier(p.Tier)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// TierFromMetadata reads the tier from Stripe price metadata.
// "tier" wins over the legacy "plan" key.
func TierFromMetadata(md map[string]string) (Tier, error) {
	raw := ""
	if md != nil {
		if v := strings.TrimSpace(md["tier"]); v != "" {
			raw = v
		} else {
			raw = strings.TrimSpace(md["plan"])
		}
	}
	return ParseTier(raw)
}
