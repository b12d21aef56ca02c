package plans

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var ErrPlanNotFound = errors.New("plan not found")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) FindByStripePriceID(ctx context.Context, priceID string) (*Plan, error) {
	var p Plan
	err := r.db.WithContext(ctx).Where("stripe_price_id = ?", priceID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find plan by price %s: %w", priceID, err)
	}
	return &p, nil
}

// Upsert creates p or updates the row sharing its Stripe price id.
// It reports whether a new row was created.
func (r *Repository) Upsert(ctx context.Context, p *Plan) (bool, error) {
	existing, err := r.FindByStripePriceID(ctx, p.StripePriceID)
	if errors.Is(err, ErrPlanNotFound) {
		if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
			return false, fmt.Errorf("create plan: %w", err)
		}
		return true, nil
	}
	if err != nil {
		return false, err
	}

	existing.Name = p.Name
	existing.PriceEUR = p.PriceEUR
	existing.Interval = p.Interval
	existing.StripeProductID = p.StripeProductID
	existing.Tier = p.Tier
	if err := r.db.WithContext(ctx).Save(existing).Error; err != nil {
		return false, fmt.Errorf("update plan: %w", err)
	}
	*p = *existing
	return false, nil
}

// List returns plans ordered by price, optionally restricted to one Stripe product.
func (r *Repository) List(ctx context.Context, productID string) ([]Plan, error) {
	q := r.db.WithContext(ctx).Model(&Plan{})
	if productID != "" {
		q = q.Where("stripe_product_id = ?", productID)
	}

	var out []Plan
	if err := q.Order("price_eur ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	return out, nil
}
