package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("user not found")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) first(ctx context.Context, query string, arg interface{}) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).Preload("Plan").Where(query, arg).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *Repository) FindByID(ctx context.Context, id uint) (*User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *Repository) FindByGoogleSub(ctx context.Context, sub string) (*User, error) {
	return r.first(ctx, "google_sub = ?", sub)
}

func (r *Repository) FindBySubscriptionID(ctx context.Context, subscriptionID string) (*User, error) {
	return r.first(ctx, "subscription_id = ?", subscriptionID)
}

func (r *Repository) Create(ctx context.Context, u *User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *Repository) Save(ctx context.Context, u *User) error {
	if err := r.db.WithContext(ctx).Save(u).Error; err != nil {
		return fmt.Errorf("save user %d: %w", u.ID, err)
	}
	return nil
}

// SubscriptionUpdate carries the billing fields pushed by Stripe.
// A nil PlanID or CurrentPeriodEnd leaves the stored value untouched.
type SubscriptionUpdate struct {
	SubscriptionID   string
	Status           string
	CurrentPeriodEnd *time.Time
	PlanID           *uint
}

func (r *Repository) UpdateSubscription(ctx context.Context, userID uint, upd SubscriptionUpdate) error {
	updates := map[string]interface{}{
		"stripe_subscription_status": upd.Status,
	}
	if upd.CurrentPeriodEnd != nil {
		updates["current_period_end"] = *upd.CurrentPeriodEnd
	}
	if upd.SubscriptionID != "" {
		updates["subscription_id"] = upd.SubscriptionID
	}
	if upd.PlanID != nil {
		updates["plan_id"] = *upd.PlanID
	}

	err := r.db.WithContext(ctx).Model(&User{}).
		Where("id = ?", userID).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("update subscription for user %d: %w", userID, err)
	}
	return nil
}

func (r *Repository) List(ctx context.Context) ([]User, error) {
	var out []User
	if err := r.db.WithContext(ctx).Preload("Plan").Order("id ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}
