package users

import "time"

type MeResponse struct {
	User    UserDTO    `json:"user"`
	Billing BillingDTO `json:"billing"`
	Access  AccessDTO  `json:"access"`
}

/* ---------- USER ---------- */

type UserDTO struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
	Role     string `json:"role"`
}

/* ---------- BILLING ---------- */

type BillingDTO struct {
	Plan         *PlanDTO         `json:"plan"`
	Subscription *SubscriptionDTO `json:"subscription"`
	Trial        *TrialDTO        `json:"trial"`
}

type PlanDTO struct {
	ID       uint    `json:"id"`
	Key      string  `json:"key"`
	Tier     string  `json:"tier"`
	Interval string  `json:"interval"`
	PriceEUR float64 `json:"price_eur"`
}

type SubscriptionDTO struct {
	Status               string     `json:"status"`
	StartsAt             *time.Time `json:"starts_at"`
	CurrentPeriodEnd     *time.Time `json:"current_period_end"`
	StripeSubscriptionID *string    `json:"stripe_subscription_id"`
}

type TrialDTO struct {
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
	DaysLeft *int       `json:"days_left"`
}

/* ---------- ACCESS ---------- */

type AccessDTO struct {
	Alert    AlertDTO              `json:"alert"`
	Features map[string]FeatureDTO `json:"features"`
}

type AlertDTO struct {
	Level         string `json:"level"` // none|warning|critical
	Status        string `json:"status"`
	DaysRemaining *int   `json:"days_remaining"`
}

type FeatureDTO struct {
	Allowed      bool   `json:"allowed"`
	RequiredTier string `json:"required_tier"`
}
