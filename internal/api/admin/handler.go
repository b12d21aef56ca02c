package admin

import (
	"context"
	"net/http"
	"time"

	"entitlements-api/internal/app/gate"
	"entitlements-api/internal/domain/users"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserLister interface {
	List(ctx context.Context) ([]users.User, error)
}

type Handler struct {
	users UserLister
	gate  *gate.Gate
	log   *zap.Logger
	now   func() time.Time
}

func NewHandler(lister UserLister, g *gate.Gate, log *zap.Logger) *Handler {
	return &Handler{users: lister, gate: g, log: log, now: time.Now}
}

type AdminUser struct {
	ID                 uint       `json:"id"`
	Name               string     `json:"name"`
	Lastname           string     `json:"lastname"`
	Email              string     `json:"email"`
	Role               string     `json:"role"`
	PlanName           *string    `json:"plan_name,omitempty"`
	PlanTier           *string    `json:"plan_tier,omitempty"`
	StripeCustomerID   *string    `json:"stripe_customer_id,omitempty"`
	StripeSubID        *string    `json:"stripe_subscription_id,omitempty"`
	SubscriptionStatus string     `json:"subscription_status"`
	CurrentPeriodEnd   *time.Time `json:"current_period_end,omitempty"`
	AlertLevel         string     `json:"alert_level"`
	DaysRemaining      *int       `json:"days_remaining,omitempty"`
}

func (h *Handler) AdminDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":      "Welcome to the admin dashboard",
		"bypass_roles": h.gate.BypassRoles(),
		"features":     h.gate.Catalog().Names(),
	})
}

// GET /admin/users
func (h *Handler) ListAllUsers(c *gin.Context) {
	list, err := h.users.List(c.Request.Context())
	if err != nil {
		h.log.Error("list users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	now := h.now()
	adminUsers := make([]AdminUser, 0, len(list))
	for _, u := range list {
		var planName, planTier *string
		if u.Plan != nil {
			name, tier := u.Plan.Name, u.Plan.Tier
			planName, planTier = &name, &tier
		}

		in, level := h.gate.Classify(u, now)
		adminUsers = append(adminUsers, AdminUser{
			ID:                 u.ID,
			Name:               u.Name,
			Lastname:           u.Lastname,
			Email:              u.Email,
			Role:               u.Role,
			PlanName:           planName,
			PlanTier:           planTier,
			StripeCustomerID:   u.StripeCustomerID,
			StripeSubID:        u.SubscriptionId,
			SubscriptionStatus: string(in.Status),
			CurrentPeriodEnd:   u.CurrentPeriodEnd,
			AlertLevel:         string(level),
			DaysRemaining:      in.DaysRemaining,
		})
	}

	c.JSON(http.StatusOK, adminUsers)
}
