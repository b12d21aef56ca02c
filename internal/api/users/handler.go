package users

import (
	"context"
	"errors"
	"net/http"
	"time"

	"entitlements-api/internal/app/gate"
	"entitlements-api/internal/app/http/middleware"
	"entitlements-api/internal/domain/users"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*users.User, error)
}

type Handler struct {
	users UserFinder
	gate  *gate.Gate
	log   *zap.Logger
	now   func() time.Time
}

func NewHandler(finder UserFinder, g *gate.Gate, log *zap.Logger) *Handler {
	return &Handler{users: finder, gate: g, log: log, now: time.Now}
}

func (h *Handler) GetCurrentUser(c *gin.Context) {
	email := c.GetString(middleware.ContextEmail)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), email)
	if errors.Is(err, users.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		h.log.Error("load current user", zap.String("email", email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	now := h.now()

	decisions, err := h.gate.CheckAll(*user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Feature gate misconfigured"})
		return
	}
	alertInput, level := h.gate.Alert(*user, now)

	resp := MeResponse{
		User: UserDTO{
			ID:       user.ID,
			Email:    user.Email,
			Name:     user.Name,
			Lastname: user.Lastname,
			Role:     user.Role,
		},
		Billing: BillingDTO{
			Plan:         BuildPlanDTO(user.Plan),
			Subscription: BuildSubscriptionDTO(*user),
			Trial:        BuildTrialDTO(now, user.TrialStartAt, user.TrialEndAt),
		},
		Access: AccessDTO{
			Alert:    BuildAlertDTO(alertInput, level),
			Features: BuildFeatureDTOs(decisions),
		},
	}

	c.JSON(http.StatusOK, resp)
}
